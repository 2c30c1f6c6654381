package library

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"yago-sync/backend"
	"yago-sync/conflicts"
)

// Commander is the slice of the backend command surface the Store drives.
// *backend.Client satisfies it; tests substitute a fake.
type Commander interface {
	GetLibrary() (map[string]backend.LibraryDatabase, error)
	GetSettings() (backend.GlobalSettings, error)
	UpdateSettings(settings backend.GlobalSettings) error
	ListRunners() ([]string, error)

	AddGame(path string) (string, error)
	RemoveGame(gameID string) error
	UpdateGameConfig(gameID string, update backend.GameConfigUpdate) error

	ImportMod(gameID, path string) (*backend.ModRecord, error)
	DeleteMod(modID string) error
	ToggleMod(gameID, modID string, enabled bool) error
	SetLoadOrder(gameID string, order []string) error
	UpdateModTags(gameID, modID string, tags []string) error
	ValidateMod(modID string) (bool, error)
	DeployMods(gamePath string) (backend.ConflictReport, error)

	SwitchProfile(gameID, profileID string) error
	CreateProfile(gameID, name string) (*backend.Profile, error)
	DuplicateProfile(gameID, profileID, name string) (*backend.Profile, error)
	UpdateProfile(gameID, profileID string, update backend.ProfileUpdate) error
	DeleteProfile(gameID, profileID string) error
	RenameProfile(gameID, profileID, newName string) error

	EnsureGameResources(gameID string) error
	LaunchGame(gameID string) error
	KillGame() error
	ForceResetState() error

	StartGameDownload(gameID string, selectedCategoryIDs []string) error
	PauseGameDownload(gameID string) error
	ResumeGameDownload(gameID string) error
	RepairGame(gameID string) error
	WipeGameMods(gameID string) error
	ResetGameProfiles(gameID string) error
	UninstallGameFiles(gameID string) error
}

// ErrClosed is returned by actions invoked after Close. Late command
// resolutions and events against a closed store are silent no-ops instead.
var ErrClosed = errors.New("library store is closed")

// Store is the single owner of canonical library state. All mutation goes
// through its actions or its event handlers; the mutex keeps the
// single-writer property in a multi-goroutine runtime.
type Store struct {
	backend Commander
	log     *zap.SugaredLogger

	mu     sync.Mutex
	closed bool

	games          []Game
	selectedGameID string
	initialized    bool

	running      bool
	launching    bool
	launchStatus string
	deploying    bool
	downloading  bool

	streamSafe    bool
	nsfwBehavior  string
	closeOnLaunch bool
	settings      *backend.GlobalSettings

	runners  []string
	report   *conflicts.Report
	download map[string]backend.DownloadProgress
	loader   map[string]backend.LoaderProgress
	proton   map[string]backend.ProtonProgress

	watchers []chan struct{}
}

// State is a point-in-time copy of the Store for consumers. Mutating it has
// no effect on canonical state.
type State struct {
	Games          []Game
	SelectedGameID string
	Initialized    bool

	Running      bool
	Launching    bool
	LaunchStatus string
	Deploying    bool
	Downloading  bool

	StreamSafe    bool
	NSFWBehavior  string
	CloseOnLaunch bool
	Settings      *backend.GlobalSettings

	Runners   []string
	Conflicts *conflicts.Report

	DownloadProgress map[string]backend.DownloadProgress
	LoaderProgress   map[string]backend.LoaderProgress
	ProtonProgress   map[string]backend.ProtonProgress
}

// New constructs the process-wide store. Construct once, hand the reference
// to every consumer.
func New(commander Commander, log *zap.SugaredLogger) *Store {
	return &Store{
		backend:      commander,
		log:          log,
		streamSafe:   true,
		nsfwBehavior: "blur",
		download:     make(map[string]backend.DownloadProgress),
		loader:       make(map[string]backend.LoaderProgress),
		proton:       make(map[string]backend.ProtonProgress),
	}
}

// Close marks the store torn down. Subsequent actions fail with ErrClosed;
// subsequent events are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, w := range s.watchers {
		close(w)
	}
	s.watchers = nil
}

// Watch returns a channel that receives a tick after every state change and
// is closed on teardown.
func (s *Store) Watch() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := make(chan struct{}, 1)
	if s.closed {
		close(w)
		return w
	}
	s.watchers = append(s.watchers, w)
	return w
}

// notifyLocked wakes watchers. Callers hold s.mu.
func (s *Store) notifyLocked() {
	for _, w := range s.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]Game, len(s.games))
	for i := range s.games {
		games[i] = copyGame(s.games[i])
	}

	var settings *backend.GlobalSettings
	if s.settings != nil {
		copied := *s.settings
		settings = &copied
	}

	return State{
		Games:            games,
		SelectedGameID:   s.selectedGameID,
		Initialized:      s.initialized,
		Running:          s.running,
		Launching:        s.launching,
		LaunchStatus:     s.launchStatus,
		Deploying:        s.deploying,
		Downloading:      s.downloading,
		StreamSafe:       s.streamSafe,
		NSFWBehavior:     s.nsfwBehavior,
		CloseOnLaunch:    s.closeOnLaunch,
		Settings:         settings,
		Runners:          append([]string(nil), s.runners...),
		Conflicts:        s.report,
		DownloadProgress: copyProgress(s.download),
		LoaderProgress:   copyLoader(s.loader),
		ProtonProgress:   copyProton(s.proton),
	}
}

// SelectedGame returns a copy of the currently selected game.
func (s *Store) SelectedGame() (Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.findGameLocked(s.selectedGameID)
	if g == nil {
		return Game{}, false
	}
	return copyGame(*g), true
}

// SelectGame changes the selection. Local-only, no backend round trip.
func (s *Store) SelectGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.findGameLocked(gameID) == nil {
		return fmt.Errorf("unknown game id %q", gameID)
	}
	s.selectedGameID = gameID
	s.notifyLocked()
	return nil
}

func (s *Store) findGameLocked(gameID string) *Game {
	for i := range s.games {
		if s.games[i].ID == gameID {
			return &s.games[i]
		}
	}
	return nil
}

func copyGame(g Game) Game {
	copied := g
	copied.LaunchArgs = append([]string(nil), g.LaunchArgs...)
	copied.Profiles = make([]Profile, len(g.Profiles))
	for i, p := range g.Profiles {
		copied.Profiles[i] = copyProfile(p)
	}
	copied.Mods = make(map[string]Mod, len(g.Mods))
	for id, m := range g.Mods {
		copied.Mods[id] = copyMod(m)
	}
	return copied
}

func copyProfile(p Profile) Profile {
	copied := p
	copied.EnabledModIDs = append([]string(nil), p.EnabledModIDs...)
	copied.LoadOrder = append([]string(nil), p.LoadOrder...)
	copied.LaunchArgs = append([]string(nil), p.LaunchArgs...)
	return copied
}

func copyMod(m Mod) Mod {
	copied := m
	copied.Tags = append([]string(nil), m.Tags...)
	return copied
}

func copyProgress(in map[string]backend.DownloadProgress) map[string]backend.DownloadProgress {
	out := make(map[string]backend.DownloadProgress, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyLoader(in map[string]backend.LoaderProgress) map[string]backend.LoaderProgress {
	out := make(map[string]backend.LoaderProgress, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyProton(in map[string]backend.ProtonProgress) map[string]backend.ProtonProgress {
	out := make(map[string]backend.ProtonProgress, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
