package library

import (
	"sort"

	"go.uber.org/zap"

	"yago-sync/backend"
)

// Snapshot reconciliation and push-event handling. A snapshot is a complete
// library state: every game it carries is rebuilt wholesale, every game it
// omits is removed. That trades efficiency for the guarantee that the client
// can never drift permanently out of sync, no matter how many optimistic
// edits were in flight.

// ApplySnapshot replaces canonical state with the pushed library payload.
func (s *Store) ApplySnapshot(payload map[string]backend.LibraryDatabase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.reconcileLocked(payload)
	s.notifyLocked()
}

func (s *Store) reconcileLocked(payload map[string]backend.LibraryDatabase) {
	gameIDs := make([]string, 0, len(payload))
	for gameID := range payload {
		gameIDs = append(gameIDs, gameID)
	}
	sort.Strings(gameIDs)

	games := make([]Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		db := payload[gameID]
		cfg, ok := db.Games[gameID]
		if !ok {
			s.log.Warnw("Snapshot database missing its own game record",
				zap.String("gameId", gameID))
			continue
		}
		games = append(games, buildGame(cfg, db))
	}
	s.games = games

	// Selection invariant: keep the selected game if it survived, otherwise
	// first remaining, otherwise none.
	if s.findGameLocked(s.selectedGameID) == nil {
		if len(s.games) > 0 {
			s.selectedGameID = s.games[0].ID
		} else {
			s.selectedGameID = ""
		}
	}
}

// buildGame rebuilds one Game aggregate from its wire database. Canonical
// fields always come from the wire, overwriting any optimistic local edit.
func buildGame(cfg backend.GameConfig, db backend.LibraryDatabase) Game {
	profileIDs := make([]string, 0, len(db.Profiles))
	for profileID := range db.Profiles {
		profileIDs = append(profileIDs, profileID)
	}
	sort.Slice(profileIDs, func(i, j int) bool {
		a, b := db.Profiles[profileIDs[i]], db.Profiles[profileIDs[j]]
		if a.AddedAt != b.AddedAt {
			return a.AddedAt < b.AddedAt
		}
		return a.ID < b.ID
	})

	profiles := make([]Profile, 0, len(profileIDs))
	for _, profileID := range profileIDs {
		p := db.Profiles[profileID]
		profiles = append(profiles, Profile{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			EnabledModIDs: dedupIDs(p.EnabledModIDs),
			LoadOrder:     append([]string(nil), p.LoadOrder...),
			LaunchArgs:    append([]string(nil), p.LaunchArgs...),
			SaveDataPath:  p.SaveDataPath,
			AddedAt:       p.AddedAt,
		})
	}

	mods := make(map[string]Mod, len(db.Mods))
	for modID, record := range db.Mods {
		mods[modID] = Mod{
			ID:        record.ID,
			Name:      record.Meta.Name,
			Author:    record.Meta.Author,
			Version:   record.Meta.Version,
			Tags:      append([]string(nil), record.Config.Tags...),
			Enabled:   record.Enabled,
			Validated: ValidationUnknown,
			Size:      record.Size,
			AddedAt:   record.AddedAt,
			Character: record.Compatibility.Character,
		}
	}

	game := Game{
		ID:               cfg.ID,
		Name:             cfg.Name,
		ShortName:        fallback(cfg.ShortName, cfg.Name),
		Developer:        fallback(cfg.Developer, "Unknown"),
		Description:      cfg.Description,
		Status:           InstallStatus(cfg.InstallStatus),
		Version:          cfg.Version,
		Size:             cfg.Size,
		ActiveProfileID:  cfg.ActiveProfileID,
		Profiles:         profiles,
		Mods:             mods,
		InstallPath:      cfg.InstallPath,
		ExeName:          cfg.ExeName,
		LaunchArgs:       append([]string(nil), cfg.LaunchArgs...),
		InjectionMethod:  cfg.InjectionMethod,
		ModloaderEnabled: cfg.ModloaderEnabled,
		AutoUpdate:       cfg.AutoUpdate,
		ActiveRunnerID:   cfg.ActiveRunnerID,
		PrefixPath:       cfg.PrefixPath,
	}

	// Active-profile invariant: never a dangling reference. Fall back to the
	// first profile, or empty when the game has none.
	if _, ok := game.ActiveProfile(); !ok {
		if len(game.Profiles) > 0 {
			game.ActiveProfileID = game.Profiles[0].ID
		} else {
			game.ActiveProfileID = ""
		}
	}
	return game
}

func fallback(value, alt string) string {
	if value == "" {
		return alt
	}
	return value
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// --- Progress and lifecycle events ---

// HandleDownloadProgress replaces the per-game download progress record.
// Deliberately no monotonicity check: a late, smaller percentage is kept
// as-is, matching a restarted sub-transfer legitimately regressing.
func (s *Store) HandleDownloadProgress(p backend.DownloadProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || p.GameID == "" {
		return
	}
	s.download[p.GameID] = p
	s.notifyLocked()
}

// HandleDownloadComplete marks a game's download finished.
func (s *Store) HandleDownloadComplete(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gameID == "" {
		return
	}
	progress := s.download[gameID]
	progress.GameID = gameID
	progress.Percentage = 100
	s.download[gameID] = progress
	s.downloading = false
	s.notifyLocked()
}

// HandleDownloadError clears the downloading flag. The message is surfaced
// through logs; no caller is awaiting an event.
func (s *Store) HandleDownloadError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.downloading = false
	s.log.Warnw("Download failed", zap.String("message", message))
	s.notifyLocked()
}

// HandleLoaderProgress replaces the per-game loader progress record.
func (s *Store) HandleLoaderProgress(p backend.LoaderProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || p.GameID == "" {
		return
	}
	s.loader[p.GameID] = p
	s.notifyLocked()
}

// HandleProtonProgress replaces the per-version runner progress record.
func (s *Store) HandleProtonProgress(p backend.ProtonProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || p.Version == "" {
		return
	}
	s.proton[p.Version] = p
	s.notifyLocked()
}

// HandleGameStarted flips the running flag and moves the selected game from
// Installed to Playing.
func (s *Store) HandleGameStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.running = true
	if g := s.findGameLocked(s.selectedGameID); g != nil && g.Status == StatusInstalled {
		g.Status = StatusPlaying
	}
	s.notifyLocked()
}

// HandleGameStopped returns the playing game to Installed and clears the
// launch flags.
func (s *Store) HandleGameStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.running = false
	s.launching = false
	s.launchStatus = ""
	for i := range s.games {
		if s.games[i].Status == StatusPlaying {
			s.games[i].Status = StatusInstalled
		}
	}
	s.notifyLocked()
}

// HandleLaunchStatus records the backend's launch progress text.
func (s *Store) HandleLaunchStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.launchStatus = status
	s.notifyLocked()
}

// HandlePanic forces stream-safe mode on. The safety trigger overrides the
// persisted preference until the user turns it back off.
func (s *Store) HandlePanic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.streamSafe = true
	if s.settings != nil {
		s.settings.StreamSafe = true
	}
	s.log.Warn("Panic signal received, stream-safe mode forced on")
	s.notifyLocked()
}
