package library

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"yago-sync/backend"
	"yago-sync/conflicts"
	"yago-sync/loadorder"
)

// Actions follow one protocol: shape-validate locally, apply a cheap
// optimistic projection when one exists, issue the command, and propagate a
// rejection verbatim without rolling the projection back. The next snapshot
// event is the sole correction mechanism. Operations that are known to push
// a snapshot skip the projection entirely to avoid double application.

// Initialize seeds the store from the backend: settings, full library,
// available runners. Called once at session start; the cache seed it
// overwrites is stale by definition.
func (s *Store) Initialize() error {
	settings, err := s.backend.GetSettings()
	if err != nil {
		return err
	}
	library, err := s.backend.GetLibrary()
	if err != nil {
		return err
	}
	runners, err := s.backend.ListRunners()
	if err != nil {
		// Runner discovery failing must not block the library itself.
		s.log.Warnw("Failed to list runners during initialization", zap.Error(err))
		runners = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.settings = &settings
	s.streamSafe = settings.StreamSafe
	s.nsfwBehavior = settings.NSFWBehavior
	s.closeOnLaunch = settings.CloseOnLaunch
	s.runners = runners
	s.reconcileLocked(library)
	s.running = false
	s.launching = false
	s.launchStatus = ""
	s.initialized = true
	s.notifyLocked()
	return nil
}

// SeedFromCache restores persisted selection and display flags before the
// first backend contact. The first snapshot/settings fetch supersedes it.
func (s *Store) SeedFromCache(selectedGameID string, streamSafe bool, nsfwBehavior string, closeOnLaunch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.initialized {
		return
	}
	s.selectedGameID = selectedGameID
	s.streamSafe = streamSafe
	if nsfwBehavior != "" {
		s.nsfwBehavior = nsfwBehavior
	}
	s.closeOnLaunch = closeOnLaunch
}

// --- Games ---

// AddGame registers the game at path and selects it. The canonical record
// arrives with the snapshot the backend pushes afterwards.
func (s *Store) AddGame(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("game path is required")
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	gameID, err := s.backend.AddGame(path)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return gameID, nil
	}
	s.selectedGameID = gameID
	s.notifyLocked()
	return gameID, nil
}

// RemoveGame removes a game. The snapshot will drop it; only the selection
// is fixed up locally so the UI never points at a vanishing game.
func (s *Store) RemoveGame(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.backend.RemoveGame(gameID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.selectedGameID == gameID {
		s.selectedGameID = ""
		for i := range s.games {
			if s.games[i].ID != gameID {
				s.selectedGameID = s.games[i].ID
				break
			}
		}
	}
	s.notifyLocked()
	return nil
}

// UpdateGameConfig issues a typed config mutation. Auto-update is the one
// variant with no snapshot push behind it, so its optimistic projection is
// also its final state.
func (s *Store) UpdateGameConfig(gameID string, update backend.GameConfigUpdate) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	if auto, ok := update.(backend.SetAutoUpdate); ok {
		s.mu.Lock()
		if g := s.findGameLocked(gameID); g != nil {
			g.AutoUpdate = auto.Enabled
			s.notifyLocked()
		}
		s.mu.Unlock()
	}

	return s.backend.UpdateGameConfig(gameID, update)
}

// --- Mods ---

// ToggleMod flips a mod's global enabled flag and its membership in the
// active profile's enabled set. Both projections land in one state update;
// no observer ever sees them split.
func (s *Store) ToggleMod(gameID, modID string, enabled bool) error {
	if gameID == "" || modID == "" {
		return fmt.Errorf("game id and mod id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	if g := s.findGameLocked(gameID); g != nil {
		if m, ok := g.Mods[modID]; ok {
			m.Enabled = enabled
			g.Mods[modID] = m
		}
		if p, ok := g.ActiveProfile(); ok {
			if enabled {
				p.EnabledModIDs = addID(p.EnabledModIDs, modID)
			} else {
				p.EnabledModIDs = removeID(p.EnabledModIDs, modID)
			}
		}
		s.notifyLocked()
	}
	s.mu.Unlock()

	// A rejection leaves the projection in place; the next snapshot corrects.
	return s.backend.ToggleMod(gameID, modID, enabled)
}

// SetLoadOrder replaces the active profile's load order. Reordering triggers
// conflict recomputation downstream, so there is no optimistic projection;
// the snapshot is authoritative.
func (s *Store) SetLoadOrder(gameID string, order []string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.SetLoadOrder(gameID, order)
}

// MoveMod computes the reordered load order for the active profile and
// submits it.
func (s *Store) MoveMod(gameID, modID string, direction loadorder.Direction) error {
	if gameID == "" || modID == "" {
		return fmt.Errorf("game id and mod id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	g := s.findGameLocked(gameID)
	if g == nil {
		s.mu.Unlock()
		return fmt.Errorf("unknown game id %q", gameID)
	}
	var current []string
	if p, ok := g.ActiveProfile(); ok && len(p.LoadOrder) > 0 {
		current = append([]string(nil), p.LoadOrder...)
	} else {
		// No explicit order yet: derive one from the mod set. Oldest first,
		// id as tie-break, so the submitted order never depends on map
		// iteration.
		ids := make([]string, 0, len(g.Mods))
		for id := range g.Mods {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := g.Mods[ids[i]], g.Mods[ids[j]]
			if a.AddedAt != b.AddedAt {
				return a.AddedAt < b.AddedAt
			}
			return a.ID < b.ID
		})
		current = ids
	}
	s.mu.Unlock()

	reordered := loadorder.Reorder(current, modID, direction)
	return s.backend.SetLoadOrder(gameID, reordered)
}

// ImportMod imports the archive at path into a game's library. The snapshot
// delivers the canonical record; nothing is projected locally.
func (s *Store) ImportMod(gameID, path string) error {
	if gameID == "" || path == "" {
		return fmt.Errorf("game id and mod path are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.backend.ImportMod(gameID, path)
	return err
}

// DeleteMod removes a mod. Snapshot-corrected, no local projection.
func (s *Store) DeleteMod(modID string) error {
	if modID == "" {
		return fmt.Errorf("mod id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.DeleteMod(modID)
}

// UpdateModTags replaces a mod's tag set, with an optimistic projection so
// stream-safe filtering reacts immediately.
func (s *Store) UpdateModTags(gameID, modID string, tags []string) error {
	if gameID == "" || modID == "" {
		return fmt.Errorf("game id and mod id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	if g := s.findGameLocked(gameID); g != nil {
		if m, ok := g.Mods[modID]; ok {
			m.Tags = append([]string(nil), tags...)
			g.Mods[modID] = m
			s.notifyLocked()
		}
	}
	s.mu.Unlock()

	return s.backend.UpdateModTags(gameID, modID, tags)
}

// ValidateMod runs the backend integrity check and records the tri-state
// result. This is the only writer of Mod.Validated.
func (s *Store) ValidateMod(gameID, modID string) (bool, error) {
	if gameID == "" || modID == "" {
		return false, fmt.Errorf("game id and mod id are required")
	}
	if err := s.checkOpen(); err != nil {
		return false, err
	}

	valid, err := s.backend.ValidateMod(modID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if g := s.findGameLocked(gameID); g != nil {
		if m, ok := g.Mods[modID]; ok {
			if valid {
				m.Validated = ValidationPassed
			} else {
				m.Validated = ValidationFailed
			}
			g.Mods[modID] = m
			s.notifyLocked()
		}
	}
	s.mu.Unlock()
	return valid, nil
}

// --- Profiles ---

// SwitchProfile, like all profile CRUD, waits for the pushed snapshot
// instead of projecting locally.
func (s *Store) SwitchProfile(gameID, profileID string) error {
	if gameID == "" || profileID == "" {
		return fmt.Errorf("game id and profile id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.SwitchProfile(gameID, profileID)
}

func (s *Store) CreateProfile(gameID, name string) (string, error) {
	if gameID == "" || name == "" {
		return "", fmt.Errorf("game id and profile name are required")
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	profile, err := s.backend.CreateProfile(gameID, name)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *Store) DuplicateProfile(gameID, profileID, name string) (string, error) {
	if gameID == "" || profileID == "" || name == "" {
		return "", fmt.Errorf("game id, profile id and name are required")
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	profile, err := s.backend.DuplicateProfile(gameID, profileID, name)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *Store) UpdateProfile(gameID, profileID string, update backend.ProfileUpdate) error {
	if gameID == "" || profileID == "" {
		return fmt.Errorf("game id and profile id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.UpdateProfile(gameID, profileID, update)
}

func (s *Store) DeleteProfile(gameID, profileID string) error {
	if gameID == "" || profileID == "" {
		return fmt.Errorf("game id and profile id are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.DeleteProfile(gameID, profileID)
}

func (s *Store) RenameProfile(gameID, profileID, newName string) error {
	if gameID == "" || profileID == "" || newName == "" {
		return fmt.Errorf("game id, profile id and new name are required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.RenameProfile(gameID, profileID, newName)
}

// --- Deployment and launch ---

// Deploy deploys the selected game's active profile and captures the
// conflict report when anything collided.
func (s *Store) Deploy() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	g := s.findGameLocked(s.selectedGameID)
	if g == nil {
		s.mu.Unlock()
		return fmt.Errorf("no game selected")
	}
	exePath := g.ExecutablePath()
	if exePath == "" {
		s.mu.Unlock()
		return fmt.Errorf("game %q has no executable path", g.ID)
	}
	s.deploying = true
	s.report = nil
	s.notifyLocked()
	s.mu.Unlock()

	report, err := s.backend.DeployMods(exePath)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.deploying = false
	if err == nil {
		if r := conflicts.New(report.OverwrittenHashes); !r.Empty() {
			s.report = r
		}
	}
	s.notifyLocked()
	return err
}

// AcknowledgeConflicts clears the stored conflict report.
func (s *Store) AcknowledgeConflicts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.report = nil
	s.notifyLocked()
}

// Launch runs the multi-step launch sequence for the selected game:
// resource ensure, deployment when injection is enabled, process start. A
// failing step aborts the rest and its error propagates; state stays exactly
// as the last successful step left it.
func (s *Store) Launch() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	g := s.findGameLocked(s.selectedGameID)
	if g == nil {
		s.mu.Unlock()
		return fmt.Errorf("no game selected")
	}
	gameID := g.ID
	injection := g.InjectionMethod
	exePath := g.ExecutablePath()
	if exePath == "" {
		s.mu.Unlock()
		return fmt.Errorf("game %q has no executable path", gameID)
	}
	s.launching = true
	s.launchStatus = "Verifying resources..."
	s.notifyLocked()
	s.mu.Unlock()

	err := func() error {
		if err := s.backend.EnsureGameResources(gameID); err != nil {
			return err
		}
		if injection != InjectionNone {
			s.setLaunchStatus("Deploying mods...")
			if _, err := s.backend.DeployMods(exePath); err != nil {
				return err
			}
		}
		s.setLaunchStatus("Starting process...")
		return s.backend.LaunchGame(gameID)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.launching = false
	if err != nil {
		s.launchStatus = ""
	}
	s.notifyLocked()
	return err
}

func (s *Store) setLaunchStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.launchStatus = status
	s.notifyLocked()
}

// Kill stops the running game process.
func (s *Store) Kill() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.KillGame()
}

// ForceReset clears stuck lifecycle flags on both sides after a crash.
func (s *Store) ForceReset() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.backend.ForceResetState(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.running = false
	s.launching = false
	s.launchStatus = ""
	s.deploying = false
	s.notifyLocked()
	return nil
}

// --- Downloads ---

func (s *Store) StartDownload(gameID string, categoryIDs []string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.backend.StartGameDownload(gameID, categoryIDs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.downloading = true
	s.selectedGameID = gameID
	s.notifyLocked()
	return nil
}

func (s *Store) PauseDownload(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.PauseGameDownload(gameID)
}

func (s *Store) ResumeDownload(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.ResumeGameDownload(gameID)
}

// --- Game data maintenance ---

func (s *Store) RepairGame(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.RepairGame(gameID)
}

func (s *Store) WipeGameMods(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.WipeGameMods(gameID)
}

func (s *Store) ResetGameProfiles(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.ResetGameProfiles(gameID)
}

func (s *Store) UninstallGameFiles(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.backend.UninstallGameFiles(gameID)
}

// --- Settings ---

// RefreshRunners re-fetches the available runner list.
func (s *Store) RefreshRunners() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	runners, err := s.backend.ListRunners()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.runners = runners
	s.notifyLocked()
	return nil
}

// UpdateGlobalSettings sends a full settings object and commits it locally
// on success. Callers must start from the last-known-good copy; partial
// patching without it is not supported.
func (s *Store) UpdateGlobalSettings(settings backend.GlobalSettings) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.backend.UpdateSettings(settings); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.settings = &settings
	s.streamSafe = settings.StreamSafe
	s.nsfwBehavior = settings.NSFWBehavior
	s.closeOnLaunch = settings.CloseOnLaunch
	s.notifyLocked()
	return nil
}

// ToggleStreamSafe flips stream-safe mode via the settings read-modify-write
// cycle.
func (s *Store) ToggleStreamSafe() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.settings == nil {
		s.mu.Unlock()
		return fmt.Errorf("settings not loaded")
	}
	updated := *s.settings
	updated.StreamSafe = !updated.StreamSafe
	s.mu.Unlock()
	return s.UpdateGlobalSettings(updated)
}

// SetNSFWBehavior chooses between blurring and hiding sensitive mods.
func (s *Store) SetNSFWBehavior(behavior string) error {
	if behavior != "blur" && behavior != "hide" {
		return fmt.Errorf("nsfw behavior must be \"blur\" or \"hide\"")
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.settings == nil {
		s.mu.Unlock()
		return fmt.Errorf("settings not loaded")
	}
	updated := *s.settings
	updated.NSFWBehavior = behavior
	s.mu.Unlock()
	return s.UpdateGlobalSettings(updated)
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func addID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
