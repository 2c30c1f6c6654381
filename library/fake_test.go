package library

import (
	"sync"

	"yago-sync/backend"
)

// fakeBackend records every command and lets tests inject rejections by
// command name.
type fakeBackend struct {
	mu        sync.Mutex
	calls     []string
	rejects   map[string]error
	library   map[string]backend.LibraryDatabase
	settings  backend.GlobalSettings
	runners   []string
	report    backend.ConflictReport
	valid     bool
	addGameID string

	lastOrder    []string
	lastSettings backend.GlobalSettings
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rejects:   make(map[string]error),
		library:   map[string]backend.LibraryDatabase{},
		settings:  backend.GlobalSettings{StreamSafe: true, NSFWBehavior: "blur"},
		addGameID: "new-game",
	}
}

func (f *fakeBackend) record(command string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, command)
	return f.rejects[command]
}

func (f *fakeBackend) called(command string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == command {
			return true
		}
	}
	return false
}

func (f *fakeBackend) GetLibrary() (map[string]backend.LibraryDatabase, error) {
	if err := f.record("get_library"); err != nil {
		return nil, err
	}
	return f.library, nil
}

func (f *fakeBackend) GetSettings() (backend.GlobalSettings, error) {
	if err := f.record("get_settings"); err != nil {
		return backend.GlobalSettings{}, err
	}
	return f.settings, nil
}

func (f *fakeBackend) UpdateSettings(settings backend.GlobalSettings) error {
	f.mu.Lock()
	f.lastSettings = settings
	f.mu.Unlock()
	return f.record("update_settings")
}

func (f *fakeBackend) ListRunners() ([]string, error) {
	if err := f.record("list_runners"); err != nil {
		return nil, err
	}
	return f.runners, nil
}

func (f *fakeBackend) AddGame(path string) (string, error) {
	if err := f.record("add_game"); err != nil {
		return "", err
	}
	return f.addGameID, nil
}

func (f *fakeBackend) RemoveGame(gameID string) error { return f.record("remove_game") }

func (f *fakeBackend) UpdateGameConfig(gameID string, update backend.GameConfigUpdate) error {
	return f.record("update_game_config")
}

func (f *fakeBackend) ImportMod(gameID, path string) (*backend.ModRecord, error) {
	if err := f.record("import_mod"); err != nil {
		return nil, err
	}
	return &backend.ModRecord{ID: "imported"}, nil
}

func (f *fakeBackend) DeleteMod(modID string) error { return f.record("delete_mod") }

func (f *fakeBackend) ToggleMod(gameID, modID string, enabled bool) error {
	return f.record("toggle_mod")
}

func (f *fakeBackend) SetLoadOrder(gameID string, order []string) error {
	f.mu.Lock()
	f.lastOrder = append([]string(nil), order...)
	f.mu.Unlock()
	return f.record("set_load_order")
}

func (f *fakeBackend) UpdateModTags(gameID, modID string, tags []string) error {
	return f.record("update_mod_tags")
}

func (f *fakeBackend) ValidateMod(modID string) (bool, error) {
	if err := f.record("validate_mod"); err != nil {
		return false, err
	}
	return f.valid, nil
}

func (f *fakeBackend) DeployMods(gamePath string) (backend.ConflictReport, error) {
	if err := f.record("deploy_mods"); err != nil {
		return backend.ConflictReport{}, err
	}
	return f.report, nil
}

func (f *fakeBackend) SwitchProfile(gameID, profileID string) error {
	return f.record("switch_profile")
}

func (f *fakeBackend) CreateProfile(gameID, name string) (*backend.Profile, error) {
	if err := f.record("create_profile"); err != nil {
		return nil, err
	}
	return &backend.Profile{ID: "new-profile", Name: name}, nil
}

func (f *fakeBackend) DuplicateProfile(gameID, profileID, name string) (*backend.Profile, error) {
	if err := f.record("duplicate_profile"); err != nil {
		return nil, err
	}
	return &backend.Profile{ID: "dup-profile", Name: name}, nil
}

func (f *fakeBackend) UpdateProfile(gameID, profileID string, update backend.ProfileUpdate) error {
	return f.record("update_profile")
}

func (f *fakeBackend) DeleteProfile(gameID, profileID string) error {
	return f.record("delete_profile")
}

func (f *fakeBackend) RenameProfile(gameID, profileID, newName string) error {
	return f.record("rename_profile")
}

func (f *fakeBackend) EnsureGameResources(gameID string) error {
	return f.record("ensure_game_resources")
}

func (f *fakeBackend) LaunchGame(gameID string) error { return f.record("launch_game") }
func (f *fakeBackend) KillGame() error                { return f.record("kill_game") }
func (f *fakeBackend) ForceResetState() error         { return f.record("force_reset_state") }

func (f *fakeBackend) StartGameDownload(gameID string, selectedCategoryIDs []string) error {
	return f.record("start_game_download")
}

func (f *fakeBackend) PauseGameDownload(gameID string) error {
	return f.record("pause_game_download")
}

func (f *fakeBackend) ResumeGameDownload(gameID string) error {
	return f.record("resume_game_download")
}

func (f *fakeBackend) RepairGame(gameID string) error        { return f.record("repair_game") }
func (f *fakeBackend) WipeGameMods(gameID string) error      { return f.record("wipe_game_mods") }
func (f *fakeBackend) ResetGameProfiles(gameID string) error { return f.record("reset_game_profiles") }
func (f *fakeBackend) UninstallGameFiles(gameID string) error {
	return f.record("uninstall_game_files")
}
