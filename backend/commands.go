package backend

import "encoding/json"

// One method per backend operation. These are pure translation: a typed
// argument object in, a typed result or the backend's rejection out.

type gameIDArgs struct {
	GameID string `json:"game_id"`
}

type modIDArgs struct {
	ModID string `json:"mod_id"`
}

type pathArgs struct {
	Path string `json:"path"`
}

// --- Library ---

// GetLibrary fetches the complete library state, keyed by game id.
func (c *Client) GetLibrary() (map[string]LibraryDatabase, error) {
	var library map[string]LibraryDatabase
	if err := c.invoke("get_library", nil, &library); err != nil {
		return nil, err
	}
	return library, nil
}

// AddGame registers the game whose executable lives at path. Returns the new
// game id; the full record arrives on the next library snapshot.
func (c *Client) AddGame(path string) (string, error) {
	var gameID string
	if err := c.invoke("add_game", pathArgs{Path: path}, &gameID); err != nil {
		return "", err
	}
	return gameID, nil
}

func (c *Client) RemoveGame(gameID string) error {
	return c.invoke("remove_game", gameIDArgs{GameID: gameID}, nil)
}

// IdentifyGame asks the backend which known game lives at path.
func (c *Client) IdentifyGame(path string) (*IdentifiedGame, error) {
	var identified IdentifiedGame
	if err := c.invoke("identify_game", pathArgs{Path: path}, &identified); err != nil {
		return nil, err
	}
	return &identified, nil
}

// ScanForGames runs the backend's drive scan for known game installations.
func (c *Client) ScanForGames() ([]DiscoveredGame, error) {
	var discovered []DiscoveredGame
	if err := c.invoke("scan_for_games", nil, &discovered); err != nil {
		return nil, err
	}
	return discovered, nil
}

func (c *Client) UpdateGameConfig(gameID string, update GameConfigUpdate) error {
	encoded, err := encodeUpdate(update.gameConfigOp(), update)
	if err != nil {
		return err
	}
	args := struct {
		GameID string          `json:"game_id"`
		Update json.RawMessage `json:"update"`
	}{gameID, encoded}
	return c.invoke("update_game_config", args, nil)
}

// --- Mods ---

// ImportMod hands a dropped/picked archive path to the backend. The returned
// record is informational; the canonical record arrives with the snapshot.
func (c *Client) ImportMod(gameID, path string) (*ModRecord, error) {
	args := struct {
		GameID string `json:"game_id"`
		Path   string `json:"path"`
	}{gameID, path}
	var record ModRecord
	if err := c.invoke("import_mod", args, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) DeleteMod(modID string) error {
	return c.invoke("delete_mod", modIDArgs{ModID: modID}, nil)
}

func (c *Client) ToggleMod(gameID, modID string, enabled bool) error {
	args := struct {
		GameID  string `json:"game_id"`
		ModID   string `json:"mod_id"`
		Enabled bool   `json:"enabled"`
	}{gameID, modID, enabled}
	return c.invoke("toggle_mod", args, nil)
}

func (c *Client) SetLoadOrder(gameID string, order []string) error {
	args := struct {
		GameID string   `json:"game_id"`
		Order  []string `json:"order"`
	}{gameID, order}
	return c.invoke("set_load_order", args, nil)
}

func (c *Client) UpdateModTags(gameID, modID string, tags []string) error {
	args := struct {
		GameID string   `json:"game_id"`
		ModID  string   `json:"mod_id"`
		Tags   []string `json:"tags"`
	}{gameID, modID, tags}
	return c.invoke("update_mod_tags", args, nil)
}

// ValidateMod runs the backend's integrity check for one mod.
func (c *Client) ValidateMod(modID string) (bool, error) {
	var valid bool
	if err := c.invoke("validate_mod", modIDArgs{ModID: modID}, &valid); err != nil {
		return false, err
	}
	return valid, nil
}

// DeployMods deploys the active profile's mods next to the game executable
// and returns the hash conflict report computed during deployment.
func (c *Client) DeployMods(gamePath string) (ConflictReport, error) {
	args := struct {
		GamePath string `json:"game_path"`
	}{gamePath}
	var report ConflictReport
	if err := c.invoke("deploy_mods", args, &report); err != nil {
		return ConflictReport{}, err
	}
	return report, nil
}

// --- Mod files ---

func (c *Client) GetModFiles(modID string) ([]FileNode, error) {
	var nodes []FileNode
	if err := c.invoke("get_mod_files", modIDArgs{ModID: modID}, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (c *Client) ReadModFile(modID, filePath string) (string, error) {
	args := struct {
		ModID    string `json:"mod_id"`
		FilePath string `json:"file_path"`
	}{modID, filePath}
	var content string
	if err := c.invoke("read_mod_file", args, &content); err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) WriteModFile(modID, filePath, content string) error {
	args := struct {
		ModID    string `json:"mod_id"`
		FilePath string `json:"file_path"`
		Content  string `json:"content"`
	}{modID, filePath, content}
	return c.invoke("write_mod_file", args, nil)
}

// GetSkinInventory groups a game's skin mods by character.
func (c *Client) GetSkinInventory(gameID string) (map[string]CharacterGroup, error) {
	var inventory map[string]CharacterGroup
	if err := c.invoke("get_skin_inventory", gameIDArgs{GameID: gameID}, &inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// --- Profiles ---

type profileArgs struct {
	GameID    string `json:"game_id"`
	ProfileID string `json:"profile_id"`
}

func (c *Client) SwitchProfile(gameID, profileID string) error {
	return c.invoke("switch_profile", profileArgs{gameID, profileID}, nil)
}

func (c *Client) CreateProfile(gameID, name string) (*Profile, error) {
	args := struct {
		GameID string `json:"game_id"`
		Name   string `json:"name"`
	}{gameID, name}
	var profile Profile
	if err := c.invoke("create_profile", args, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) DuplicateProfile(gameID, profileID, name string) (*Profile, error) {
	args := struct {
		GameID    string `json:"game_id"`
		ProfileID string `json:"profile_id"`
		Name      string `json:"name"`
	}{gameID, profileID, name}
	var profile Profile
	if err := c.invoke("duplicate_profile", args, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(gameID, profileID string, update ProfileUpdate) error {
	encoded, err := encodeUpdate(update.profileOp(), update)
	if err != nil {
		return err
	}
	args := struct {
		GameID    string          `json:"game_id"`
		ProfileID string          `json:"profile_id"`
		Update    json.RawMessage `json:"update"`
	}{gameID, profileID, encoded}
	return c.invoke("update_profile", args, nil)
}

func (c *Client) DeleteProfile(gameID, profileID string) error {
	return c.invoke("delete_profile", profileArgs{gameID, profileID}, nil)
}

func (c *Client) RenameProfile(gameID, profileID, newName string) error {
	args := struct {
		GameID    string `json:"game_id"`
		ProfileID string `json:"profile_id"`
		NewName   string `json:"new_name"`
	}{gameID, profileID, newName}
	return c.invoke("rename_profile", args, nil)
}

// --- Settings ---

func (c *Client) GetSettings() (GlobalSettings, error) {
	var settings GlobalSettings
	if err := c.invoke("get_settings", nil, &settings); err != nil {
		return GlobalSettings{}, err
	}
	return settings, nil
}

func (c *Client) UpdateSettings(settings GlobalSettings) error {
	args := struct {
		Settings GlobalSettings `json:"settings"`
	}{settings}
	return c.invoke("update_settings", args, nil)
}

// --- Runners and loaders ---

func (c *Client) ListRunners() ([]string, error) {
	var runners []string
	if err := c.invoke("list_runners", nil, &runners); err != nil {
		return nil, err
	}
	return runners, nil
}

func (c *Client) RemoveRunner(runnerID string) error {
	args := struct {
		RunnerID string `json:"runner_id"`
	}{runnerID}
	return c.invoke("remove_runner", args, nil)
}

func (c *Client) InstallCommonLibs() error {
	return c.invoke("install_common_libs", nil, nil)
}

func (c *Client) DownloadLoader(gameID string) error {
	return c.invoke("download_loader", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) DownloadProton() error {
	return c.invoke("download_proton", nil, nil)
}

// EnsureGameResources makes sure loaders and injection helpers for the game
// are present, downloading them if necessary.
func (c *Client) EnsureGameResources(gameID string) error {
	return c.invoke("ensure_game_resources", gameIDArgs{GameID: gameID}, nil)
}

// --- Process lifecycle ---

func (c *Client) LaunchGame(gameID string) error {
	return c.invoke("launch_game", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) KillGame() error {
	return c.invoke("kill_game", nil, nil)
}

// ForceResetState clears the backend's running/deploying bookkeeping after a
// crash left it inconsistent.
func (c *Client) ForceResetState() error {
	return c.invoke("force_reset_state", nil, nil)
}

// --- Remote games and downloads ---

// InitializeRemoteGame creates a library entry for a downloadable game and
// returns its id.
func (c *Client) InitializeRemoteGame(templateID string) (string, error) {
	args := struct {
		TemplateID string `json:"template_id"`
	}{templateID}
	var gameID string
	if err := c.invoke("initialize_remote_game", args, &gameID); err != nil {
		return "", err
	}
	return gameID, nil
}

func (c *Client) GetInstallOptions(gameID string) ([]InstallOption, error) {
	var options []InstallOption
	if err := c.invoke("get_install_options", gameIDArgs{GameID: gameID}, &options); err != nil {
		return nil, err
	}
	return options, nil
}

func (c *Client) StartGameDownload(gameID string, selectedCategoryIDs []string) error {
	args := struct {
		GameID              string   `json:"game_id"`
		SelectedCategoryIDs []string `json:"selected_category_ids"`
	}{gameID, selectedCategoryIDs}
	return c.invoke("start_game_download", args, nil)
}

func (c *Client) PauseGameDownload(gameID string) error {
	return c.invoke("pause_game_download", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) ResumeGameDownload(gameID string) error {
	return c.invoke("resume_game_download", gameIDArgs{GameID: gameID}, nil)
}

// --- Game data maintenance ---

func (c *Client) RepairGame(gameID string) error {
	return c.invoke("repair_game", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) WipeGameMods(gameID string) error {
	return c.invoke("wipe_game_mods", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) ResetGameProfiles(gameID string) error {
	return c.invoke("reset_game_profiles", gameIDArgs{GameID: gameID}, nil)
}

func (c *Client) UninstallGameFiles(gameID string) error {
	return c.invoke("uninstall_game_files", gameIDArgs{GameID: gameID}, nil)
}

// --- OS integration ---

// OpenPath opens a path in the OS file browser. Fire and forget.
func (c *Client) OpenPath(path string) error {
	return c.invoke("open_path", pathArgs{Path: path}, nil)
}
