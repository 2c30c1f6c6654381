package backend

// Wire types for the command/event channel. Field names mirror the backend's
// snake_case JSON exactly; the library package maps these onto its own model.

// GameConfig is the backend's canonical record for one game.
type GameConfig struct {
	ID                        string      `json:"id"`
	Name                      string      `json:"name"`
	ShortName                 string      `json:"short_name"`
	Developer                 string      `json:"developer"`
	Description               string      `json:"description"`
	InstallPath               string      `json:"install_path"`
	ExePath                   string      `json:"exe_path"`
	ExeName                   string      `json:"exe_name"`
	Version                   string      `json:"version"`
	RemoteVersion             string      `json:"remote_version,omitempty"`
	Size                      string      `json:"size"`
	AddedAt                   string      `json:"added_at"`
	LaunchArgs                []string    `json:"launch_args"`
	ActiveProfileID           string      `json:"active_profile_id"`
	InjectionMethod           string      `json:"injection_method"`
	SupportedInjectionMethods []string    `json:"supported_injection_methods,omitempty"`
	ModloaderEnabled          bool        `json:"modloader_enabled"`
	AutoUpdate                bool        `json:"auto_update"`
	ActiveRunnerID            string      `json:"active_runner_id,omitempty"`
	PrefixPath                string      `json:"prefix_path,omitempty"`
	InstallStatus             string      `json:"install_status"`
	RemoteInfo                *RemoteInfo `json:"remote_info,omitempty"`
}

// RemoteInfo describes where a not-yet-installed game's assets live.
type RemoteInfo struct {
	ManifestURL  string `json:"manifest_url"`
	ChunkBaseURL string `json:"chunk_base_url"`
	TotalSize    int64  `json:"total_size"`
	Version      string `json:"version"`
}

// ModMetadata is descriptive information parsed by the backend on import.
type ModMetadata struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Author       string `json:"author"`
	URL          string `json:"url,omitempty"`
	PreviewImage string `json:"preview_image,omitempty"`
}

// ModCompatibility records which game/character content a mod targets.
type ModCompatibility struct {
	Game        string   `json:"game"`
	Character   string   `json:"character"`
	Hashes      []string `json:"hashes"`
	Fingerprint string   `json:"fingerprint"`
}

type Keybind struct {
	Label    string `json:"label"`
	Variable string `json:"variable"`
}

type ModConfig struct {
	Tags     []string           `json:"tags"`
	Keybinds map[string]Keybind `json:"keybinds,omitempty"`
}

// ModRecord is the backend's canonical record for one imported mod.
type ModRecord struct {
	ID            string           `json:"id"`
	Path          string           `json:"path"`
	Size          string           `json:"size"`
	Meta          ModMetadata      `json:"meta"`
	Compatibility ModCompatibility `json:"compatibility"`
	Config        ModConfig        `json:"config"`
	Enabled       bool             `json:"enabled"`
	AddedAt       string           `json:"added_at"`
}

// Profile is one named mod configuration for a game.
type Profile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	EnabledModIDs []string `json:"enabled_mod_ids"`
	LoadOrder     []string `json:"load_order"`
	AddedAt       string   `json:"added_at"`
	LaunchArgs    []string `json:"launch_args"`
	SaveDataPath  string   `json:"save_data_path,omitempty"`
}

// LibraryDatabase is the full per-game state pushed by the backend. Snapshot
// events and get_library both deliver a map of game id to this structure.
type LibraryDatabase struct {
	Version         string                `json:"version"`
	Games           map[string]GameConfig `json:"games"`
	Mods            map[string]ModRecord  `json:"mods"`
	Profiles        map[string]Profile    `json:"profiles"`
	ActiveProfileID string                `json:"active_profile_id,omitempty"`
	LastSync        string                `json:"last_sync,omitempty"`
}

// GlobalSettings is the backend's process-wide configuration. Mutated only
// through a read-modify-write of the last-known-good copy.
type GlobalSettings struct {
	Language        string `json:"language"`
	StoragePath     string `json:"yago_storage_path"`
	DefaultGamesDir string `json:"default_games_path"`
	ModsPath        string `json:"mods_path"`
	RunnersPath     string `json:"runners_path"`
	PrefixesPath    string `json:"prefixes_path"`
	CachePath       string `json:"cache_path"`
	DefaultRunnerID string `json:"default_runner_id,omitempty"`
	StreamSafe      bool   `json:"stream_safe"`
	NSFWBehavior    string `json:"nsfw_behavior"`
	CloseOnLaunch   bool   `json:"close_on_launch"`
}

// ConflictReport maps a content hash to the ordered list of mod ids that
// produced that hash during deployment. The last id in each list won.
type ConflictReport struct {
	OverwrittenHashes map[string][]string `json:"overwritten_hashes"`
}

// DownloadProgress is an ephemeral per-game progress tick.
type DownloadProgress struct {
	GameID          string  `json:"game_id"`
	Percentage      float64 `json:"percentage"`
	SpeedBps        float64 `json:"speed_bps"`
	EtaSecs         float64 `json:"eta_secs"`
	DownloadedBytes int64   `json:"downloaded_bytes"`
	TotalBytes      int64   `json:"total_bytes"`
}

// LoaderProgress reports loader download/installation progress for a game.
type LoaderProgress struct {
	GameID   string  `json:"game_id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"` // 0.0 to 1.0
}

// ProtonProgress reports runner download progress, keyed by version.
type ProtonProgress struct {
	Version  string  `json:"version"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"` // 0.0 to 1.0
}

// IdentifiedGame is the backend's answer to identify_game for a path.
type IdentifiedGame struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	ShortName                 string   `json:"short_name"`
	Developer                 string   `json:"developer"`
	Version                   string   `json:"version"`
	Size                      string   `json:"size"`
	InstallPath               string   `json:"install_path"`
	ExeName                   string   `json:"exe_name"`
	SupportedInjectionMethods []string `json:"supported_injection_methods"`
	InjectionMethod           string   `json:"injection_method"`
	ModloaderEnabled          bool     `json:"modloader_enabled"`
}

// DiscoveredGame is one hit from a filesystem scan.
type DiscoveredGame struct {
	TemplateID string `json:"template_id"`
	Path       string `json:"path"`
}

// FileNode is one entry of a mod's file tree.
type FileNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"` // "file" or "folder"
	Size     string     `json:"size,omitempty"`
	Children []FileNode `json:"children,omitempty"`
}

// ModSnippet is the reduced mod view used by the skin inventory.
type ModSnippet struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Enabled bool     `json:"enabled"`
}

// CharacterGroup groups a character's skins and the active rotation cycle.
type CharacterGroup struct {
	Skins       []ModSnippet `json:"skins"`
	ActiveCycle []string     `json:"active_cycle"`
}

// InstallOption is one selectable download category for a remote game.
type InstallOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	IsRequired bool   `json:"is_required"`
}
