package backend

import (
	"encoding/json"
	"fmt"
)

// Update operations are sum types: one struct per distinct mutation, each
// carrying only the fields it legitimately changes. On the wire every variant
// becomes {"op": "<name>", ...fields} so the backend never has to probe for
// field presence.

// GameConfigUpdate is a single typed mutation of a game's configuration.
type GameConfigUpdate interface {
	gameConfigOp() string
}

type SetGameName struct {
	Name string `json:"name"`
}

type SetGameArtwork struct {
	CoverImage string `json:"cover_image"`
	Icon       string `json:"icon"`
}

type SetGamePaths struct {
	InstallPath string `json:"install_path"`
	ExeName     string `json:"exe_name"`
}

type SetGameLaunchArgs struct {
	LaunchArgs []string `json:"launch_args"`
}

type SetInjectionMethod struct {
	Method string `json:"injection_method"`
}

type SetModloaderEnabled struct {
	Enabled bool `json:"enabled"`
}

type SetAutoUpdate struct {
	Enabled bool `json:"enabled"`
}

type SetActiveProfile struct {
	ProfileID string `json:"profile_id"`
}

type SetActiveRunner struct {
	RunnerID string `json:"runner_id"`
}

type SetPrefixPath struct {
	Path string `json:"path"`
}

func (SetGameName) gameConfigOp() string        { return "set_name" }
func (SetGameArtwork) gameConfigOp() string     { return "set_artwork" }
func (SetGamePaths) gameConfigOp() string       { return "set_paths" }
func (SetGameLaunchArgs) gameConfigOp() string  { return "set_launch_args" }
func (SetInjectionMethod) gameConfigOp() string { return "set_injection_method" }
func (SetModloaderEnabled) gameConfigOp() string {
	return "set_modloader_enabled"
}
func (SetAutoUpdate) gameConfigOp() string    { return "set_auto_update" }
func (SetActiveProfile) gameConfigOp() string { return "set_active_profile" }
func (SetActiveRunner) gameConfigOp() string  { return "set_active_runner" }
func (SetPrefixPath) gameConfigOp() string    { return "set_prefix_path" }

// ProfileUpdate is a single typed mutation of one profile.
type ProfileUpdate interface {
	profileOp() string
}

type SetProfileName struct {
	Name string `json:"name"`
}

type SetProfileDescription struct {
	Description string `json:"description"`
}

type SetProfileLaunchArgs struct {
	LaunchArgs []string `json:"launch_args"`
}

type SetProfileSavePath struct {
	SaveDataPath string `json:"save_data_path"`
}

type SetEnabledMods struct {
	ModIDs []string `json:"enabled_mod_ids"`
}

type SetProfileLoadOrder struct {
	LoadOrder []string `json:"load_order"`
}

func (SetProfileName) profileOp() string        { return "set_name" }
func (SetProfileDescription) profileOp() string { return "set_description" }
func (SetProfileLaunchArgs) profileOp() string  { return "set_launch_args" }
func (SetProfileSavePath) profileOp() string    { return "set_save_path" }
func (SetEnabledMods) profileOp() string        { return "set_enabled_mods" }
func (SetProfileLoadOrder) profileOp() string   { return "set_load_order" }

// encodeUpdate flattens an update variant into its wire form with the op tag.
func encodeUpdate(op string, update interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update '%s': %w", op, err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten update '%s': %w", op, err)
	}
	fields["op"] = op
	return json.Marshal(fields)
}
