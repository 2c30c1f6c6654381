package library

// Domain model held by the Store. Identity fields always originate from the
// backend; the client never invents ids.

// InstallStatus is a game's lifecycle state. Transitions are driven by
// backend events or by action completion, never set directly by consumers.
type InstallStatus string

const (
	StatusRemote      InstallStatus = "Remote"
	StatusQueued      InstallStatus = "Queued"
	StatusDownloading InstallStatus = "Downloading"
	StatusUpdating    InstallStatus = "Updating"
	StatusInstalled   InstallStatus = "Installed"
	StatusCorrupted   InstallStatus = "Corrupted"
	StatusPlaying     InstallStatus = "Playing"
)

// Injection method names as the backend reports them.
const (
	InjectionNone = "None"
)

// Validation is a mod's tri-state integrity flag. It only moves off unknown
// via an explicit validation round-trip.
type Validation int

const (
	ValidationUnknown Validation = iota
	ValidationPassed
	ValidationFailed
)

// Mod is one imported mod owned by a game.
type Mod struct {
	ID        string
	Name      string
	Author    string
	Version   string
	Tags      []string
	Enabled   bool
	Validated Validation
	Size      string
	AddedAt   string
	Character string
}

// Profile is one named mod configuration owned by a game.
type Profile struct {
	ID            string
	Name          string
	Description   string
	EnabledModIDs []string
	LoadOrder     []string
	LaunchArgs    []string
	SaveDataPath  string
	AddedAt       string
}

// Game is the aggregate root: profiles ordered, mods keyed by id.
type Game struct {
	ID               string
	Name             string
	ShortName        string
	Developer        string
	Description      string
	Status           InstallStatus
	Version          string
	Size             string
	ActiveProfileID  string
	Profiles         []Profile
	Mods             map[string]Mod
	InstallPath      string
	ExeName          string
	LaunchArgs       []string
	InjectionMethod  string
	ModloaderEnabled bool
	AutoUpdate       bool
	ActiveRunnerID   string
	PrefixPath       string
}

// ActiveProfile returns the profile ActiveProfileID points at.
func (g *Game) ActiveProfile() (*Profile, bool) {
	for i := range g.Profiles {
		if g.Profiles[i].ID == g.ActiveProfileID {
			return &g.Profiles[i], true
		}
	}
	return nil, false
}

// ExecutablePath joins install path and exe name with the separator the
// install path already uses, matching what the backend expects.
func (g *Game) ExecutablePath() string {
	if g.InstallPath == "" || g.ExeName == "" {
		return ""
	}
	separator := "/"
	for _, r := range g.InstallPath {
		if r == '\\' {
			separator = "\\"
			break
		}
	}
	return g.InstallPath + separator + g.ExeName
}

// nsfwTags is the fixed vocabulary that drives stream-safe filtering. It is
// presentation-relevant metadata, not a distinct type.
var nsfwTags = map[string]bool{
	"nsfw":       true,
	"18+":        true,
	"adult":      true,
	"suggestive": true,
}

// IsNSFW reports whether any of the mod's tags belong to the NSFW vocabulary.
func IsNSFW(tags []string) bool {
	for _, tag := range tags {
		if nsfwTags[tag] {
			return true
		}
	}
	return false
}
