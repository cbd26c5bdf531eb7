package config

// StateBackend selects where per-client UI state is persisted.
type StateBackend string

const (
	StateSQLite StateBackend = "sqlite"
	StateFile   StateBackend = "file"
	StateMemory StateBackend = "memory"
)

// Config is the top-level docshell configuration, corresponding to .docshell.yml.
type Config struct {
	SiteTitle  string          `yaml:"site_title" koanf:"site_title"`
	ContentDir string          `yaml:"content_dir" koanf:"content_dir"`
	NavFile    string          `yaml:"nav_file" koanf:"nav_file"`
	BasePath   string          `yaml:"base_path" koanf:"base_path"`
	OutputDir  string          `yaml:"output_dir" koanf:"output_dir"`
	Include    []string        `yaml:"include" koanf:"include"`
	Exclude    []string        `yaml:"exclude" koanf:"exclude"`
	MatchMode  string          `yaml:"match_mode" koanf:"match_mode"`
	State      StateConfig     `yaml:"state" koanf:"state"`
	Server     ServerConfig    `yaml:"server" koanf:"server"`
	Highlight  HighlightConfig `yaml:"highlight" koanf:"highlight"`
	GitRemote  GitRemoteConfig `yaml:"git_remote" koanf:"git_remote"`
	Log        LogConfig       `yaml:"log" koanf:"log"`
}

// StateConfig holds UI state persistence settings.
type StateConfig struct {
	Backend StateBackend `yaml:"backend" koanf:"backend"`
	// Path is the database file for sqlite or the directory for file.
	Path string `yaml:"path" koanf:"path"`
}

// ServerConfig holds settings for `docshell serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// HighlightConfig selects the code highlighting theme.
type HighlightConfig struct {
	Style string `yaml:"style" koanf:"style"`
}

// GitRemoteConfig points "Edit on GitHub" links at the source repository.
type GitRemoteConfig struct {
	Href string `yaml:"href" koanf:"href"`
	Ref  string `yaml:"ref" koanf:"ref"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	File   string `yaml:"file,omitempty" koanf:"file"`
}
