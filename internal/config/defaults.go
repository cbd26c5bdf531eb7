package config

// DefaultConfigFile is the file `docshell init` writes and other commands read.
const DefaultConfigFile = ".docshell.yml"

// DefaultExcludes are glob patterns skipped when discovering content.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"_*/**",
	"**/.*",
	"**/SUMMARY.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:  "Documentation",
		ContentDir: "content",
		OutputDir:  "public",
		Include:    []string{"**/*.md", "**/*.markdown", "**/*.mdx.json"},
		Exclude:    append([]string(nil), DefaultExcludes...),
		MatchMode:  "exact",
		State: StateConfig{
			Backend: StateSQLite,
			Path:    ".docshell/state.db",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Highlight: HighlightConfig{
			Style: "github",
		},
		GitRemote: GitRemoteConfig{
			Ref: "main",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
