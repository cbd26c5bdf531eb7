package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// navFileCandidates are checked in order when guessing the nav file.
var navFileCandidates = []string{"nav.yml", "nav.yaml", "SUMMARY.md"}

// detectNavFile looks for a known nav file inside contentDir.
func detectNavFile(contentDir string) string {
	for _, name := range navFileCandidates {
		p := filepath.Join(contentDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// detectContentDir returns the first conventional docs directory present.
func detectContentDir() string {
	for _, dir := range []string{"content", "docs", "src"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docshell.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docshell! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = title

	// 2. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Content directory",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	// 3. Nav file.
	navDefault := detectNavFile(contentDir)
	if navDefault != "" {
		fmt.Printf("Detected nav file: %s\n\n", navDefault)
	}
	navPrompt := promptui.Prompt{
		Label:   "Nav file (YAML or SUMMARY.md, blank to build from directories)",
		Default: navDefault,
	}
	navFile, err := navPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("nav file: %w", err)
	}
	cfg.NavFile = strings.TrimSpace(navFile)

	// 4. State backend.
	backendPrompt := promptui.Select{
		Label: "Where should reader UI state be stored",
		Items: []string{
			"sqlite (one database file)",
			"file   (one JSON file per reader)",
			"memory (forgotten on restart)",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("state backend: %w", err)
	}
	backends := []StateBackend{StateSQLite, StateFile, StateMemory}
	cfg.State.Backend = backends[backendIdx]
	if cfg.State.Backend == StateFile {
		cfg.State.Path = ".docshell/state"
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 0 || p > 65535 {
				return fmt.Errorf("enter a port between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 6. Git remote for edit links.
	remotePrompt := promptui.Prompt{
		Label:   "Repository URL for \"Edit on GitHub\" links (optional)",
		Default: "",
	}
	remote, err := remotePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("git remote: %w", err)
	}
	cfg.GitRemote.Href = strings.TrimSpace(remote)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

// SplitList splits a comma-separated string and trims whitespace.
func SplitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
