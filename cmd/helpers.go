package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ziadkadry99/docshell/internal/config"
	"github.com/ziadkadry99/docshell/internal/db"
	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/page"
	"github.com/ziadkadry99/docshell/internal/site"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docshell init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// siteOptions maps the config file onto site loading options.
func siteOptions(cfg *config.Config) site.Options {
	opts := site.Options{
		SiteTitle:  cfg.SiteTitle,
		ContentDir: cfg.ContentDir,
		NavFile:    cfg.NavFile,
		BasePath:   cfg.BasePath,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
		MatchMode:  nav.MatchMode(cfg.MatchMode),
		Remote:     page.GitRemote{Href: cfg.GitRemote.Href, Ref: cfg.GitRemote.Ref},
	}
	if !filepath.IsAbs(cfg.ContentDir) {
		opts.SourcePrefix = filepath.ToSlash(filepath.Clean(cfg.ContentDir))
	}
	return opts
}

// openStateBackend opens the configured reader state backend. The returned
// function releases it.
func openStateBackend(cfg *config.Config) (uistate.Backend, func() error, error) {
	switch cfg.State.Backend {
	case config.StateSQLite:
		database, err := db.Open(cfg.State.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening state database: %w", err)
		}
		return uistate.NewSQLiteBackend(database), database.Close, nil
	case config.StateFile:
		b, err := uistate.NewFileBackend(cfg.State.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, noClose, nil
	default:
		return uistate.NewMemoryBackend(), noClose, nil
	}
}

func noClose() error { return nil }
