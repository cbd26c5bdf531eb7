package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docshell/internal/config"
	"github.com/ziadkadry99/docshell/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docshell",
	Short: "Documentation site shell with persistent navigation state",
	Long: `Docshell turns a directory of Markdown and pre-compiled rich content into a
documentation site: a collapsible navigation sidebar whose state is remembered
per reader, previous/next pagination and rendered pages. Sites can be served
live or built into static HTML, and exposed to AI agents via MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		return logger.Init(logger.Config{
			Level:  level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
