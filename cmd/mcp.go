package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/docshell/internal/mcp"
	"github.com/ziadkadry99/docshell/internal/site"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing page listing, reading, navigation and search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s, err := site.Load(siteOptions(cfg))
		if err != nil {
			return fmt.Errorf("loading site: %w", err)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "docshell MCP server started on stdio (content=%s, pages=%d)\n", cfg.ContentDir, len(s.Pages()))

		return mcpserver.NewServer(s).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
