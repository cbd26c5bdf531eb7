package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docshell/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docshell configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docshell for your content and generates a .docshell.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
