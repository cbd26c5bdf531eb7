package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/site"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the resolved navigation tree",
	Long:  `Loads the site and prints its navigation tree, group ids and tree fingerprint. Useful for checking a nav file or the tree built from directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := site.Load(siteOptions(cfg))
		if err != nil {
			return fmt.Errorf("loading site: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s.Nav())
		}
		printNav(os.Stdout, s.Nav())
		fmt.Printf("\n%d group(s), fingerprint %s\n", len(nav.GroupIDs(s.Nav())), nav.Fingerprint(s.Nav()))
		return nil
	},
}

func init() {
	navCmd.Flags().Bool("json", false, "print the tree as JSON")
	rootCmd.AddCommand(navCmd)
}

func printNav(w io.Writer, items []*nav.Item) {
	nav.Walk(items, func(item *nav.Item, depth int) bool {
		indent := strings.Repeat("  ", depth)
		if item.IsGroup() {
			fmt.Fprintf(w, "%s%s [%s]", indent, item.Title, item.ID)
		} else {
			fmt.Fprintf(w, "%s%s", indent, item.Title)
		}
		if item.Path != "" {
			fmt.Fprintf(w, "  %s", item.Path)
		}
		fmt.Fprintln(w)
		return true
	})
}
