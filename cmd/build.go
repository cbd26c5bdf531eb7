package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docshell/internal/progress"
	"github.com/ziadkadry99/docshell/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the documentation as a static website",
	Long: `Builds a self-contained static HTML site from the content directory, with
search and navigation. Navigation state is kept in the browser.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("preview", false, "serve the built site locally after building")
	buildCmd.Flags().Int("port", 8080, "port for the preview server")
	buildCmd.Flags().Bool("open", false, "open browser automatically when previewing")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	s, err := site.Load(siteOptions(cfg))
	if err != nil {
		return fmt.Errorf("loading site: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := site.NewSiteGenerator(s, outputDir, cfg.Highlight.Style)
	generator.Reporter = progress.NewReporter()
	pageCount, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	preview, _ := cmd.Flags().GetBool("preview")
	if !preview {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	openBrowser, _ := cmd.Flags().GetBool("open")

	fmt.Printf("Serving at http://localhost:%d%s, press Ctrl+C to stop\n", port, cfg.BasePath)
	if err := site.Preview(ctx, outputDir, cfg.BasePath, port, openBrowser); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
