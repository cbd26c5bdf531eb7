package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
	"github.com/ziadkadry99/docshell/internal/server"
	"github.com/ziadkadry99/docshell/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation with per-reader navigation state",
	Long: `Starts the live documentation server. Expanded nav groups, sidebar visibility
and the preferred code language are remembered per reader in the configured
state backend and pushed to the reader's other open tabs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "reload the site when content changes")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Named("serve")

	opts := siteOptions(cfg)
	s, err := site.Load(opts)
	if err != nil {
		return fmt.Errorf("loading site: %w", err)
	}

	backend, closeBackend, err := openStateBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}

	srv, err := server.New(server.Config{
		Port:     port,
		AllowAll: cfg.Server.AllowAllOrigins,
		Style:    cfg.Highlight.Style,
	}, s, backend)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		w, err := site.NewWatcher(cfg.ContentDir, opts.NavFile, site.DefaultDebounce, func(paths []string) {
			reloaded, err := site.Load(opts)
			if err != nil {
				log.Error("reloading site", zap.Error(err))
				return
			}
			if err := srv.SetSite(reloaded); err != nil {
				log.Error("swapping site", zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		w.Start()
		defer w.Stop()
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d%s", port, path.Join("/", cfg.BasePath))
	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(url)
	}

	fmt.Fprintf(os.Stderr, "docshell %s serving %s\n", Version, url)
	fmt.Fprintf(os.Stderr, "  Content: %s (%d pages)\n", cfg.ContentDir, len(s.Pages()))
	fmt.Fprintf(os.Stderr, "  State: %s\n", cfg.State.Backend)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
