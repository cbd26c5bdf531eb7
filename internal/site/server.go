package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"path"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
)

// Preview serves a statically built site from dir until ctx is cancelled.
// The files are mounted under basePath so links resolve as in production.
func Preview(ctx context.Context, dir, basePath string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d%s", port, path.Join("/", basePath))

	mux := http.NewServeMux()
	prefix := strings.TrimRight(path.Join("/", basePath), "/")
	fs := http.FileServer(http.Dir(dir))
	if prefix == "" {
		mux.Handle("/", fs)
	} else {
		mux.Handle(prefix+"/", http.StripPrefix(prefix, fs))
		mux.Handle("/", http.RedirectHandler(prefix+"/", http.StatusFound))
	}

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	if open {
		go OpenBrowser(url)
	}
	logger.Named("preview").Info("serving static site", zap.String("dir", dir), zap.String("url", url))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
