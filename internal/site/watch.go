package site

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
	"github.com/ziadkadry99/docshell/internal/walker"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a content directory and calls onChange once edits settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rootDir  string
	navFile  string
	onChange func(paths []string)
	debounce time.Duration
	log      *zap.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for rootDir and, when set, navFile.
func NewWatcher(rootDir, navFile string, debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fsWatcher,
		rootDir:  rootDir,
		onChange: onChange,
		debounce: debounce,
		log:      logger.Named("watch"),
		done:     make(chan struct{}),
	}
	if navFile != "" {
		if abs, err := filepath.Abs(navFile); err == nil {
			w.navFile = abs
		}
	}

	if err := w.addDirectoryRecursive(rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	// A nav file outside the content tree needs its own directory watched.
	if w.navFile != "" && !strings.HasPrefix(w.navFile, absOrSelf(rootDir)+string(filepath.Separator)) {
		if err := fsWatcher.Add(filepath.Dir(w.navFile)); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	return w, nil
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// addDirectoryRecursive adds a directory and all its subdirectories to the watcher.
func (w *Watcher) addDirectoryRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Hidden and vendored directories never hold served content.
		if path != dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.log.Debug("watching directory", zap.String("dir", path))
		return nil
	})
}

// relevant reports whether a change to name can affect the site.
func (w *Watcher) relevant(name string) bool {
	if w.navFile != "" && absOrSelf(name) == w.navFile {
		return true
	}
	return walker.DetectFormat(name) != walker.FormatUnknown
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		var (
			pending = make(map[string]bool)
			timer   *time.Timer
			fire    <-chan time.Time
		)

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := w.addDirectoryRecursive(event.Name); err != nil {
							w.log.Warn("watching new directory failed", zap.String("dir", event.Name), zap.Error(err))
						}
						continue
					}
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if !w.relevant(event.Name) {
					continue
				}
				pending[event.Name] = true
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				paths := make([]string, 0, len(pending))
				for p := range pending {
					rel, err := filepath.Rel(w.rootDir, p)
					if err != nil {
						rel = p
					}
					paths = append(paths, filepath.ToSlash(rel))
				}
				pending = make(map[string]bool)
				fire = nil
				w.log.Info("content changed", zap.Strings("paths", paths))
				w.onChange(paths)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn("watch error", zap.Error(err))

			case <-w.done:
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
