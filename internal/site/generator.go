package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
	"github.com/ziadkadry99/docshell/internal/progress"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

// SiteGenerator writes a Site as static HTML.
type SiteGenerator struct {
	Site      *Site
	OutputDir string
	// Style is the chroma style used for the highlighting stylesheet.
	Style    string
	Reporter progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator writing into outputDir.
func NewSiteGenerator(s *Site, outputDir, style string) *SiteGenerator {
	return &SiteGenerator{
		Site:      s,
		OutputDir: outputDir,
		Style:     style,
		Reporter:  progress.NopReporter{},
	}
}

// Generate builds the full static site. Returns the number of pages generated.
func (g *SiteGenerator) Generate(ctx context.Context) (int, error) {
	log := logger.Named("build")

	shell, err := NewShell(g.Site.Composer().Matcher(), g.Site.BasePath(), false)
	if err != nil {
		return 0, err
	}

	assetDir := filepath.Join(g.OutputDir, "assets")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return 0, err
	}
	css, err := Stylesheet(g.Style)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(assetDir, "style.css"), css, 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(assetDir, "script.js"), Script(), 0o644); err != nil {
		return 0, err
	}

	if err := WriteSearchIndex(BuildSearchIndex(g.Site), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	pages := g.Site.Pages()
	g.Reporter.Start(len(pages))
	defer g.Reporter.Finish()

	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		g.Reporter.Update(i+1, p.RelPath)

		if err := g.renderPage(ctx, shell, p); err != nil {
			return i, fmt.Errorf("rendering %s: %w", p.RelPath, err)
		}
		log.Debug("page written", zap.String("url", p.URL), zap.String("source", p.RelPath))
	}

	return len(pages), nil
}

// renderPage composes a single page and writes it to its output path.
func (g *SiteGenerator) renderPage(ctx context.Context, shell *Shell, p *Page) error {
	// Each page starts from its own defaults; nothing is shared between pages.
	store := uistate.New(uistate.NewMemoryBackend(), "build", nil)

	view, err := g.Site.Compose(ctx, store, p)
	if err != nil {
		return err
	}

	outPath := OutputPath(g.OutputDir, p.URL)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := shell.Render(f, view); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OutputPath maps a page URL to the file it is written to: every page is a
// directory index so that URLs stay extension-free.
func OutputPath(outputDir, url string) string {
	rel := strings.Trim(url, "/")
	if rel == "" {
		return filepath.Join(outputDir, "index.html")
	}
	return filepath.Join(outputDir, filepath.FromSlash(rel), "index.html")
}
