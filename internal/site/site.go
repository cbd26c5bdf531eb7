// Package site loads a content directory into pages and a nav tree, and
// turns them into a served or statically generated documentation site.
package site

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/page"
	"github.com/ziadkadry99/docshell/internal/render"
	"github.com/ziadkadry99/docshell/internal/uistate"
	"github.com/ziadkadry99/docshell/internal/walker"
)

// ErrNoPages is returned when the content directory yields no pages.
var ErrNoPages = errors.New("site: no content pages found")

// Options describe where content lives and how the site is assembled.
type Options struct {
	SiteTitle  string
	ContentDir string
	// NavFile is a YAML or SUMMARY.md nav file. Empty builds the nav from
	// the directory layout.
	NavFile   string
	BasePath  string
	Include   []string
	Exclude   []string
	MatchMode nav.MatchMode
	Remote    page.GitRemote
	// SourcePrefix is prepended to content paths in edit links, normally
	// the content directory relative to the repository root.
	SourcePrefix string
}

// Site is a loaded documentation site. It is immutable once loaded and
// safe for concurrent use.
type Site struct {
	opts     Options
	pages    []*Page
	byURL    map[string]*Page
	nav      []*nav.Item
	composer *page.Composer
}

// Load discovers and compiles content and resolves the nav tree.
func Load(opts Options) (*Site, error) {
	log := logger.Named("site")

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: opts.ContentDir,
		Include: opts.Include,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering content: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, opts.ContentDir)
	}

	pages, err := NewLoader().LoadAll(files)
	if err != nil {
		return nil, err
	}

	var items []*nav.Item
	if opts.NavFile != "" {
		items, err = nav.LoadFile(opts.NavFile)
		if err != nil {
			return nil, err
		}
	} else {
		items = BuildNav(pages)
		if err := nav.Validate(items); err != nil {
			return nil, fmt.Errorf("building nav: %w", err)
		}
	}

	matcher, err := nav.NewMatcher(opts.MatchMode)
	if err != nil {
		return nil, err
	}
	nz, err := render.NewNormalizer(nil)
	if err != nil {
		return nil, err
	}

	s := &Site{
		opts:     opts,
		pages:    pages,
		byURL:    make(map[string]*Page, len(pages)),
		nav:      items,
		composer: page.NewComposer(opts.SiteTitle, opts.BasePath, opts.Remote, matcher, nz),
	}
	for _, p := range pages {
		key := urlKey(p.URL)
		if prev, ok := s.byURL[key]; ok {
			return nil, fmt.Errorf("site: %s and %s both map to %s", prev.RelPath, p.RelPath, p.URL)
		}
		s.byURL[key] = p
	}

	for _, leaf := range nav.Leaves(items) {
		if nav.IsLocal(leaf.Path) {
			if _, ok := s.byURL[urlKey(leaf.Path)]; !ok {
				log.Warn("nav entry has no page", zap.String("path", leaf.Path), zap.String("title", leaf.Title))
			}
		}
	}

	log.Info("site loaded",
		zap.Int("pages", len(pages)),
		zap.Int("groups", len(nav.GroupIDs(items))),
		zap.String("fingerprint", nav.Fingerprint(items)))
	return s, nil
}

// Title returns the site title.
func (s *Site) Title() string { return s.opts.SiteTitle }

// BasePath returns the path prefix the site is served under.
func (s *Site) BasePath() string { return s.opts.BasePath }

// Pages returns the loaded pages in discovery order.
func (s *Site) Pages() []*Page { return s.pages }

// Nav returns the nav tree.
func (s *Site) Nav() []*nav.Item { return s.nav }

// Composer returns the page composer.
func (s *Site) Composer() *page.Composer { return s.composer }

// URI returns the absolute request path of p.
func (s *Site) URI(p *Page) string {
	uri := path.Join("/", s.opts.BasePath, p.URL)
	if strings.HasSuffix(p.URL, "/") && uri != "/" {
		uri += "/"
	}
	return uri
}

// Lookup finds the page served at uri, an absolute request path including
// the base path. Trailing slashes are ignored.
func (s *Site) Lookup(uri string) (*Page, bool) {
	base := strings.TrimRight(s.opts.BasePath, "/")
	if base != "" {
		if uri != base && !strings.HasPrefix(uri, base+"/") {
			return nil, false
		}
		uri = strings.TrimPrefix(uri, base)
	}
	p, ok := s.byURL[urlKey(uri)]
	return p, ok
}

// Request builds the compose request for p.
func (s *Site) Request(p *Page) page.Request {
	rel := p.RelPath
	if s.opts.SourcePrefix != "" {
		rel = path.Join(s.opts.SourcePrefix, rel)
	}
	return page.Request{
		URI:          s.URI(p),
		Title:        p.Title,
		Description:  p.Description,
		Nav:          s.nav,
		Content:      p.Content,
		RelativePath: rel,
		Index:        p.Index,
	}
}

// Compose renders p with the reader state held by store.
func (s *Site) Compose(ctx context.Context, store *uistate.Store, p *Page) (*page.View, error) {
	return s.composer.Compose(ctx, store, s.Request(p))
}

// NavState loads the reader's group state as seen from uri.
func (s *Site) NavState(ctx context.Context, store *uistate.Store, uri string) (*uistate.NavState, error) {
	return s.composer.NavState(ctx, store, s.nav, uri)
}

func urlKey(u string) string {
	if u == "" || u == "/" {
		return "/"
	}
	return "/" + strings.Trim(u, "/")
}
