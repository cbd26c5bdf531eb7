// Package page composes everything the docs shell needs to draw one page:
// the nav tree with its group state, pagination and rendered content.
package page

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/pagination"
	"github.com/ziadkadry99/docshell/internal/render"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

// GitRemote locates page sources for "Edit on GitHub" links.
type GitRemote struct {
	Href string
	Ref  string
}

// Request is one page to compose.
type Request struct {
	URI         string
	Title       string
	Description string
	Nav         []*nav.Item
	Content     render.Content
	// RelativePath is the source file path within the repository.
	RelativePath string
	// Index is true for index pages, whose relative links resolve against
	// the page itself rather than its parent.
	Index bool
}

// View is the composed page handed to the shell templates.
type View struct {
	SiteTitle   string
	URI         string
	Title       string
	Description string

	Nav               []*nav.Item
	Fingerprint       string
	Groups            uistate.GroupState
	AllExpanded       bool
	ExpandAllDisabled bool
	SidebarHidden     bool
	Language          string

	Prev *pagination.Link
	Next *pagination.Link

	Content  *render.Output
	Headings []render.Heading
	ShowTOC  bool
	EditURL  string
}

// Composer builds Views. It is safe for concurrent use.
type Composer struct {
	siteTitle  string
	basePath   string
	remote     GitRemote
	matcher    nav.Matcher
	normalizer *render.Normalizer
}

// NewComposer returns a Composer.
func NewComposer(siteTitle, basePath string, remote GitRemote, m nav.Matcher, nz *render.Normalizer) *Composer {
	return &Composer{
		siteTitle:  siteTitle,
		basePath:   basePath,
		remote:     remote,
		matcher:    m,
		normalizer: nz,
	}
}

// Matcher returns the active-route matcher.
func (c *Composer) Matcher() nav.Matcher { return c.matcher }

// Location returns the location of uri under the configured base path.
func (c *Composer) Location(uri string) nav.Location {
	return nav.Location{URI: uri, BasePath: c.basePath}
}

// NavState computes the default group state for uri and then loads the
// persisted state on top of it.
func (c *Composer) NavState(ctx context.Context, store *uistate.Store, items []*nav.Item, uri string) (*uistate.NavState, error) {
	defaults := uistate.ComputeDefaults(items, c.Location(uri), c.matcher)
	return uistate.LoadNav(ctx, store, defaults)
}

// Compose assembles the View for req. Missing content is an error; a page
// absent from the nav simply has no pagination.
func (c *Composer) Compose(ctx context.Context, store *uistate.Store, req Request) (*View, error) {
	loc := c.Location(req.URI)

	ns, err := c.NavState(ctx, store, req.Nav, req.URI)
	if err != nil {
		return nil, err
	}
	hidden, err := uistate.SidebarHidden(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("loading sidebar state: %w", err)
	}
	lang, err := uistate.Language(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("loading language: %w", err)
	}

	prev, next := pagination.Links(req.Nav, loc, c.matcher)

	out, err := c.normalizer.Normalize(req.Content, render.Options{
		PagePath: linkBase(req.URI, req.Index),
		Language: lang,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", req.URI, err)
	}

	return &View{
		SiteTitle:         c.siteTitle,
		URI:               req.URI,
		Title:             req.Title,
		Description:       req.Description,
		Nav:               req.Nav,
		Fingerprint:       nav.Fingerprint(req.Nav),
		Groups:            ns.State(),
		AllExpanded:       ns.IsAllExpanded(),
		ExpandAllDisabled: len(ns.ValidIDs()) == 0,
		SidebarHidden:     hidden,
		Language:          lang,
		Prev:              prev,
		Next:              next,
		Content:           out,
		Headings:          out.Headings,
		ShowTOC:           strings.TrimRight(req.URI, "/") != "",
		EditURL:           c.editURL(req.RelativePath),
	}, nil
}

func (c *Composer) editURL(relPath string) string {
	if c.remote.Href == "" || relPath == "" {
		return ""
	}
	ref := c.remote.Ref
	if ref == "" {
		ref = "main"
	}
	return strings.Join([]string{strings.TrimRight(c.remote.Href, "/"), "tree", ref, strings.TrimLeft(relPath, "/")}, "/")
}

func linkBase(uri string, index bool) string {
	if index {
		return uri
	}
	return path.Dir(strings.TrimRight(uri, "/"))
}
