package nav

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	// ErrEmptyPath is returned when resolving an item that has no path.
	ErrEmptyPath = errors.New("nav: empty path")
	// ErrExternalPath is returned when a path points outside the site.
	ErrExternalPath = errors.New("nav: external path")
	// ErrMalformedPath is returned when a path cannot be parsed.
	ErrMalformedPath = errors.New("nav: malformed path")
)

// Matcher decides which nav entries are on the active route.
type Matcher interface {
	// Resolve joins a relative nav path with the content base path.
	Resolve(relPath, basePath string) (string, error)
	// IsActive reports whether the resolved candidate is active for uri.
	IsActive(candidate, uri string) bool
}

// MatchMode selects how a candidate path is compared with the current uri.
type MatchMode string

const (
	MatchExact  MatchMode = "exact"
	MatchPrefix MatchMode = "prefix"
)

// Valid reports whether m is a known mode.
func (m MatchMode) Valid() bool {
	return m == MatchExact || m == MatchPrefix
}

// PathMatcher is the default Matcher over slash-separated site paths.
type PathMatcher struct {
	Mode MatchMode
}

// NewMatcher returns a PathMatcher for mode. An empty mode means exact.
func NewMatcher(mode MatchMode) (*PathMatcher, error) {
	if mode == "" {
		mode = MatchExact
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("nav: unknown match mode %q", mode)
	}
	return &PathMatcher{Mode: mode}, nil
}

// Resolve returns the absolute site path for relPath under basePath.
func (m *PathMatcher) Resolve(relPath, basePath string) (string, error) {
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return "", ErrEmptyPath
	}
	if IsExternal(relPath) {
		return "", fmt.Errorf("%w: %s", ErrExternalPath, relPath)
	}
	u, err := url.Parse(relPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedPath, relPath)
	}
	return normalize(path.Join("/", basePath, u.Path)), nil
}

// IsActive compares candidate with uri after trailing-slash normalization.
func (m *PathMatcher) IsActive(candidate, uri string) bool {
	candidate = normalize(candidate)
	uri = normalize(stripQuery(uri))
	if candidate == uri {
		return true
	}
	if m.Mode != MatchPrefix || candidate == "/" {
		return false
	}
	return strings.HasPrefix(uri, candidate+"/")
}

// IsExternal reports whether p carries a scheme or is protocol-relative.
func IsExternal(p string) bool {
	if strings.HasPrefix(p, "//") {
		return true
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme != ""
}

// IsLocal reports whether p is a non-empty site-absolute page path.
func IsLocal(p string) bool {
	return strings.HasPrefix(p, "/") && !IsExternal(p)
}

// IsItemActive resolves item's path and tests it against loc. Any
// resolution failure counts as not active.
func IsItemActive(item *Item, loc Location, m Matcher) bool {
	full, err := m.Resolve(item.Path, loc.BasePath)
	if err != nil {
		return false
	}
	return m.IsActive(full, loc.URI)
}

// IsGroupActive reports whether any leaf below children is active for loc.
// Group landing pages do not count; a subtree without leaves is never active.
func IsGroupActive(children []*Item, loc Location, m Matcher) bool {
	for _, child := range children {
		if child.IsGroup() {
			if IsGroupActive(child.Children, loc, m) {
				return true
			}
			continue
		}
		if IsItemActive(child, loc, m) {
			return true
		}
	}
	return false
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

func stripQuery(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		return uri[:i]
	}
	return uri
}
