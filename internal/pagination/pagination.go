// Package pagination derives previous/next page links from the nav tree.
package pagination

import "github.com/ziadkadry99/docshell/internal/nav"

// Link is a resolved pagination target.
type Link struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Candidates returns the flattened items that can be paged to: those with
// a local site path. Groups without a landing page are skipped but their
// children keep their place in the sequence.
func Candidates(items []*nav.Item) []*nav.Item {
	var out []*nav.Item
	for _, item := range nav.Flatten(items) {
		if nav.IsLocal(item.Path) {
			out = append(out, item)
		}
	}
	return out
}

// Derive returns the candidates immediately before and after the current
// page. Either may be nil at the ends of the sequence; both are nil when the
// current page is not in the tree.
func Derive(items []*nav.Item, loc nav.Location, m nav.Matcher) (prev, next *nav.Item) {
	candidates := Candidates(items)
	for i, item := range candidates {
		if !nav.IsItemActive(item, loc, m) {
			continue
		}
		if i > 0 {
			prev = candidates[i-1]
		}
		if i+1 < len(candidates) {
			next = candidates[i+1]
		}
		return prev, next
	}
	return nil, nil
}

// Links is Derive with each neighbour resolved to an absolute href.
func Links(items []*nav.Item, loc nav.Location, m nav.Matcher) (prev, next *Link) {
	p, n := Derive(items, loc, m)
	return link(p, loc, m), link(n, loc, m)
}

func link(item *nav.Item, loc nav.Location, m nav.Matcher) *Link {
	if item == nil {
		return nil
	}
	href, err := m.Resolve(item.Path, loc.BasePath)
	if err != nil {
		return nil
	}
	return &Link{Title: item.Title, Href: href}
}
