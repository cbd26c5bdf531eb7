// Package nav models the documentation navigation tree: leaves are pages,
// groups are collapsible sections that may also have a landing page.
package nav

// Kind discriminates the two node variants of the tree.
type Kind int

const (
	KindLeaf Kind = iota
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Item is a node in the navigation tree.
type Item struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title"`
	Path     string  `json:"path,omitempty"`
	Children []*Item `json:"children,omitempty"`
}

// Leaf returns a page entry.
func Leaf(title, path string) *Item {
	return &Item{Kind: KindLeaf, Title: title, Path: path}
}

// Group returns a section entry. path may be empty for pure section headers.
func Group(id, title, path string, children ...*Item) *Item {
	if children == nil {
		children = []*Item{}
	}
	return &Item{Kind: KindGroup, ID: id, Title: title, Path: path, Children: children}
}

// IsGroup reports whether the item is a section.
func (i *Item) IsGroup() bool { return i.Kind == KindGroup }

// HasPath reports whether the item has a landing page.
func (i *Item) HasPath() bool { return i.Path != "" }

// Location is the page being rendered: the absolute request path and the
// content-root prefix that relative nav paths are resolved against.
type Location struct {
	URI      string
	BasePath string
}
