package render

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// ErrUnknownComponent is returned for a capitalized node type the table
// does not know. Unknown lowercase tags are passed through as elements.
var ErrUnknownComponent = errors.New("render: unknown component")

// Context carries per-page render settings and dispatches nodes through a
// table.
type Context struct {
	Table Table
	// PagePath is the directory relative links are resolved against.
	PagePath string
	// Language is the preferred code-sample language.
	Language string
}

// Render renders a single node. Text becomes a text node; other nodes go
// through the table, or are copied as plain elements when lowercase and
// unmapped.
func (c *Context) Render(n *Node) (*html.Node, error) {
	if n.Type == TypeText {
		return textNode(n.Value), nil
	}
	if p, ok := c.Table[n.Type]; ok && p != nil {
		out, err := p(c, n)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", n.Type, err)
		}
		return out, nil
	}
	if n.Type == "" || isComponent(n.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, n.Type)
	}
	return c.Element(n.Type, n, passthroughAttrs(n)...)
}

// Children renders n's children in order.
func (c *Context) Children(n *Node) ([]*html.Node, error) {
	out := make([]*html.Node, 0, len(n.Children))
	for _, child := range n.Children {
		h, err := c.Render(child)
		if err != nil {
			return nil, err
		}
		if h != nil {
			out = append(out, h)
		}
	}
	return out, nil
}

// Element builds tag with attrs and n's rendered children.
func (c *Context) Element(tag string, n *Node, attrs ...html.Attribute) (*html.Node, error) {
	children, err := c.Children(n)
	if err != nil {
		return nil, err
	}
	return appendChildren(elem(tag, attrs...), children), nil
}
