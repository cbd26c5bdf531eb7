// Package render turns compiled page content into an HTML node tree. Rich
// component trees and plain HTML both go through one table of primitives,
// so a tag renders the same way whichever representation it came from.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TypeText marks a text node; its content is in Value.
const TypeText = "text"

// Node is a representation-neutral content node. Type is a tag name such as
// "h2" or a component name such as "MultiCodeBlock".
type Node struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Node        `json:"children,omitempty"`
	Value    string         `json:"value,omitempty"`
}

// Heading is a table-of-contents entry.
type Heading struct {
	Depth int    `json:"depth"`
	Value string `json:"value"`
}

// Text returns a text node.
func Text(s string) *Node {
	return &Node{Type: TypeText, Value: s}
}

// El returns an element node with the given children.
func El(typ string, props map[string]any, children ...*Node) *Node {
	return &Node{Type: typ, Props: props, Children: children}
}

// Prop returns the string form of a prop, or "".
func (n *Node) Prop(key string) string {
	v, ok := n.Props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}

// SetProp sets a prop, allocating the map if needed.
func (n *Node) SetProp(key string, v any) {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[key] = v
}

// Class returns the class list from either "className" or "class".
func (n *Node) Class() string {
	if c := n.Prop("className"); c != "" {
		return c
	}
	return n.Prop("class")
}

// TextContent concatenates all text below n. A childless node yields its
// own Value, so {type: inlineCode, value: x} reads as x.
func (n *Node) TextContent() string {
	if n.Type == TypeText || len(n.Children) == 0 {
		return n.Value
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// HeadingLevel returns 1 to 6 for h1..h6 and 0 otherwise.
func HeadingLevel(typ string) int {
	if len(typ) == 2 && typ[0] == 'h' && typ[1] >= '1' && typ[1] <= '6' {
		return int(typ[1] - '0')
	}
	return 0
}

// isComponent reports whether typ names a component rather than a tag.
func isComponent(typ string) bool {
	r, _ := utf8.DecodeRuneInString(typ)
	return unicode.IsUpper(r)
}

func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendChildren(parent *html.Node, children []*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// passthroughAttrs turns scalar props into attributes in key order. Event
// handler props and the ones in skip are dropped.
func passthroughAttrs(n *Node, skip ...string) []html.Attribute {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var attrs []html.Attribute
outer:
	for _, k := range keys {
		for _, s := range skip {
			if k == s {
				continue outer
			}
		}
		if strings.HasPrefix(k, "on") && len(k) > 2 {
			continue
		}
		switch n.Props[k].(type) {
		case string, bool, float64, int, []any:
		default:
			continue
		}
		name := k
		if k == "className" {
			name = "class"
		}
		attrs = append(attrs, attr(name, n.Prop(k)))
	}
	return attrs
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Value: n.Value}
	if n.Props != nil {
		out.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			out.Props[k] = v
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}
