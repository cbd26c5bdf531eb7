package render

import "github.com/ziadkadry99/docshell/internal/slug"

// Autolink gives every heading an id and wraps its content in a link to
// that id, in place. Existing ids are kept and reserved first so generated
// ones never collide with them. Running it twice changes nothing.
func Autolink(nodes []*Node) {
	s := slug.New()
	walkNodes(nodes, func(n *Node) {
		if HeadingLevel(n.Type) > 0 {
			if id := n.Prop("id"); id != "" {
				s.Reserve(id)
			}
		}
	})
	walkNodes(nodes, func(n *Node) {
		if HeadingLevel(n.Type) == 0 {
			return
		}
		id := n.Prop("id")
		if id == "" {
			id = s.Slug(n.TextContent())
			n.SetProp("id", id)
		}
		if isSelfLink(n, id) {
			return
		}
		n.Children = []*Node{El("a", map[string]any{"href": "#" + id}, n.Children...)}
	})
}

func isSelfLink(n *Node, id string) bool {
	return len(n.Children) == 1 && n.Children[0].Type == "a" && n.Children[0].Prop("href") == "#"+id
}

func walkNodes(nodes []*Node, fn func(*Node)) {
	for _, n := range nodes {
		fn(n)
		walkNodes(n.Children, fn)
	}
}
