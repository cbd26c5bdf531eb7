package render

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrMissingProp is returned when a widget lacks a required prop.
var ErrMissingProp = errors.New("render: missing prop")

var languageNames = map[string]string{
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"jsx":        "JSX",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"tsx":        "TSX",
	"go":         "Go",
	"py":         "Python",
	"python":     "Python",
	"rb":         "Ruby",
	"ruby":       "Ruby",
	"sh":         "Shell",
	"bash":       "Bash",
	"json":       "JSON",
	"yaml":       "YAML",
	"graphql":    "GraphQL",
	"kotlin":     "Kotlin",
	"swift":      "Swift",
	"java":       "Java",
	"rust":       "Rust",
}

// LanguageName returns the tab label for a language id.
func LanguageName(lang string) string {
	if name, ok := languageNames[strings.ToLower(lang)]; ok {
		return name
	}
	if lang == "" {
		return "Text"
	}
	r, size := utf8.DecodeRuneInString(lang)
	return string(unicode.ToUpper(r)) + lang[size:]
}

// MultiCodeBlock renders its pre children as tabs, one per language. The
// tab for the preferred language is selected, or the first one when the
// preference does not match any block.
func MultiCodeBlock(c *Context, n *Node) (*html.Node, error) {
	type block struct {
		lang string
		node *Node
	}
	var blocks []block
	for _, child := range n.Children {
		if child.Type != "pre" {
			continue
		}
		lang, _ := codeOf(child)
		blocks = append(blocks, block{lang: lang, node: child})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: MultiCodeBlock needs at least one code block", ErrMissingProp)
	}

	selectedIdx := 0
	for i, b := range blocks {
		if c.Language != "" && strings.EqualFold(b.lang, c.Language) {
			selectedIdx = i
			break
		}
	}
	selected := blocks[selectedIdx].lang

	root := elem("div", attr("class", "multi-code-block"), attr("data-selected", selected))
	tabs := elem("div", attr("class", "tabs"), attr("role", "tablist"))
	root.AppendChild(tabs)

	for i, b := range blocks {
		active := i == selectedIdx
		tabClass := "tab"
		if active {
			tabClass = "tab active"
		}
		tab := elem("button",
			attr("type", "button"),
			attr("role", "tab"),
			attr("class", tabClass),
			attr("data-language", b.lang),
			attr("aria-selected", fmt.Sprint(active)),
		)
		tab.AppendChild(textNode(LanguageName(b.lang)))
		tabs.AppendChild(tab)

		pre, err := c.Render(b.node)
		if err != nil {
			return nil, err
		}
		panelAttrs := []html.Attribute{attr("class", "panel"), attr("data-language", b.lang)}
		if !active {
			panelAttrs = append(panelAttrs, attr("hidden", ""))
		}
		panel := elem("div", panelAttrs...)
		panel.AppendChild(pre)
		root.AppendChild(panel)
	}
	return root, nil
}

// ExpansionPanel renders a collapsible section titled by the "title" prop.
func ExpansionPanel(c *Context, n *Node) (*html.Node, error) {
	details := elem("details", attr("class", "expansion-panel"))
	summary := elem("summary")
	summary.AppendChild(textNode(n.Prop("title")))
	details.AppendChild(summary)

	body, err := c.Element("div", n, attr("class", "expansion-panel-body"))
	if err != nil {
		return nil, err
	}
	details.AppendChild(body)
	return details, nil
}

// YouTube embeds the video named by the "youTubeId" prop.
func YouTube(c *Context, n *Node) (*html.Node, error) {
	id := n.Prop("youTubeId")
	if id == "" {
		return nil, fmt.Errorf("%w: YouTube requires youTubeId", ErrMissingProp)
	}
	wrap := elem("div", attr("class", "youtube"))
	wrap.AppendChild(elem("iframe",
		attr("src", "https://www.youtube-nocookie.com/embed/"+url.PathEscape(id)),
		attr("title", "YouTube video"),
		attr("frameborder", "0"),
		attr("allow", "autoplay; encrypted-media; picture-in-picture"),
		attr("allowfullscreen", ""),
	))
	return wrap, nil
}

// CodeColumns lays its children out side by side.
func CodeColumns(c *Context, n *Node) (*html.Node, error) {
	return c.Element("div", n, attr("class", "code-columns"))
}

// Button renders a link styled as a button, or a plain button without href.
func Button(c *Context, n *Node) (*html.Node, error) {
	href := n.Prop("href")
	if href == "" {
		return c.Element("button", n, attr("type", "button"), attr("class", "button"))
	}
	resolved, external := resolveHref(href, c.PagePath)
	attrs := []html.Attribute{attr("class", "button"), attr("href", resolved)}
	if external {
		attrs = append(attrs, attr("target", "_blank"), attr("rel", "noopener noreferrer"))
	}
	return c.Element("a", n, attrs...)
}

// TypescriptAPIBox renders an API reference entry from the "name",
// "signature" and "description" props followed by its children.
func TypescriptAPIBox(c *Context, n *Node) (*html.Node, error) {
	name := n.Prop("name")
	if name == "" {
		return nil, fmt.Errorf("%w: TypescriptApiBox requires name", ErrMissingProp)
	}
	box := elem("div", attr("class", "api-box"))

	title := elem("div", attr("class", "api-box-title"))
	title.AppendChild(textNode(name))
	if kind := n.Prop("kind"); kind != "" {
		k := elem("span", attr("class", "api-box-kind"))
		k.AppendChild(textNode(kind))
		title.AppendChild(k)
	}
	box.AppendChild(title)

	if sig := n.Prop("signature"); sig != "" {
		pre, err := CodeBlock(c, El("pre", nil, El("code", map[string]any{"className": "language-ts"}, Text(sig))))
		if err != nil {
			return nil, err
		}
		box.AppendChild(pre)
	}
	if desc := n.Prop("description"); desc != "" {
		p := elem("p", attr("class", "api-box-description"))
		p.AppendChild(textNode(desc))
		box.AppendChild(p)
	}
	children, err := c.Children(n)
	if err != nil {
		return nil, err
	}
	return appendChildren(box, children), nil
}
