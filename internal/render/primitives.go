package render

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// Element renders n as tag, keeping its scalar props as attributes. class,
// if set, replaces any class the source carried.
func Element(tag, class string) Primitive {
	return func(c *Context, n *Node) (*html.Node, error) {
		attrs := passthroughAttrs(n, "class", "className")
		if class != "" {
			attrs = append([]html.Attribute{attr("class", class)}, attrs...)
		}
		return c.Element(tag, n, attrs...)
	}
}

// HeadingElement renders h1..h6. Only the id survives from the source so
// both representations agree.
func HeadingElement(level int) Primitive {
	tag := "h" + string(rune('0'+level))
	return func(c *Context, n *Node) (*html.Node, error) {
		var attrs []html.Attribute
		if id := n.Prop("id"); id != "" {
			attrs = append(attrs, attr("id", id))
		}
		return c.Element(tag, n, attrs...)
	}
}

// TableElement wraps tables in a scroll container.
func TableElement(c *Context, n *Node) (*html.Node, error) {
	table, err := c.Element("table", n, passthroughAttrs(n, "class", "className")...)
	if err != nil {
		return nil, err
	}
	wrap := elem("div", attr("class", "table-wrapper"))
	wrap.AppendChild(table)
	return wrap, nil
}

// Wrapper is the outermost container of a page body.
func Wrapper(c *Context, n *Node) (*html.Node, error) {
	return c.Element("div", n, attr("class", "markdown-body"))
}

// InlineCode renders code spans. Its text is taken verbatim.
func InlineCode(c *Context, n *Node) (*html.Node, error) {
	code := elem("code", attr("class", "inline-code"))
	code.AppendChild(textNode(n.TextContent()))
	return code, nil
}

// Link renders anchors. Relative hrefs are resolved against the page
// directory and external links open in a new tab.
func Link(c *Context, n *Node) (*html.Node, error) {
	attrs := passthroughAttrs(n, "href", "target", "rel")
	href := n.Prop("href")
	if href != "" {
		resolved, external := resolveHref(href, c.PagePath)
		attrs = append([]html.Attribute{attr("href", resolved)}, attrs...)
		if external {
			attrs = append(attrs, attr("target", "_blank"), attr("rel", "noopener noreferrer"))
		}
	}
	return c.Element("a", n, attrs...)
}

func resolveHref(href, pagePath string) (string, bool) {
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return href, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return href, false
	}
	if u.Scheme != "" || u.Host != "" || strings.HasPrefix(href, "//") {
		return href, u.Scheme == "" || u.Scheme == "http" || u.Scheme == "https"
	}
	if pagePath == "" {
		return href, false
	}
	trailing := strings.HasSuffix(u.Path, "/")
	u.Path = path.Join("/", pagePath, u.Path)
	if trailing && u.Path != "/" {
		u.Path += "/"
	}
	return u.String(), false
}
