package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/page"
	"github.com/ziadkadry99/docshell/internal/render"
)

// navNode is the template view of one nav item.
type navNode struct {
	Title    string
	Href     string
	External bool
	Active   bool
	Group    bool
	ID       string
	Expanded bool
	Children []navNode
}

// shellData holds the data passed to the page template.
type shellData struct {
	*page.View
	NavTree   []navNode
	Body      template.HTML
	AssetBase string
	Home      string
	// Live is true when pages are served with the state API behind them.
	Live bool
}

// Shell renders composed pages into full HTML documents.
type Shell struct {
	tmpl     *template.Template
	matcher  nav.Matcher
	basePath string
	live     bool
}

// NewShell parses the page template. live selects whether the page
// script talks to the state API or keeps state in the browser.
func NewShell(m nav.Matcher, basePath string, live bool) (*Shell, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Shell{tmpl: tmpl, matcher: m, basePath: basePath, live: live}, nil
}

// Render writes the HTML document for v.
func (s *Shell) Render(w io.Writer, v *page.View) error {
	data := shellData{
		View:      v,
		NavTree:   s.navTree(v.Nav, v),
		AssetBase: path.Join("/", s.basePath, "assets") + "/",
		Home:      path.Join("/", s.basePath),
		Live:      s.live,
	}
	if v.Content != nil {
		data.Body = template.HTML(v.Content.HTML)
	}
	return s.tmpl.Execute(w, data)
}

// RenderString is Render into a string.
func (s *Shell) RenderString(v *page.View) (string, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Shell) navTree(items []*nav.Item, v *page.View) []navNode {
	loc := nav.Location{URI: v.URI, BasePath: s.basePath}
	out := make([]navNode, 0, len(items))
	for _, item := range items {
		n := navNode{Title: item.Title}
		switch {
		case item.Path == "":
		case nav.IsExternal(item.Path):
			n.Href, n.External = item.Path, true
		default:
			if full, err := s.matcher.Resolve(item.Path, s.basePath); err == nil {
				n.Href = full
				n.Active = s.matcher.IsActive(full, v.URI)
			}
		}
		if item.IsGroup() {
			n.Group = true
			n.ID = item.ID
			n.Expanded = v.Groups[item.ID]
			n.Children = s.navTree(item.Children, v)
			// A group also reads as active when one of its leaves is.
			if !n.Active {
				n.Active = nav.IsGroupActive(item.Children, loc, s.matcher)
			}
		}
		out = append(out, n)
	}
	return out
}

// Stylesheet returns the site CSS followed by the chroma rules for style.
func Stylesheet(style string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(cssContent)
	buf.WriteString("\n/* ============ Highlighting ============ */\n")
	if err := render.HighlightCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("highlight css: %w", err)
	}
	return buf.Bytes(), nil
}

// Script returns the page script.
func Script() []byte {
	return []byte(jsContent)
}
