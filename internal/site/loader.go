package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docshell/internal/render"
	"github.com/ziadkadry99/docshell/internal/walker"
)

// Page is one loaded content file.
type Page struct {
	URL         string // site path relative to the base path
	RelPath     string // slash path within the content directory
	Title       string
	Description string
	Index       bool
	Hash        string
	Content     render.Content
	// Text is the plain text of the page, used for search.
	Text string
}

// frontmatter holds the recognised frontmatter keys.
type frontmatter struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Loader compiles content files into Pages.
type Loader struct {
	md goldmark.Markdown
}

// NewLoader returns a Loader compiling markdown with GitHub Flavored
// Markdown. Raw HTML in markdown is kept.
func NewLoader() *Loader {
	return &Loader{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Load reads and compiles a single file.
func (l *Loader) Load(f walker.FileInfo) (*Page, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
	}

	p := &Page{
		URL:     f.URL,
		RelPath: f.RelPath,
		Index:   walker.IsIndex(f.RelPath),
		Hash:    f.ContentHash,
	}

	switch f.Format {
	case walker.FormatMarkdown:
		err = l.loadMarkdown(p, data)
	case walker.FormatRich:
		err = loadRich(p, data)
	default:
		err = fmt.Errorf("unsupported format %q", f.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.RelPath, err)
	}

	if p.Title == "" {
		p.Title = fallbackTitle(f.RelPath)
	}
	return p, nil
}

// LoadAll loads every file, stopping at the first failure.
func (l *Loader) LoadAll(files []walker.FileInfo) ([]*Page, error) {
	pages := make([]*Page, 0, len(files))
	for _, f := range files {
		p, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func (l *Loader) loadMarkdown(p *Page, data []byte) error {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return err
	}
	p.Title = fm.Title
	p.Description = fm.Description

	doc := l.md.Parser().Parse(text.NewReader(body))
	headings := collectHeadings(doc, body)

	var buf bytes.Buffer
	if err := l.md.Renderer().Render(&buf, body, doc); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	if p.Title == "" {
		for _, h := range headings {
			if h.Depth == 1 {
				p.Title = h.Value
				break
			}
		}
	}
	p.Content = render.Content{Plain: &render.PlainDocument{HTML: buf.String(), Headings: headings}}
	p.Text = plainText(doc, body)
	return nil
}

// richFile is the on-disk shape of a pre-compiled page.
type richFile struct {
	Frontmatter frontmatter `json:"frontmatter"`
}

func loadRich(p *Page, data []byte) error {
	doc, err := render.ParseRich(data)
	if err != nil {
		return err
	}
	var meta richFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("decoding frontmatter: %w", err)
	}
	p.Title = meta.Frontmatter.Title
	p.Description = meta.Frontmatter.Description
	p.Content = render.Content{Rich: doc}
	p.Text = doc.Body.TextContent()
	return nil
}

var fmDelim = []byte("---")

// splitFrontmatter separates a leading YAML block delimited by "---" lines.
func splitFrontmatter(data []byte) (frontmatter, []byte, error) {
	var fm frontmatter
	trimmed := bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, fmDelim) {
		return fm, data, nil
	}
	rest := trimmed[len(fmDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, data, nil
	}
	rest = rest[nl+1:]

	end := bytes.Index(rest, []byte("\n---"))
	var block []byte
	switch {
	case bytes.HasPrefix(rest, fmDelim):
		block, rest = nil, rest[len(fmDelim):]
	case end >= 0:
		block, rest = rest[:end], rest[end+len("\n---"):]
	default:
		return fm, data, nil
	}
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = nil
	}

	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, rest, nil
}

func collectHeadings(doc ast.Node, source []byte) []render.Heading {
	var out []render.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			out = append(out, render.Heading{Depth: h.Level, Value: inlineText(h, source)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// plainText flattens a markdown document for the search index.
func plainText(doc ast.Node, source []byte) string {
	var parts []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindFencedCodeBlock || c.Kind() == ast.KindCodeBlock {
			continue
		}
		if s := inlineText(c, source); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// fallbackTitle derives a title from the file name.
func fallbackTitle(relPath string) string {
	name := path.Base(relPath)
	if walker.IsIndex(relPath) {
		dir := path.Dir(relPath)
		if dir == "." {
			return "Home"
		}
		name = path.Base(dir)
	}
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".mdx.json"), path.Ext(name))
	return formatDirName(name)
}
