package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// ErrNoContent is returned when a page supplies neither representation.
var ErrNoContent = errors.New("render: page has no content")

// Source names the representation a page was rendered from.
type Source string

const (
	SourceRich  Source = "rich"
	SourcePlain Source = "plain"
)

// RichDocument is a pre-compiled component tree.
type RichDocument struct {
	Body     *Node     `json:"body"`
	Headings []Heading `json:"headings"`
}

// PlainDocument is pre-compiled HTML without components.
type PlainDocument struct {
	HTML     string    `json:"html"`
	Headings []Heading `json:"headings"`
}

// Content holds whichever representations a page supplies.
type Content struct {
	Rich  *RichDocument
	Plain *PlainDocument
}

// Options are the per-page render settings.
type Options struct {
	PagePath string
	Language string
}

// Output is render-ready page content.
type Output struct {
	Source   Source
	Nodes    []*html.Node
	HTML     string
	Headings []Heading
}

// Normalizer renders either representation through tables that share one
// set of structural primitives.
type Normalizer struct {
	rich  Table
	plain Table
}

// NewNormalizer builds the rich and plain tables on top of base. A nil base
// uses Structural().
func NewNormalizer(base Table) (*Normalizer, error) {
	if base == nil {
		base = Structural()
	}
	if err := base.Validate(StructuralKeys...); err != nil {
		return nil, err
	}
	return &Normalizer{rich: RichTable(base), plain: PlainTable(base)}, nil
}

// RichTable returns the table used for rich content.
func (nz *Normalizer) RichTable() Table { return nz.rich.Clone() }

// PlainTable returns the table used for plain content.
func (nz *Normalizer) PlainTable() Table { return nz.plain.Clone() }

// Normalize renders content. Rich content wins when both are present.
// Headings are passed through as given.
func (nz *Normalizer) Normalize(content Content, opts Options) (*Output, error) {
	switch {
	case content.Rich != nil && content.Rich.Body != nil:
		return nz.normalizeRich(content.Rich, opts)
	case content.Plain != nil:
		return nz.normalizePlain(content.Plain, opts)
	default:
		return nil, ErrNoContent
	}
}

func (nz *Normalizer) normalizeRich(doc *RichDocument, opts Options) (*Output, error) {
	body := doc.Body.Clone()
	switch body.Type {
	case "", "root", "wrapper":
		body.Type = "wrapper"
	default:
		body = El("wrapper", nil, body)
	}
	Autolink([]*Node{body})

	c := &Context{Table: nz.rich, PagePath: opts.PagePath, Language: opts.Language}
	return finish(c, body, SourceRich, doc.Headings)
}

func (nz *Normalizer) normalizePlain(doc *PlainDocument, opts Options) (*Output, error) {
	nodes, err := ParsePlain(doc.HTML)
	if err != nil {
		return nil, err
	}
	Autolink(nodes)

	c := &Context{Table: nz.plain, PagePath: opts.PagePath, Language: opts.Language}
	return finish(c, El("wrapper", nil, nodes...), SourcePlain, doc.Headings)
}

func finish(c *Context, body *Node, src Source, headings []Heading) (*Output, error) {
	root, err := c.Render(body)
	if err != nil {
		return nil, fmt.Errorf("rendering %s content: %w", src, err)
	}
	nodes := []*html.Node{root}
	out, err := RenderHTML(nodes)
	if err != nil {
		return nil, err
	}
	return &Output{Source: src, Nodes: nodes, HTML: out, Headings: headings}, nil
}

// RenderHTML serializes nodes.
func RenderHTML(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("serializing html: %w", err)
		}
	}
	return buf.String(), nil
}

// ParseRich decodes a rich document from JSON.
func ParseRich(data []byte) (*RichDocument, error) {
	var doc RichDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding rich document: %w", err)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("decoding rich document: %w", ErrNoContent)
	}
	return &doc, nil
}
