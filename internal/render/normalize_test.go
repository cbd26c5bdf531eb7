package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizer(t *testing.T) *Normalizer {
	t.Helper()
	nz, err := NewNormalizer(nil)
	require.NoError(t, err)
	return nz
}

func renderRich(t *testing.T, body *Node, opts Options) *Output {
	t.Helper()
	out, err := normalizer(t).Normalize(Content{Rich: &RichDocument{Body: body}}, opts)
	require.NoError(t, err)
	assert.Equal(t, SourceRich, out.Source)
	return out
}

func renderPlain(t *testing.T, src string, opts Options) *Output {
	t.Helper()
	out, err := normalizer(t).Normalize(Content{Plain: &PlainDocument{HTML: src}}, opts)
	require.NoError(t, err)
	assert.Equal(t, SourcePlain, out.Source)
	return out
}

func root(children ...*Node) *Node {
	return El("root", nil, children...)
}

func TestHeadingEquivalent(t *testing.T) {
	plain := renderPlain(t, `<h2>Hello World</h2>`, Options{})
	rich := renderRich(t, root(El("h2", nil, Text("Hello World"))), Options{})

	want := `<div class="markdown-body"><h2 id="hello-world"><a href="#hello-world">Hello World</a></h2></div>`
	assert.Equal(t, want, plain.HTML)
	assert.Equal(t, want, rich.HTML)
}

func TestInlineCode(t *testing.T) {
	plain := renderPlain(t, `<p>Run <code>make</code> now</p>`, Options{})
	rich := renderRich(t, root(El("p", nil,
		Text("Run "),
		&Node{Type: "inlineCode", Value: "make"},
		Text(" now"),
	)), Options{})

	want := `<div class="markdown-body"><p>Run <code class="inline-code">make</code> now</p></div>`
	assert.Equal(t, want, plain.HTML)
	assert.Equal(t, want, rich.HTML)
}

func TestCodeBlockHighlighted(t *testing.T) {
	plain := renderPlain(t, "<pre><code class=\"language-go\">package main\n</code></pre>", Options{})
	rich := renderRich(t, root(
		El("pre", nil, El("code", map[string]any{"className": "language-go"}, Text("package main\n"))),
	), Options{})

	assert.Equal(t, plain.HTML, rich.HTML)
	assert.Contains(t, plain.HTML, `<pre class="chroma" data-language="go"><code class="language-go">`)
	assert.Contains(t, plain.HTML, `<span class="kn">package</span>`)
	assert.NotContains(t, plain.HTML, "inline-code")
}

func TestCodeBlockWithoutLanguage(t *testing.T) {
	out := renderPlain(t, "<pre><code>plain text</code></pre>", Options{})
	assert.Contains(t, out.HTML, `<pre class="chroma"><code>plain text</code></pre>`)
}

func TestListsTablesAndQuotes(t *testing.T) {
	src := `<ul><li>one</li></ul><ol start="3"><li>two</li></ol>` +
		`<table><thead><tr><th>h</th></tr></thead><tbody><tr><td>c</td></tr></tbody></table>` +
		`<blockquote><p>q</p></blockquote>`
	plain := renderPlain(t, src, Options{})

	rich := renderRich(t, root(
		El("ul", nil, El("li", nil, Text("one"))),
		El("ol", map[string]any{"start": float64(3)}, El("li", nil, Text("two"))),
		El("table", nil,
			El("thead", nil, El("tr", nil, El("th", nil, Text("h")))),
			El("tbody", nil, El("tr", nil, El("td", nil, Text("c")))),
		),
		El("blockquote", nil, El("p", nil, Text("q"))),
	), Options{})

	assert.Equal(t, plain.HTML, rich.HTML)
	assert.Contains(t, plain.HTML, `<ol class="list" start="3">`)
	assert.Contains(t, plain.HTML, `<div class="table-wrapper"><table>`)
	assert.Contains(t, plain.HTML, `<blockquote class="blockquote">`)
}

func TestHeadingIDs(t *testing.T) {
	out := renderPlain(t, `<h1 id="intro-1">Top</h1><h2>Intro</h2><h2>Intro</h2><h3>Intro</h3>`, Options{})
	assert.Contains(t, out.HTML, `<h1 id="intro-1"><a href="#intro-1">Top</a></h1>`)
	assert.Contains(t, out.HTML, `<h2 id="intro"><a href="#intro">Intro</a></h2>`)
	assert.Contains(t, out.HTML, `<h2 id="intro-2"><a href="#intro-2">Intro</a></h2>`)
	assert.Contains(t, out.HTML, `<h3 id="intro-3"><a href="#intro-3">Intro</a></h3>`)
}

func TestAutolinkIdempotent(t *testing.T) {
	nodes, err := ParsePlain(`<h2>A <em>b</em></h2><p>x</p>`)
	require.NoError(t, err)
	Autolink(nodes)
	first := nodes[0].Clone()
	Autolink(nodes)
	assert.Equal(t, first, nodes[0])
	assert.Equal(t, "a-b", nodes[0].Prop("id"))
}

func TestRichInputNotMutated(t *testing.T) {
	body := root(El("h2", nil, Text("Keep")))
	renderRich(t, body, Options{})
	assert.Equal(t, "root", body.Type)
	assert.Empty(t, body.Children[0].Prop("id"))
}

func TestLinks(t *testing.T) {
	out := renderPlain(t,
		`<p><a href="install">i</a> <a href="../api#x">a</a> <a href="/abs">b</a> <a href="#top">t</a> <a href="https://example.com">e</a></p>`,
		Options{PagePath: "/guide"},
	)
	assert.Contains(t, out.HTML, `<a href="/guide/install">i</a>`)
	assert.Contains(t, out.HTML, `<a href="/api#x">a</a>`)
	assert.Contains(t, out.HTML, `<a href="/abs">b</a>`)
	assert.Contains(t, out.HTML, `<a href="#top">t</a>`)
	assert.Contains(t, out.HTML, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">e</a>`)
}

func TestNoContent(t *testing.T) {
	_, err := normalizer(t).Normalize(Content{}, Options{})
	assert.True(t, errors.Is(err, ErrNoContent))

	_, err = normalizer(t).Normalize(Content{Rich: &RichDocument{}}, Options{})
	assert.True(t, errors.Is(err, ErrNoContent))
}

func TestRichWinsOverPlain(t *testing.T) {
	out, err := normalizer(t).Normalize(Content{
		Rich:  &RichDocument{Body: root(El("p", nil, Text("rich")))},
		Plain: &PlainDocument{HTML: "<p>plain</p>"},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, SourceRich, out.Source)
	assert.Contains(t, out.HTML, "rich")
}

func TestHeadingsPassedThrough(t *testing.T) {
	headings := []Heading{{Depth: 2, Value: "Not In Body"}}
	out, err := normalizer(t).Normalize(Content{Plain: &PlainDocument{HTML: "<p>x</p>", Headings: headings}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, headings, out.Headings)
}

func TestUnknownComponent(t *testing.T) {
	_, err := normalizer(t).Normalize(Content{Rich: &RichDocument{Body: root(El("Mystery", nil))}}, Options{})
	assert.True(t, errors.Is(err, ErrUnknownComponent))

	out := renderRich(t, root(El("span", map[string]any{"className": "x"}, Text("ok"))), Options{})
	assert.Contains(t, out.HTML, `<span class="x">ok</span>`)
}

func TestWidgetsNotInPlainTable(t *testing.T) {
	nz := normalizer(t)
	for _, k := range WidgetKeys {
		assert.Contains(t, nz.RichTable(), k)
		assert.NotContains(t, nz.PlainTable(), k)
	}
	assert.Contains(t, nz.PlainTable(), "code")
	assert.NotContains(t, nz.RichTable(), "code")
	assert.Contains(t, nz.RichTable(), "inlineCode")
}

func TestNewNormalizerValidatesBase(t *testing.T) {
	_, err := NewNormalizer(Table{"a": Link})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blockquote")

	custom := Structural().With(Table{"p": Element("p", "lead")})
	nz, err := NewNormalizer(custom)
	require.NoError(t, err)
	out, err := nz.Normalize(Content{Plain: &PlainDocument{HTML: "<p>x</p>"}}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out.HTML, `<p class="lead">x</p>`)
}

func TestParseRich(t *testing.T) {
	doc, err := ParseRich([]byte(`{
		"body": {"type": "root", "children": [
			{"type": "h2", "children": [{"type": "text", "value": "Setup"}]},
			{"type": "YouTube", "props": {"youTubeId": "abc123"}}
		]},
		"headings": [{"depth": 2, "value": "Setup"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []Heading{{Depth: 2, Value: "Setup"}}, doc.Headings)

	out, err := normalizer(t).Normalize(Content{Rich: doc}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out.HTML, `src="https://www.youtube-nocookie.com/embed/abc123"`)

	_, err = ParseRich([]byte(`{"headings": []}`))
	assert.True(t, errors.Is(err, ErrNoContent))

	_, err = ParseRich([]byte(`{`))
	assert.Error(t, err)
}

func TestPlainDropsComments(t *testing.T) {
	out := renderPlain(t, `<!-- hidden --><p>shown</p>`, Options{})
	assert.False(t, strings.Contains(out.HTML, "hidden"))
}
