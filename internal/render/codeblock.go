package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
)

// CodeBlock renders pre blocks with syntax highlighting. The language comes
// from a "language-*" class on the inner code element or on pre itself.
func CodeBlock(c *Context, n *Node) (*html.Node, error) {
	lang, source := codeOf(n)

	preAttrs := []html.Attribute{attr("class", "chroma")}
	var codeAttrs []html.Attribute
	if lang != "" {
		preAttrs = append(preAttrs, attr("data-language", lang))
		codeAttrs = append(codeAttrs, attr("class", "language-"+lang))
	}

	code := elem("code", codeAttrs...)
	for _, tok := range Highlight(lang, source) {
		code.AppendChild(tok)
	}
	pre := elem("pre", preAttrs...)
	pre.AppendChild(code)
	return pre, nil
}

// codeOf extracts the language and source text of a pre node.
func codeOf(n *Node) (lang, source string) {
	lang = languageOf(n)
	source = n.TextContent()
	for _, child := range n.Children {
		if child.Type == "code" {
			if l := languageOf(child); l != "" {
				lang = l
			}
			source = child.TextContent()
			break
		}
	}
	return lang, strings.TrimSuffix(source, "\n")
}

func languageOf(n *Node) string {
	for _, cls := range strings.Fields(n.Class()) {
		if l, ok := strings.CutPrefix(cls, "language-"); ok {
			return l
		}
		if l, ok := strings.CutPrefix(cls, "lang-"); ok {
			return l
		}
	}
	if l := n.Prop("language"); l != "" {
		return l
	}
	return n.Prop("data-language")
}

// Highlight tokenizes source and returns text and span nodes whose classes
// match the chroma stylesheet from HighlightCSS.
func Highlight(lang, source string) []*html.Node {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return []*html.Node{textNode(source)}
	}

	var out []*html.Node
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		cls := tokenClass(tok.Type)
		if cls == "" {
			out = append(out, textNode(tok.Value))
			continue
		}
		span := elem("span", attr("class", cls))
		span.AppendChild(textNode(tok.Value))
		out = append(out, span)
	}
	// Lexers that force a final newline add one the source did not have.
	if last := len(out) - 1; last >= 0 && !strings.HasSuffix(source, "\n") {
		trimTrailingNewline(out[last])
	}
	return out
}

func trimTrailingNewline(n *html.Node) {
	if n.Type == html.ElementNode {
		n = n.LastChild
	}
	if n != nil && n.Type == html.TextNode {
		n.Data = strings.TrimSuffix(n.Data, "\n")
	}
}

func tokenClass(t chroma.TokenType) string {
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if cls, ok := chroma.StandardTypes[candidate]; ok {
			return cls
		}
	}
	return ""
}

// HighlightCSS writes the stylesheet for the named chroma style.
func HighlightCSS(w io.Writer, style string) error {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, s); err != nil {
		return fmt.Errorf("writing highlight css: %w", err)
	}
	return nil
}
