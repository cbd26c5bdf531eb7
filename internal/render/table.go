package render

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Primitive renders one node. It may render n's children through c or
// read them directly.
type Primitive func(c *Context, n *Node) (*html.Node, error)

// Table maps a tag or component name to its primitive.
type Table map[string]Primitive

// StructuralKeys are the tags every table must render.
var StructuralKeys = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "p", "a", "pre",
	"table", "thead", "tbody", "tr", "th", "td",
	"blockquote",
}

// WidgetKeys are the embeddable components only rich content may use.
var WidgetKeys = []string{
	"Button", "ExpansionPanel", "MultiCodeBlock", "YouTube", "CodeColumns", "TypescriptApiBox",
}

// Structural returns the table shared by both representations.
func Structural() Table {
	t := Table{
		"a":          Link,
		"pre":        CodeBlock,
		"p":          Element("p", ""),
		"ul":         Element("ul", "list"),
		"ol":         Element("ol", "list"),
		"li":         Element("li", ""),
		"table":      TableElement,
		"thead":      Element("thead", ""),
		"tbody":      Element("tbody", ""),
		"tr":         Element("tr", ""),
		"th":         Element("th", ""),
		"td":         Element("td", ""),
		"blockquote": Element("blockquote", "blockquote"),
	}
	for level := 1; level <= 6; level++ {
		t[fmt.Sprintf("h%d", level)] = HeadingElement(level)
	}
	return t
}

// RichTable extends base with the wrapper, the inline-code renderer under
// "inlineCode" and the embeddable widgets.
func RichTable(base Table) Table {
	return base.With(Table{
		"wrapper":          Wrapper,
		"inlineCode":       InlineCode,
		"Button":           Button,
		"ExpansionPanel":   ExpansionPanel,
		"MultiCodeBlock":   MultiCodeBlock,
		"YouTube":          YouTube,
		"CodeColumns":      CodeColumns,
		"TypescriptApiBox": TypescriptAPIBox,
	})
}

// PlainTable extends base with the wrapper and binds "code" to the inline
// renderer. Code inside pre never reaches it.
func PlainTable(base Table) Table {
	return base.With(Table{
		"wrapper": Wrapper,
		"code":    InlineCode,
	})
}

// Clone returns a shallow copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// With returns a copy of t with the entries of extra added or replaced.
func (t Table) With(extra Table) Table {
	out := t.Clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Validate returns an error naming every required key missing from t.
func (t Table) Validate(required ...string) error {
	var missing []string
	for _, k := range required {
		if t[k] == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("render: table missing primitives: %s", strings.Join(missing, ", "))
}
