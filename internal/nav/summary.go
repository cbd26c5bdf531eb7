package nav

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// summaryLine matches one entry of an mdBook-style SUMMARY.md:
//
//	  - [Title](./dir/page.md)
var summaryLine = regexp.MustCompile(`^(\s*)[-*]\s*\[([^\]]+)\]\(([^)]*)\)`)

type summaryEntry struct {
	indent   int
	title    string
	path     string
	children []*summaryEntry
}

// ParseSummary reads a SUMMARY.md table of contents. Nesting follows list
// indentation. An entry with nested entries, or without a link, becomes a
// group; its link, if any, is the group's landing page. Lines that are not
// list entries with a link are skipped.
func ParseSummary(r io.Reader) ([]*Item, error) {
	root := &summaryEntry{indent: -1}
	stack := []*summaryEntry{root}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := summaryLine.FindStringSubmatch(strings.ReplaceAll(scanner.Text(), "\t", "    "))
		if m == nil {
			continue
		}
		entry := &summaryEntry{
			indent: len(m[1]),
			title:  strings.TrimSpace(m[2]),
			path:   summaryPath(m[3]),
		}
		for len(stack) > 1 && entry.indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, entry)
		stack = append(stack, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}

	items, err := convert(summaryRaw(root.children), nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

func summaryRaw(entries []*summaryEntry) []rawItem {
	out := make([]rawItem, 0, len(entries))
	for _, e := range entries {
		r := rawItem{Title: e.title, Path: e.path}
		if len(e.children) > 0 || e.path == "" {
			children := summaryRaw(e.children)
			r.Children = &children
		}
		out = append(out, r)
	}
	return out
}

// summaryPath maps a markdown link target to a site path:
// "./guide/README.md" becomes "/guide/", "intro.md" becomes "/intro".
func summaryPath(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || IsExternal(target) {
		return target
	}
	target = strings.TrimPrefix(target, "./")
	lower := strings.ToLower(target)
	if !strings.HasSuffix(lower, ".md") {
		return "/" + strings.TrimPrefix(target, "/")
	}
	dir, file := path.Split(strings.TrimPrefix(target, "/"))
	base := strings.TrimSuffix(file, path.Ext(file))
	switch strings.ToLower(base) {
	case "readme", "index":
		return "/" + dir
	default:
		return "/" + dir + base
	}
}
