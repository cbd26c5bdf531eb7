package mcp

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/pagination"
	"github.com/ziadkadry99/docshell/internal/render"
	"github.com/ziadkadry99/docshell/internal/site"
)

// handleListPages lists the site's pages, optionally under a path prefix.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := request.GetString("prefix", "")

	var sb strings.Builder
	n := 0
	for _, p := range s.site.Pages() {
		uri := s.site.URI(p)
		if prefix != "" && !strings.HasPrefix(uri, prefix) {
			continue
		}
		n++
		sb.WriteString(fmt.Sprintf("- %s: %s", uri, p.Title))
		if p.Description != "" {
			sb.WriteString(" - " + p.Description)
		}
		sb.WriteString("\n")
	}
	if n == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No pages found under %q.", prefix)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d page(s):\n%s", n, sb.String())), nil
}

// handleGetPage returns the title, outline and text of one page.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	var sb strings.Builder
	sb.WriteString("# " + p.Title + "\n")
	sb.WriteString(fmt.Sprintf("Path: %s\n", s.site.URI(p)))
	sb.WriteString(fmt.Sprintf("Source: %s\n", p.RelPath))
	if p.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", p.Description))
	}
	if headings := pageHeadings(p); len(headings) > 0 {
		sb.WriteString("\nOutline:\n")
		for _, h := range headings {
			sb.WriteString(fmt.Sprintf("%s- %s\n", strings.Repeat("  ", max(h.Depth-2, 0)), h.Value))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(p.Text)
	sb.WriteString("\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// handlePageNeighbors returns the pagination links of a page.
func (s *Server) handlePageNeighbors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	composer := s.site.Composer()
	prev, next := pagination.Links(s.site.Nav(), composer.Location(s.site.URI(p)), composer.Matcher())
	if prev == nil && next == nil {
		return mcp.NewToolResultText(fmt.Sprintf("%s is not part of the navigation.", s.site.URI(p))), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Previous: %s\n", formatLink(prev)))
	sb.WriteString(fmt.Sprintf("Next: %s\n", formatLink(next)))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchDocs does a case-insensitive keyword search over the search
// index. Title hits rank above body hits.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return mcp.NewToolResultError("query must contain at least one word"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	type hit struct {
		entry site.SearchEntry
		score int
	}
	var hits []hit
	for _, e := range site.BuildSearchIndex(s.site) {
		if score := scoreEntry(e, terms); score > 0 {
			hits = append(hits, hit{entry: e, score: score})
		}
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No pages match %q.", query)), nil
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(hits)))
	for i, h := range hits {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Page: %s\n", h.entry.Path))
		sb.WriteString(fmt.Sprintf("Title: %s\n", h.entry.Title))
		if h.entry.Summary != "" {
			sb.WriteString(fmt.Sprintf("Summary: %s\n", h.entry.Summary))
		}
		sb.WriteString(fmt.Sprintf("Snippet: %s\n", snippet(h.entry.Content, terms[0])))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetNav renders the nav tree as an outline.
func (s *Server) handleGetNav(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Navigation (fingerprint %s):\n", nav.Fingerprint(s.site.Nav())))
	writeOutline(&sb, s.site.Nav(), 0)
	return mcp.NewToolResultText(sb.String()), nil
}

// lookup resolves the required path argument to a page, or returns the
// tool error to send back.
func (s *Server) lookup(request mcp.CallToolRequest) (*site.Page, *mcp.CallToolResult) {
	path, err := request.RequireString("path")
	if err != nil {
		return nil, mcp.NewToolResultError("missing required parameter: path")
	}
	p, ok := s.site.Lookup(path)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("No page found at %q. Use list_pages to see available paths.", path))
	}
	return p, nil
}

func pageHeadings(p *site.Page) []render.Heading {
	if p.Content.Rich != nil {
		return p.Content.Rich.Headings
	}
	if p.Content.Plain != nil {
		return p.Content.Plain.Headings
	}
	return nil
}

func scoreEntry(e site.SearchEntry, terms []string) int {
	title := strings.ToLower(e.Title)
	body := strings.ToLower(e.Summary + " " + e.Content)
	score := 0
	for _, t := range terms {
		switch {
		case strings.Contains(title, t):
			score += 3
		case strings.Contains(body, t):
			score++
		default:
			return 0
		}
	}
	return score
}

// snippet returns up to 160 bytes of content around the first occurrence of term.
func snippet(content, term string) string {
	const width = 160
	// Offsets come from content itself; lowercasing may change byte lengths.
	i := 0
	if loc := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term)).FindStringIndex(content); loc != nil {
		i = loc[0]
	}
	start := max(i-width/4, 0)
	end := min(start+width, len(content))
	for start > 0 && start < len(content) && content[start]&0xC0 == 0x80 {
		start--
	}
	for end < len(content) && content[end]&0xC0 == 0x80 {
		end++
	}
	out := content[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out += "..."
	}
	return out
}

func formatLink(l *pagination.Link) string {
	if l == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s (%s)", l.Title, l.Href)
}

func writeOutline(sb *strings.Builder, items []*nav.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		switch {
		case item.IsGroup() && item.Path != "":
			sb.WriteString(fmt.Sprintf("%s+ %s [%s] -> %s\n", indent, item.Title, item.ID, item.Path))
		case item.IsGroup():
			sb.WriteString(fmt.Sprintf("%s+ %s [%s]\n", indent, item.Title, item.ID))
		default:
			sb.WriteString(fmt.Sprintf("%s- %s -> %s\n", indent, item.Title, item.Path))
		}
		writeOutline(sb, item.Children, depth+1)
	}
}
