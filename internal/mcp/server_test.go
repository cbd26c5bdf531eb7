package mcp

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/site"
)

func loadSite(t *testing.T) *site.Site {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample_site")
	s, err := site.Load(site.Options{
		SiteTitle:  "Acme Docs",
		ContentDir: dir,
		NavFile:    filepath.Join(dir, "nav.yml"),
		Exclude:    []string{"**/.*"},
		MatchMode:  nav.MatchExact,
	})
	if err != nil {
		t.Fatalf("site.Load: %v", err)
	}
	return s
}

// resultText joins the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_pages", listPagesTool, "list_pages"},
		{"get_page", getPageTool, "get_page"},
		{"page_neighbors", pageNeighborsTool, "page_neighbors"},
		{"search_docs", searchDocsTool, "search_docs"},
		{"get_nav", getNavTool, "get_nav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	s := loadSite(t)
	srv := NewServer(s)

	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.site != s {
		t.Error("site not set correctly")
	}
}

func TestHandleListPages(t *testing.T) {
	srv := NewServer(loadSite(t))

	t.Run("all pages", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleListPages, map[string]any{}))
		if !strings.HasPrefix(text, "5 page(s):") {
			t.Errorf("unexpected header: %q", text)
		}
		for _, want := range []string{"- /guide/install: Install - Getting the binary.", "- /api/client: Client API"} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in:\n%s", want, text)
			}
		}
	})

	t.Run("prefix", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleListPages, map[string]any{"prefix": "/guide/advanced"}))
		if !strings.HasPrefix(text, "1 page(s):") {
			t.Errorf("unexpected result: %q", text)
		}
	})

	t.Run("no match", func(t *testing.T) {
		result := call(t, srv.handleListPages, map[string]any{"prefix": "/blog"})
		if result.IsError {
			t.Fatal("an empty listing is not an error")
		}
		if !strings.Contains(resultText(t, result), "No pages found") {
			t.Error("expected empty listing message")
		}
	})
}

func TestHandleGetPage(t *testing.T) {
	srv := NewServer(loadSite(t))

	t.Run("markdown page", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{"path": "/guide/install/"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", resultText(t, result))
		}
		text := resultText(t, result)
		for _, want := range []string{"# Install", "Path: /guide/install", "Source: guide/install.md", "Outline:\n- Download\n- Verify"} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in:\n%s", want, text)
			}
		}
	})

	t.Run("rich page", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleGetPage, map[string]any{"path": "/api/client"}))
		if !strings.Contains(text, "Constructor") {
			t.Errorf("expected rich page text, got:\n%s", text)
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{"path": "/nope"})
		if !result.IsError {
			t.Error("expected error for unknown page")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		result := call(t, srv.handleGetPage, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing path")
		}
	})
}

func TestHandlePageNeighbors(t *testing.T) {
	srv := NewServer(loadSite(t))

	text := resultText(t, call(t, srv.handlePageNeighbors, map[string]any{"path": "/guide/install"}))
	if !strings.Contains(text, "Previous: Guide (/guide)") {
		t.Errorf("unexpected previous link:\n%s", text)
	}
	if !strings.Contains(text, "Next: Tuning (/guide/advanced/tuning)") {
		t.Errorf("unexpected next link:\n%s", text)
	}

	text = resultText(t, call(t, srv.handlePageNeighbors, map[string]any{"path": "/"}))
	if !strings.Contains(text, "Previous: (none)") {
		t.Errorf("home has no previous page:\n%s", text)
	}
}

func TestHandleSearchDocs(t *testing.T) {
	srv := NewServer(loadSite(t))

	t.Run("title ranks first", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleSearchDocs, map[string]any{"query": "install"}))
		first := strings.Index(text, "--- Result 1 ---\nPage: /guide/install")
		if first < 0 {
			t.Errorf("expected install page first:\n%s", text)
		}
	})

	t.Run("limit", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleSearchDocs, map[string]any{"query": "install", "limit": 1}))
		if strings.Contains(text, "Result 2") {
			t.Errorf("limit not applied:\n%s", text)
		}
	})

	t.Run("no match", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleSearchDocs, map[string]any{"query": "zzzunlikely"}))
		if !strings.Contains(text, "No pages match") {
			t.Errorf("unexpected result:\n%s", text)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		result := call(t, srv.handleSearchDocs, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})
}

func TestHandleGetNav(t *testing.T) {
	srv := NewServer(loadSite(t))

	text := resultText(t, call(t, srv.handleGetNav, map[string]any{}))
	for _, want := range []string{
		"+ Guide [guide] -> /guide/",
		"  + Advanced [guide/advanced]",
		"    - Tuning -> /guide/advanced/tuning",
		"+ API [api]",
		"- GitHub -> https://github.com/acme/docs",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 200)
	got := snippet(long, "needle")
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipses on both ends: %q", got)
	}
	if !strings.Contains(got, "needle") {
		t.Errorf("snippet lost the term: %q", got)
	}
	// "İ" lowercases to three bytes, shifting offsets in a lowercased copy.
	shifted := strings.Repeat("İ", 60) + "Needle" + strings.Repeat("b", 200)
	if got := snippet(shifted, "needle"); !strings.Contains(got, "Needle") {
		t.Errorf("snippet lost a case-insensitive match after multi-byte text: %q", got)
	}
	if got := snippet("short text", "text"); got != "short text" {
		t.Errorf("snippet(short) = %q", got)
	}
}
