package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// testdataDir returns the absolute path to the testdata/sample_site directory.
func testdataDir(t *testing.T) string {
	t.Helper()
	// Navigate from internal/walker to project root.
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	root := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample_site")
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		t.Fatalf("testdata dir does not exist: %s", abs)
	}
	return abs
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	sort.Strings(out)
	return out
}

func TestWalk_BasicTraversal(t *testing.T) {
	dir := testdataDir(t)

	files, err := Walk(WalkerConfig{RootDir: dir, Exclude: []string{"**/.*"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{
		"api/client.mdx.json",
		"guide/advanced/tuning.md",
		"guide/index.md",
		"guide/install.md",
		"index.md",
	}
	got := relPaths(files)
	if len(got) != len(want) {
		t.Fatalf("Walk() returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalk_SkipsDefaultExcludedDirs(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, f := range files {
		if filepath.Dir(f.RelPath) == "node_modules/pkg" {
			t.Errorf("node_modules should be skipped, found %s", f.RelPath)
		}
	}
	// Without user excludes the dotfile is still content.
	found := false
	for _, f := range files {
		if f.RelPath == ".draft.md" {
			found = true
		}
	}
	if !found {
		t.Error("expected .draft.md without an exclude pattern")
	}
}

func TestWalk_Metadata(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	byPath := make(map[string]FileInfo)
	for _, f := range files {
		byPath[f.RelPath] = f
	}

	install, ok := byPath["guide/install.md"]
	if !ok {
		t.Fatal("guide/install.md missing")
	}
	if install.Format != FormatMarkdown {
		t.Errorf("format = %q, want markdown", install.Format)
	}
	if install.URL != "/guide/install" {
		t.Errorf("url = %q, want /guide/install", install.URL)
	}
	if len(install.ContentHash) != 16 {
		t.Errorf("content hash %q should be 16 hex chars", install.ContentHash)
	}
	if install.Size == 0 {
		t.Error("size should be non-zero")
	}
	if !filepath.IsAbs(install.Path) {
		t.Errorf("path %q should be absolute", install.Path)
	}

	client := byPath["api/client.mdx.json"]
	if client.Format != FormatRich {
		t.Errorf("client format = %q, want rich", client.Format)
	}
	if client.URL != "/api/client" {
		t.Errorf("client url = %q", client.URL)
	}
}

func TestWalk_IncludeFilter(t *testing.T) {
	files, err := Walk(WalkerConfig{
		RootDir: testdataDir(t),
		Include: []string{"guide/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("expected 3 guide files, got %v", relPaths(files))
	}
}

func TestWalk_MaxFileSize(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t), MaxFileSize: 1})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected every file over the limit, got %v", relPaths(files))
	}
}

func TestWalk_Gitignore(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".gitignore"), "drafts/\nsecret.md\n")
	mustWrite(t, filepath.Join(dir, "index.md"), "# Home\n")
	mustWrite(t, filepath.Join(dir, "secret.md"), "# Secret\n")
	mustWrite(t, filepath.Join(dir, "drafts", "wip.md"), "# WIP\n")

	files, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	got := relPaths(files)
	if len(got) != 1 || got[0] != "index.md" {
		t.Errorf("Walk() = %v, want [index.md]", got)
	}
}

func TestWalk_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.md")
	mustWrite(t, path, "x")
	if _, err := Walk(WalkerConfig{RootDir: path}); err == nil {
		t.Error("expected error for a file root")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"a.md", FormatMarkdown},
		{"A.MARKDOWN", FormatMarkdown},
		{"dir/page.mdx.json", FormatRich},
		{"data.json", FormatUnknown},
		{"nav.yml", FormatUnknown},
		{"README", FormatUnknown},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.name); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestURLFor(t *testing.T) {
	tests := []struct {
		rel   string
		want  string
		index bool
	}{
		{"index.md", "/", true},
		{"guide/index.md", "/guide/", true},
		{"guide/README.md", "/guide/", true},
		{"guide/install.md", "/guide/install", false},
		{"api/client.mdx.json", "/api/client", false},
		{"api/index.mdx.json", "/api/", true},
	}
	for _, tt := range tests {
		if got := URLFor(tt.rel); got != tt.want {
			t.Errorf("URLFor(%q) = %q, want %q", tt.rel, got, tt.want)
		}
		if got := IsIndex(tt.rel); got != tt.index {
			t.Errorf("IsIndex(%q) = %v, want %v", tt.rel, got, tt.index)
		}
	}
}

func TestMatchesExclude(t *testing.T) {
	if !MatchesExclude("guide/.hidden.md", []string{"**/.*"}) {
		t.Error("dotfile should match **/.*")
	}
	if MatchesExclude("guide/install.md", []string{"**/.*"}) {
		t.Error("regular file should not match **/.*")
	}
	if MatchesExclude("anything.md", nil) {
		t.Error("nil patterns exclude nothing")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
