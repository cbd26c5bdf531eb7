package site

import (
	"encoding/json"
	"os"
	"strings"
)

// maxSearchContent bounds the text stored per page.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page in the documentation.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds one entry per page of s.
func BuildSearchIndex(s *Site) []SearchEntry {
	entries := make([]SearchEntry, 0, len(s.Pages()))
	for _, p := range s.Pages() {
		content := strings.Join(strings.Fields(p.Text), " ")
		if len(content) > maxSearchContent {
			content = truncateUTF8(content, maxSearchContent)
		}
		entries = append(entries, SearchEntry{
			Path:    s.URI(p),
			Title:   p.Title,
			Summary: p.Description,
			Content: content,
		})
	}
	return entries
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// MarshalSearchIndex encodes entries as JSON.
func MarshalSearchIndex(entries []SearchEntry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := MarshalSearchIndex(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
