package walker

import (
	"path"
	"strings"
)

// Format is the representation a content file is compiled to.
type Format string

const (
	FormatUnknown  Format = ""
	FormatMarkdown Format = "markdown" // compiled to plain HTML
	FormatRich     Format = "rich"     // pre-compiled component tree
)

// richSuffix marks pre-compiled component trees.
const richSuffix = ".mdx.json"

var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// DetectFormat returns the content format for a file name.
func DetectFormat(filename string) Format {
	lower := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if strings.HasSuffix(lower, richSuffix) {
		return FormatRich
	}
	if markdownExtensions[path.Ext(lower)] {
		return FormatMarkdown
	}
	return FormatUnknown
}

// URLFor maps a slash-separated content path to the site path it is served
// at: "index.md" is "/", "a/index.md" is "/a/", "a/b.md" is "/a/b".
func URLFor(relPath string) string {
	dir, file := path.Split(relPath)
	lower := strings.ToLower(file)
	var base string
	switch {
	case strings.HasSuffix(lower, richSuffix):
		base = file[:len(file)-len(richSuffix)]
	default:
		base = strings.TrimSuffix(file, path.Ext(file))
	}
	if strings.EqualFold(base, "index") || strings.EqualFold(base, "readme") {
		return "/" + dir
	}
	return "/" + dir + base
}

// IsIndex reports whether relPath is a directory landing page.
func IsIndex(relPath string) bool {
	return strings.HasSuffix(URLFor(relPath), "/")
}
