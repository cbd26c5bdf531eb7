package site

import (
	"path"
	"sort"
	"strings"

	"github.com/ziadkadry99/docshell/internal/nav"
)

// FileTree represents a node in the content directory tree.
type FileTree struct {
	Name     string
	Path     string // For files: full relative path. For dirs: directory path (e.g., "guide/advanced").
	IsDir    bool
	Page     *Page // For files: the loaded page. For dirs: the index page, if any.
	Children []*FileTree
}

// BuildTree constructs a FileTree from loaded pages. Index pages attach to
// their directory instead of becoming children.
func BuildTree(pages []*Page) *FileTree {
	root := &FileTree{Name: "", IsDir: true}

	for _, p := range pages {
		dir := path.Dir(p.RelPath)
		current := root
		if dir != "." {
			parts := strings.Split(dir, "/")
			for i, part := range parts {
				var next *FileTree
				for _, child := range current.Children {
					if child.IsDir && child.Name == part {
						next = child
						break
					}
				}
				if next == nil {
					next = &FileTree{
						Name:  part,
						Path:  strings.Join(parts[:i+1], "/"),
						IsDir: true,
					}
					current.Children = append(current.Children, next)
				}
				current = next
			}
		}
		if p.Index {
			if current.Page == nil {
				current.Page = p
			}
			continue
		}
		current.Children = append(current.Children, &FileTree{
			Name: path.Base(p.RelPath),
			Path: p.RelPath,
			Page: p,
		})
	}

	sortTree(root)
	return root
}

// sortTree recursively sorts tree children: files first, then directories, alphabetically.
func sortTree(node *FileTree) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return !node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

// BuildNav derives a nav tree from the directory layout. The root index
// page becomes the first leaf; every directory becomes a group whose id is
// its path and whose landing path is its index page.
func BuildNav(pages []*Page) []*nav.Item {
	tree := BuildTree(pages)

	var items []*nav.Item
	if tree.Page != nil {
		items = append(items, nav.Leaf(tree.Page.Title, tree.Page.URL))
	}
	return append(items, navChildren(tree)...)
}

func navChildren(node *FileTree) []*nav.Item {
	var items []*nav.Item
	for _, child := range node.Children {
		if !child.IsDir {
			items = append(items, nav.Leaf(child.Page.Title, child.Page.URL))
			continue
		}
		title := formatDirName(child.Name)
		landing := ""
		if child.Page != nil {
			title = child.Page.Title
			landing = child.Page.URL
		}
		items = append(items, nav.Group(child.Path, title, landing, navChildren(child)...))
	}
	return items
}

// formatDirName converts a directory or file name to a human-readable display name.
func formatDirName(name string) string {
	// Title-case each word separated by hyphens or underscores.
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
