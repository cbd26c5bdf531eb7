package nav

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docshell/internal/slug"
)

var (
	// ErrDuplicateGroupID is returned when two groups share an id.
	ErrDuplicateGroupID = errors.New("nav: duplicate group id")
	// ErrLeafWithoutPath is returned for a leaf entry with no path.
	ErrLeafWithoutPath = errors.New("nav: leaf without path")
)

// rawItem mirrors one entry of a nav YAML file. A present children key,
// even an empty one, marks the entry as a group.
type rawItem struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Path     string     `yaml:"path"`
	Children *[]rawItem `yaml:"children"`
}

// LoadFile reads and parses a nav file: a SUMMARY.md style list for .md
// files, YAML otherwise.
func LoadFile(path string) ([]*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading nav file %s: %w", path, err)
	}
	var items []*Item
	if strings.EqualFold(filepath.Ext(path), ".md") {
		items, err = ParseSummary(bytes.NewReader(data))
	} else {
		items, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing nav file %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes a YAML sequence of nav entries into a validated tree.
// Groups without an id get one derived from their title chain.
func Parse(data []byte) ([]*Item, error) {
	var raw []rawItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	items, err := convert(raw, nil)
	if err != nil {
		return nil, err
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

func convert(raw []rawItem, parents []string) ([]*Item, error) {
	items := make([]*Item, 0, len(raw))
	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = r.Path
		}
		if r.Children == nil {
			items = append(items, Leaf(title, r.Path))
			continue
		}
		chain := append(append([]string{}, parents...), slug.Make(title))
		id := r.ID
		if id == "" {
			id = strings.Join(chain, "/")
		}
		children, err := convert(*r.Children, chain)
		if err != nil {
			return nil, err
		}
		items = append(items, Group(id, title, r.Path, children...))
	}
	return items, nil
}

// Validate checks the tree invariants: leaves have paths, group ids are
// non-empty and unique.
func Validate(items []*Item) error {
	seen := make(map[string]bool)
	for _, item := range Flatten(items) {
		if !item.IsGroup() {
			if item.Path == "" {
				return fmt.Errorf("%w: %q", ErrLeafWithoutPath, item.Title)
			}
			continue
		}
		if item.ID == "" {
			return fmt.Errorf("nav: group %q has no id", item.Title)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateGroupID, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}
