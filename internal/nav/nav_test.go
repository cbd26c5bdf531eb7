package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*Item {
	return []*Item{
		Leaf("Home", "/"),
		Group("guide", "Guide", "/guide",
			Leaf("Install", "/guide/install"),
			Group("guide/advanced", "Advanced", "",
				Leaf("Tuning", "/guide/advanced/tuning"),
			),
		),
		Group("empty", "Empty", "",
			Group("empty/inner", "Inner", ""),
		),
		Leaf("GitHub", "https://github.com/example/repo"),
	}
}

func titles(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func exact(t *testing.T) *PathMatcher {
	t.Helper()
	m, err := NewMatcher(MatchExact)
	require.NoError(t, err)
	return m
}

func TestFlattenPreOrder(t *testing.T) {
	flat := Flatten(sampleTree())
	assert.Equal(t, []string{
		"Home", "Guide", "Install", "Advanced", "Tuning", "Empty", "Inner", "GitHub",
	}, titles(flat))

	groups, leaves := 0, 0
	for _, item := range flat {
		if item.IsGroup() {
			groups++
		} else {
			leaves++
		}
	}
	assert.Equal(t, 4, groups)
	assert.Equal(t, 4, leaves)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestGroupIDsAndLeaves(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, []string{"guide", "guide/advanced", "empty", "empty/inner"}, GroupIDs(tree))
	assert.Equal(t, []string{"Home", "Install", "Tuning", "GitHub"}, titles(Leaves(tree)))
}

func TestWalkSkipsChildren(t *testing.T) {
	var seen []string
	Walk(sampleTree(), func(item *Item, depth int) bool {
		seen = append(seen, item.Title)
		return item.ID != "guide"
	})
	assert.Equal(t, []string{"Home", "Guide", "Empty", "Inner", "GitHub"}, seen)
}

func TestIsGroupActive(t *testing.T) {
	m := exact(t)
	tree := sampleTree()
	guide := tree[1]

	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"direct leaf", "/guide/install", true},
		{"nested leaf", "/guide/advanced/tuning", true},
		{"trailing slash", "/guide/install/", true},
		{"query ignored", "/guide/install?x=1", true},
		{"landing page only", "/guide", false},
		{"elsewhere", "/", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsGroupActive(guide.Children, Location{URI: tt.uri}, m)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsGroupActiveWithoutLeaves(t *testing.T) {
	m, err := NewMatcher(MatchPrefix)
	require.NoError(t, err)
	empty := sampleTree()[2]
	for _, uri := range []string{"/", "/empty", "/empty/inner"} {
		assert.False(t, IsGroupActive(empty.Children, Location{URI: uri}, m), uri)
	}
}

func TestIsGroupActiveBasePath(t *testing.T) {
	m := exact(t)
	children := []*Item{Leaf("A", "a"), Leaf("B", "b")}
	assert.True(t, IsGroupActive(children, Location{URI: "/docs/b", BasePath: "/docs"}, m))
	assert.False(t, IsGroupActive(children, Location{URI: "/b", BasePath: "/docs"}, m))
}

func TestExternalPathIsNeverActive(t *testing.T) {
	m := exact(t)
	children := []*Item{Leaf("Ext", "https://example.com/a"), Leaf("Bad", "")}
	assert.False(t, IsGroupActive(children, Location{URI: "/a"}, m))
}

func TestMatcherResolve(t *testing.T) {
	m := exact(t)

	got, err := m.Resolve("guide/install/", "/docs/")
	require.NoError(t, err)
	assert.Equal(t, "/docs/guide/install", got)

	got, err = m.Resolve("/a#section", "")
	require.NoError(t, err)
	assert.Equal(t, "/a", got)

	_, err = m.Resolve("  ", "/docs")
	assert.True(t, errors.Is(err, ErrEmptyPath))

	_, err = m.Resolve("mailto:someone@example.com", "")
	assert.True(t, errors.Is(err, ErrExternalPath))

	_, err = m.Resolve("//cdn.example.com/x", "")
	assert.True(t, errors.Is(err, ErrExternalPath))
}

func TestMatcherModes(t *testing.T) {
	prefix, err := NewMatcher(MatchPrefix)
	require.NoError(t, err)
	ex := exact(t)

	assert.True(t, prefix.IsActive("/guide", "/guide/install"))
	assert.False(t, prefix.IsActive("/guide", "/guidebook"))
	assert.False(t, prefix.IsActive("/", "/guide"))
	assert.False(t, ex.IsActive("/guide", "/guide/install"))
	assert.True(t, ex.IsActive("/guide/", "/guide"))

	_, err = NewMatcher("fuzzy")
	assert.Error(t, err)

	def, err := NewMatcher("")
	require.NoError(t, err)
	assert.Equal(t, MatchExact, def.Mode)
}

func TestIsLocal(t *testing.T) {
	assert.True(t, IsLocal("/a"))
	assert.False(t, IsLocal("a"))
	assert.False(t, IsLocal(""))
	assert.False(t, IsLocal("//host/a"))
	assert.False(t, IsLocal("https://host/a"))
}

func TestFind(t *testing.T) {
	m := exact(t)
	tree := sampleTree()
	assert.Equal(t, "Tuning", Find(tree, Location{URI: "/guide/advanced/tuning"}, m).Title)
	assert.Equal(t, "Guide", Find(tree, Location{URI: "/guide"}, m).Title)
	assert.Nil(t, Find(tree, Location{URI: "/missing"}, m))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(sampleTree())
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint(sampleTree()))

	changed := sampleTree()
	changed[1].Children[0].Path = "/guide/setup"
	assert.NotEqual(t, a, Fingerprint(changed))

	moved := sampleTree()
	moved[0], moved[3] = moved[3], moved[0]
	assert.NotEqual(t, a, Fingerprint(moved))
}
