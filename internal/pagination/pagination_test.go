package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docshell/internal/nav"
)

func exact(t *testing.T) nav.Matcher {
	t.Helper()
	m, err := nav.NewMatcher(nav.MatchExact)
	require.NoError(t, err)
	return m
}

func title(item *nav.Item) string {
	if item == nil {
		return ""
	}
	return item.Title
}

func TestDeriveSimple(t *testing.T) {
	tree := []*nav.Item{
		nav.Leaf("A", "/a"),
		nav.Leaf("B", "/b"),
		nav.Leaf("C", "/c"),
	}
	m := exact(t)

	prev, next := Derive(tree, nav.Location{URI: "/b"}, m)
	assert.Equal(t, "A", title(prev))
	assert.Equal(t, "C", title(next))

	prev, next = Derive(tree, nav.Location{URI: "/a"}, m)
	assert.Nil(t, prev)
	assert.Equal(t, "B", title(next))

	prev, next = Derive(tree, nav.Location{URI: "/c"}, m)
	assert.Equal(t, "B", title(prev))
	assert.Nil(t, next)

	prev, next = Derive(tree, nav.Location{URI: "/missing"}, m)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestDeriveNested(t *testing.T) {
	tree := []*nav.Item{
		nav.Leaf("Intro", "/"),
		nav.Group("start", "Start", "",
			nav.Leaf("Install", "/start/install"),
			nav.Leaf("Docs", "https://example.com/docs"),
		),
		nav.Group("api", "API", "/api",
			nav.Leaf("Client", "/api/client"),
		),
	}
	m := exact(t)

	assert.Equal(t, []string{"Intro", "Install", "API", "Client"}, titlesOf(Candidates(tree)))

	prev, next := Derive(tree, nav.Location{URI: "/start/install"}, m)
	assert.Equal(t, "Intro", title(prev))
	assert.Equal(t, "API", title(next))

	prev, next = Derive(tree, nav.Location{URI: "/api"}, m)
	assert.Equal(t, "Install", title(prev))
	assert.Equal(t, "Client", title(next))
}

func TestDeriveEmptyTree(t *testing.T) {
	prev, next := Derive(nil, nav.Location{URI: "/"}, exact(t))
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestLinks(t *testing.T) {
	tree := []*nav.Item{
		nav.Leaf("A", "/a"),
		nav.Leaf("B", "/b"),
	}
	prev, next := Links(tree, nav.Location{URI: "/docs/a", BasePath: "/docs"}, exact(t))
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, Link{Title: "B", Href: "/docs/b"}, *next)
}

func titlesOf(items []*nav.Item) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}
