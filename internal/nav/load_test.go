package nav

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const navYAML = `
- title: Introduction
  path: /
- title: Getting Started
  children:
    - title: Install
      path: /start/install
    - title: First Steps
      path: /start/first-steps
      children:
        - title: Hello World
          path: /start/first-steps/hello
- id: api
  title: API Reference
  path: /api
  children: []
`

func TestParse(t *testing.T) {
	items, err := Parse([]byte(navYAML))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, KindLeaf, items[0].Kind)
	assert.Equal(t, "/", items[0].Path)

	start := items[1]
	assert.Equal(t, KindGroup, start.Kind)
	assert.Equal(t, "getting-started", start.ID)
	assert.Empty(t, start.Path)

	first := start.Children[1]
	assert.True(t, first.IsGroup())
	assert.Equal(t, "getting-started/first-steps", first.ID)
	assert.Equal(t, "/start/first-steps", first.Path)

	api := items[2]
	assert.True(t, api.IsGroup())
	assert.Equal(t, "api", api.ID)
	assert.NotNil(t, api.Children)
	assert.Empty(t, api.Children)
}

func TestParseRejectsLeafWithoutPath(t *testing.T) {
	_, err := Parse([]byte("- title: Nowhere\n"))
	assert.True(t, errors.Is(err, ErrLeafWithoutPath))
}

func TestParseRejectsDuplicateGroupIDs(t *testing.T) {
	data := `
- title: Same
  children: []
- title: Same
  children: []
`
	_, err := Parse([]byte(data))
	assert.True(t, errors.Is(err, ErrDuplicateGroupID))
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("- title: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nav.yml")
	require.NoError(t, os.WriteFile(p, []byte(navYAML), 0o644))

	items, err := LoadFile(p)
	require.NoError(t, err)
	assert.Len(t, Flatten(items), 6)

	_, err = LoadFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
