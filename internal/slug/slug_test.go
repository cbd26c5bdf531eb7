package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Getting Started", "getting-started"},
		{"  API: v2 (beta)!  ", "api-v2-beta"},
		{"snake_case and-dash", "snake_case-and-dash"},
		{"Überblick", "überblick"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), tt.in)
	}
}

func TestSlugger_Dedupes(t *testing.T) {
	s := New()
	assert.Equal(t, "install", s.Slug("Install"))
	assert.Equal(t, "install-1", s.Slug("Install"))
	assert.Equal(t, "install-2", s.Slug("install"))
	assert.Equal(t, "verify", s.Slug("Verify"))
}

func TestSlugger_Reserve(t *testing.T) {
	s := New()
	s.Reserve("usage")
	assert.Equal(t, "usage-1", s.Slug("Usage"))
}
