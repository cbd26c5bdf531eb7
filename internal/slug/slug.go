// Package slug turns headings and titles into URL fragments the way GitHub
// does: lower case, punctuation dropped, spaces turned into hyphens.
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Make returns the slug for s without de-duplication.
func Make(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// Slugger hands out unique slugs within one document by suffixing repeats
// with -1, -2 and so on.
type Slugger struct {
	seen map[string]int
}

// New returns an empty Slugger.
func New() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns a unique slug for s.
func (s *Slugger) Slug(text string) string {
	base := Make(text)
	slug := base
	for {
		if _, taken := s.seen[slug]; !taken {
			break
		}
		s.seen[base]++
		slug = base + "-" + strconv.Itoa(s.seen[base])
	}
	s.seen[slug] = 0
	return slug
}

// Reserve marks an existing id as taken so generated slugs avoid it.
func (s *Slugger) Reserve(id string) {
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = 0
	}
}
