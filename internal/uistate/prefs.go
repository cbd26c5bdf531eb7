package uistate

import "context"

// SidebarHidden reports whether the sidebar is hidden. Defaults to false.
func SidebarHidden(ctx context.Context, s *Store) (bool, error) {
	var hidden bool
	if _, err := s.Get(ctx, KeySidebar, &hidden); err != nil {
		return false, err
	}
	return hidden, nil
}

// SetSidebarHidden persists the sidebar visibility.
func SetSidebarHidden(ctx context.Context, s *Store, hidden bool) error {
	return s.Set(ctx, KeySidebar, hidden)
}

// Language returns the preferred code-sample language, or "" when none has
// been chosen.
func Language(ctx context.Context, s *Store) (string, error) {
	var lang string
	if _, err := s.Get(ctx, KeyLanguage, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SetLanguage persists the preferred code-sample language.
func SetLanguage(ctx context.Context, s *Store, lang string) error {
	return s.Set(ctx, KeyLanguage, lang)
}
