// Package theme stores the light/dark preference and builds the matching styles.
package theme

import (
	"context"

	"taskr/internal/domain"
	"taskr/internal/errors"
	"taskr/internal/logging"
	"taskr/internal/repository/sqlite"

	"github.com/charmbracelet/lipgloss"
)

// PreferenceName is the preferences row holding the theme.
const PreferenceName = "theme"

// Store persists the theme preference.
type Store struct {
	repo       sqlite.Repository
	systemDark func() bool
}

// NewStore creates a Store that falls back to the terminal background when
// no preference has been saved.
func NewStore(repo sqlite.Repository) *Store {
	return &Store{repo: repo, systemDark: lipgloss.HasDarkBackground}
}

// WithSystemSignal replaces the dark-background detector.
func (s *Store) WithSystemSignal(systemDark func() bool) *Store {
	s.systemDark = systemDark
	return s
}

// Get returns the saved theme. Anything other than "light" or "dark" in the
// store is ignored in favour of the system signal.
func (s *Store) Get(ctx context.Context) (domain.Theme, error) {
	pref, err := s.repo.GetPreference(ctx, PreferenceName)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return "", err
	}
	if pref != nil {
		if t, ok := domain.ParseTheme(pref.Value); ok {
			return t, nil
		}
		logging.Debugf("ignoring stored theme %q\n", pref.Value)
	}
	return s.System(), nil
}

// System returns the theme suggested by the terminal.
func (s *Store) System() domain.Theme {
	if s.systemDark != nil && s.systemDark() {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// Set saves the theme.
func (s *Store) Set(ctx context.Context, t domain.Theme) error {
	if _, ok := domain.ParseTheme(string(t)); !ok {
		return errors.NewInvalidInputError("theme", string(t), "must be light or dark")
	}
	return s.repo.SetPreference(ctx, &sqlite.Preference{Name: PreferenceName, Value: string(t)})
}

// Toggle flips the current theme, saves it and returns the new value.
func (s *Store) Toggle(ctx context.Context) (domain.Theme, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Reset forgets the saved theme so the system signal applies again.
func (s *Store) Reset(ctx context.Context) error {
	err := s.repo.DeletePreference(ctx, PreferenceName)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil
	}
	return err
}
