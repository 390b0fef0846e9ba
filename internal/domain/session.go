package domain

import "strings"

// Session is the pair of opaque tokens identifying an authenticated device.
type Session struct {
	SessionID   string `json:"sessionId"`
	SessionHash string `json:"sessionHash"`
}

// IsComplete reports whether both tokens are present. A session with only
// one token is treated as signed out.
func (s Session) IsComplete() bool {
	return s.SessionID != "" && s.SessionHash != ""
}

// AuthResult is the body returned by a successful login or registration.
type AuthResult struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// AuthType selects which auth form is being submitted.
type AuthType int

const (
	SignIn AuthType = iota
	Registration
)

// String returns the form heading.
func (a AuthType) String() string {
	if a == Registration {
		return "Create Account"
	}
	return "Sign In"
}
