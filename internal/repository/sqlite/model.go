package sqlite

import "time"

// Slot is a named value with an optional expiry, used for session tokens.
type Slot struct {
	Key       string
	Value     string
	ExpiresAt *time.Time // nil never expires
	UpdatedAt time.Time
}

// IsExpired reports whether the slot has expired at now.
func (s *Slot) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Preference is a persistent user setting such as the colour theme.
type Preference struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}
