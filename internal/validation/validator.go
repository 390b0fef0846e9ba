package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"taskr/internal/dates"
	"taskr/internal/domain"
)

const (
	// PasswordMinLength is the minimum password length in characters.
	PasswordMinLength = 8
	// NameMaxLength is the maximum display name length in characters.
	NameMaxLength = 30
)

// emailPattern is intentionally unanchored at the start; the backend performs
// the authoritative check.
var emailPattern = regexp.MustCompile(`[a-z0-9\.]+@[a-z]+\.[a-z]{2,3}$`)

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword reports whether the trimmed password is long enough.
func ValidatePassword(s string) bool {
	return trimmedLength(s) >= PasswordMinLength
}

// ValidateName reports whether the trimmed name fits the display limit.
func ValidateName(s string) bool {
	return trimmedLength(s) <= NameMaxLength
}

// IsFormFilled reports whether every field the auth form needs is non-blank.
// Registration additionally requires a name.
func IsFormFilled(authType domain.AuthType, name, email, password string) bool {
	if !IsNonEmptyString(email) || !IsNonEmptyString(password) {
		return false
	}
	if authType == domain.Registration {
		return IsNonEmptyString(name)
	}
	return true
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDueDate accepts the empty sentinel or a parseable DD/MM/YYYY date.
func IsValidDueDate(s string) bool {
	if s == dates.NoDueDate {
		return true
	}
	return dates.IsWellFormed(s)
}

func trimmedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
