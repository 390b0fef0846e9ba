// Package dates converts due dates between time values and the DD/MM/YYYY
// text the Taskr backend stores, and decides whether a due date has passed.
package dates

import (
	"fmt"
	"time"

	"taskr/internal/errors"
)

// Layout is the textual due-date form, always ten characters.
const Layout = "DD/MM/YYYY"

// NoDueDate is the sentinel stored for tasks without a due date.
const NoDueDate = ""

var monthAbbreviations = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Format renders t as DD/MM/YYYY.
func Format(t time.Time) string {
	return fmt.Sprintf("%s/%s/%d", padNumber(t.Day()), padNumber(int(t.Month())), t.Year())
}

// FormatOptional renders t, or the no-due-date sentinel when t is nil.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return NoDueDate
	}
	return Format(*t)
}

// Parse reads a DD/MM/YYYY string into a UTC midnight time. Anything else,
// including the empty sentinel, is rejected with an invalid-date error.
func Parse(s string) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, errors.NewInvalidDateError(s, "expected "+Layout)
	}
	if s[2] != '/' || s[5] != '/' {
		return time.Time{}, errors.NewInvalidDateError(s, "expected '/' separators")
	}

	day, ok := parseDigits(s[0:2])
	if !ok {
		return time.Time{}, errors.NewInvalidDateError(s, "day is not a number")
	}
	month, ok := parseDigits(s[3:5])
	if !ok {
		return time.Time{}, errors.NewInvalidDateError(s, "month is not a number")
	}
	year, ok := parseDigits(s[6:])
	if !ok {
		return time.Time{}, errors.NewInvalidDateError(s, "year is not a number")
	}

	if day < 1 || day > 31 {
		return time.Time{}, errors.NewInvalidDateError(s, "day out of range")
	}
	if month < 1 || month > 12 {
		return time.Time{}, errors.NewInvalidDateError(s, "month out of range")
	}
	if year < 1000 {
		return time.Time{}, errors.NewInvalidDateError(s, "year out of range")
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March.
	if t.Day() != day {
		return time.Time{}, errors.NewInvalidDateError(s, "day out of range for month")
	}
	return t, nil
}

// Display renders a due date as "D MMM", adding the year when it is not
// now's year. The no-due-date sentinel displays as the empty string.
func Display(s string, now time.Time) (string, error) {
	if s == NoDueDate {
		return "", nil
	}
	t, err := Parse(s)
	if err != nil {
		return "", err
	}

	display := fmt.Sprintf("%d %s", t.Day(), monthAbbreviations[t.Month()-1])
	if t.Year() != now.Year() {
		display += fmt.Sprintf(" %d", t.Year())
	}
	return display, nil
}

// IsWellFormed reports whether s is the sentinel or a parseable due date.
func IsWellFormed(s string) bool {
	if s == NoDueDate {
		return true
	}
	_, err := Parse(s)
	return err == nil
}

func padNumber(n int) string {
	if n > 0 && n < 10 {
		return fmt.Sprintf("0%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
