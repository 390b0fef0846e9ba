package sqlite

import (
	"database/sql"
)

// Scanner is the part of *sql.Row used to read a stored row
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanSlot scans a single slot from a database row
func ScanSlot(scanner Scanner) (*Slot, error) {
	slot := &Slot{}
	var expiresAt sql.NullString
	var updatedAt string

	if err := scanner.Scan(&slot.Key, &slot.Value, &expiresAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if slot.ExpiresAt, err = ParseNullTimeFromDB(expiresAt); err != nil {
		return nil, err
	}
	if slot.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return slot, nil
}

// ScanPreference scans a single preference from a database row
func ScanPreference(scanner Scanner) (*Preference, error) {
	pref := &Preference{}
	var updatedAt string

	if err := scanner.Scan(&pref.Name, &pref.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	pref.UpdatedAt = t

	return pref, nil
}
