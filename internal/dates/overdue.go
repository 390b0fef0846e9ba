package dates

import "time"

// IsOverdueDate compares calendar days only. A task due today is not overdue.
func IsOverdueDate(due, now time.Time) bool {
	if due.Year() < now.Year() {
		return true
	}
	if due.Year() == now.Year() {
		if due.Month() < now.Month() {
			return true
		}
		if due.Month() == now.Month() && due.Day() < now.Day() {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the DD/MM/YYYY due date lies before now's calendar
// day. Tasks without a due date are never overdue.
func IsOverdue(due string, now time.Time) (bool, error) {
	if due == NoDueDate {
		return false, nil
	}
	t, err := Parse(due)
	if err != nil {
		return false, err
	}
	return IsOverdueDate(t, now), nil
}
