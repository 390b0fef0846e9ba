package domain

import (
	"strings"
	"time"

	"taskr/internal/dates"
)

// Task represents a to-do item as returned by the Taskr backend.
// IDs and timestamps are owned by the server and treated as opaque.
type Task struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId,omitempty"`
	Text      string `json:"text"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewTask creates an unsaved Task with the given text and due date.
func NewTask(text, dueDate string) Task {
	return Task{
		Text:    text,
		DueDate: dueDate,
	}
}

// IsValid checks that the task has display text and a well-formed due date.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Text) != "" && dates.IsWellFormed(t.DueDate)
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != dates.NoDueDate
}

// IsOverdue reports whether the task is past due on now's calendar day.
// Tasks without a due date, or with one that cannot be parsed, are not overdue.
func (t Task) IsOverdue(now time.Time) bool {
	overdue, err := dates.IsOverdue(t.DueDate, now)
	return err == nil && overdue
}

// IsEditable reports whether the task text and due date may be changed.
// Completed tasks are read-only until they are reopened.
func (t Task) IsEditable() bool {
	return !t.Completed
}

// ShortIDLength is how many leading ID characters the CLI shows.
const ShortIDLength = 8

// ShortID returns the abbreviated task ID used in listings.
func (t Task) ShortID() string {
	if len(t.ID) <= ShortIDLength {
		return t.ID
	}
	return t.ID[:ShortIDLength]
}

// Apply returns a copy of t with the non-nil fields of u set.
func (t Task) Apply(u TaskUpdate) Task {
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	return t
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// TaskUpdate is a partial update; nil fields are left unchanged by the server.
type TaskUpdate struct {
	Text      *string `json:"text,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Text == nil && u.DueDate == nil && u.Completed == nil
}

// User is the signed-in account.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initial returns the first character of the user's name, shown as the
// account badge.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return ""
}
