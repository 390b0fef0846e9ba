package validation

import (
	"strings"

	"taskr/internal/dates"
	"taskr/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct{}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTaskText validates task text for creation or update
func (tv *TaskValidator) ValidateTaskText(text string) error {
	if !IsNonEmptyString(text) {
		validationError := NewValidationError()
		validationError.AddRequiredError("text")
		return validationError
	}
	return nil
}

// ValidateDueDate accepts "" (no due date) or a DD/MM/YYYY calendar date.
func (tv *TaskValidator) ValidateDueDate(due string) error {
	if !IsValidDueDate(due) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("due_date", due, dates.Layout)
		return validationError
	}
	return nil
}

// ValidateTaskForCreation validates the fields of a new task
func (tv *TaskValidator) ValidateTaskForCreation(text, due string) error {
	validationError := NewValidationError()
	tv.merge(validationError, tv.ValidateTaskText(text))
	tv.merge(validationError, tv.ValidateDueDate(due))

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskUpdate validates a partial update against the current task.
func (tv *TaskValidator) ValidateTaskUpdate(current domain.Task, update domain.TaskUpdate) error {
	validationError := NewValidationError()

	if strings.TrimSpace(current.ID) == "" {
		validationError.AddRequiredError("task_id")
	}
	if update.IsEmpty() {
		validationError.AddError("update", ErrorTypeRequired, "nothing to update", nil)
	}

	editsContent := update.Text != nil || update.DueDate != nil
	reopens := update.Completed != nil && !*update.Completed
	if editsContent && !current.IsEditable() && !reopens {
		validationError.AddInvalidValueError("task", current.ID, "completed tasks cannot be edited")
	}

	if update.Text != nil {
		tv.merge(validationError, tv.ValidateTaskText(*update.Text))
	}
	if update.DueDate != nil {
		tv.merge(validationError, tv.ValidateDueDate(*update.DueDate))
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskID validates a server-assigned task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError("task_id")
		return validationError
	}
	return nil
}

// GetValidTaskText returns trimmed task text if valid
func (tv *TaskValidator) GetValidTaskText(text string) (string, error) {
	if err := tv.ValidateTaskText(text); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (tv *TaskValidator) merge(into *ValidationError, err error) {
	if ve, ok := err.(*ValidationError); ok {
		into.Errors = append(into.Errors, ve.Errors...)
	}
}
