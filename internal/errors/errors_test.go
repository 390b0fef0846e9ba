package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode string
		wantMsg  string
	}{
		{"validation", NewValidationError("invalid task text", nil), ErrorTypeValidation, "VALIDATION_FAILED", "invalid task text"},
		{"not found", NewNotFoundError("task", "abc123"), ErrorTypeNotFound, "NOT_FOUND", "task not found: abc123"},
		{"database", NewDatabaseError("get slot", nil), ErrorTypeDatabase, "DATABASE_ERROR", "database operation failed: get slot"},
		{"invalid input", NewInvalidInputError("filter", "soon", "unknown filter"), ErrorTypeInvalidInput, "INVALID_INPUT", "invalid input for filter: unknown filter"},
		{"timeout", NewTimeoutError("list tasks", "10s"), ErrorTypeTimeout, "TIMEOUT", "operation timed out: list tasks"},
		{"permission", NewPermissionError("delete", "task"), ErrorTypePermission, "PERMISSION_DENIED", "permission denied for delete on task"},
		{"invalid date", NewInvalidDateError("1/1/2024", "expected DD/MM/YYYY"), ErrorTypeInvalidDate, "INVALID_DATE", `invalid date "1/1/2024": expected DD/MM/YYYY`},
		{"auth", NewAuthError("Password is incorrect."), ErrorTypeAuth, "UNAUTHORIZED", "Password is incorrect."},
		{"conflict", NewConflictError("account", "An account with this email already exists."), ErrorTypeConflict, "CONFLICT", "An account with this email already exists."},
		{"network", NewNetworkError("login", nil), ErrorTypeNetwork, "NETWORK_ERROR", "request failed: login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(cause, ErrorTypeNetwork, "server error")

	assert.Equal(t, "network", err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("create task: %w", NewNotFoundError("task", "1"))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(wrapped, ErrorTypeAuth))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"auth message passes through", NewAuthError("Password is incorrect."), "Password is incorrect."},
		{"invalid date passes through", NewInvalidDateError("x", "too short"), `invalid date "x": too short`},
		{"database is generic", NewDatabaseError("open", errors.New("disk")), "A local storage error occurred. Please try again."},
		{"timeout is generic", NewTimeoutError("login", "10s"), "The operation timed out. Please try again."},
		{"network is generic", NewNetworkError("login", errors.New("refused")), "Could not reach the Taskr server. Please try again."},
		{"plain error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "CONFLICT", GetErrorCode(NewConflictError("account", "exists")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewAuthError("bad password")))
	assert.False(t, ShouldLogError(NewInvalidDateError("x", "bad")))
	assert.False(t, ShouldLogError(NewConflictError("account", "exists")))
	assert.True(t, ShouldLogError(NewNetworkError("login", nil)))
	assert.True(t, ShouldLogError(NewDatabaseError("open", nil)))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
