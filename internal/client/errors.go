package client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"taskr/internal/errors"
)

const (
	MessageNoAccount       = "An account with this email does not exist. Please create an account with this email or sign in with another email."
	MessageWrongPassword   = "Password is incorrect."
	MessageAccountExists   = "An account with this email already exists. Please sign in using this email or create an account with another email."
	MessageEmailRejected   = "Email is invalid."
	MessageSessionRejected = "Your session has expired. Please sign in again."
	MessageServerError     = "The Taskr server could not complete the request."
)

// statusOverride maps a status code to an error for one endpoint.
type statusOverride func(message string) *errors.AppError

var loginErrors = map[int]statusOverride{
	http.StatusNotFound: func(msg string) *errors.AppError {
		return &errors.AppError{Type: errors.ErrorTypeNotFound, Code: "ACCOUNT_NOT_FOUND", Message: orDefault(msg, MessageNoAccount)}
	},
	http.StatusUnauthorized: func(msg string) *errors.AppError {
		return errors.NewAuthError(orDefault(msg, MessageWrongPassword))
	},
}

var registerErrors = map[int]statusOverride{
	http.StatusForbidden: func(msg string) *errors.AppError {
		return errors.NewConflictError("account", orDefault(msg, MessageAccountExists))
	},
	http.StatusUnauthorized: func(msg string) *errors.AppError {
		return errors.NewConflictError("account", orDefault(msg, MessageAccountExists))
	},
	http.StatusNotAcceptable: func(msg string) *errors.AppError {
		return &errors.AppError{Type: errors.ErrorTypeInvalidInput, Code: "INVALID_EMAIL", Message: orDefault(msg, MessageEmailRejected)}
	},
}

// checkStatus returns nil for 2xx responses and a typed AppError otherwise.
// overrides take precedence over the generic mapping.
func checkStatus(op string, resp *http.Response, overrides map[int]statusOverride) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := errorMessage(resp.Body)
	if override, ok := overrides[resp.StatusCode]; ok {
		return override(message).WithContext("status", resp.StatusCode)
	}

	var appErr *errors.AppError
	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotAcceptable:
		appErr = &errors.AppError{Type: errors.ErrorTypeInvalidInput, Code: "INVALID_INPUT", Message: orDefault(message, "The request was rejected as invalid.")}
	case resp.StatusCode == http.StatusUnauthorized:
		appErr = errors.NewAuthError(orDefault(message, MessageSessionRejected))
	case resp.StatusCode == http.StatusForbidden:
		appErr = &errors.AppError{Type: errors.ErrorTypePermission, Code: "PERMISSION_DENIED", Message: orDefault(message, "You do not have access to this item.")}
	case resp.StatusCode == http.StatusNotFound:
		appErr = &errors.AppError{Type: errors.ErrorTypeNotFound, Code: "NOT_FOUND", Message: orDefault(message, "The requested item was not found.")}
	case resp.StatusCode == http.StatusConflict:
		appErr = errors.NewConflictError(op, orDefault(message, "The request conflicts with existing data."))
	default:
		appErr = errors.NewNetworkError(op, fmt.Errorf("%s: %s", resp.Status, orDefault(message, MessageServerError)))
	}
	return appErr.WithContext("status", resp.StatusCode).WithContext("operation", op)
}

// errorMessage extracts a human message from a plain text, JSON string or
// {"message": ...} error body.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}

	switch text[0] {
	case '"':
		var s string
		if json.Unmarshal([]byte(text), &s) == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal([]byte(text), &obj) == nil {
			return strings.TrimSpace(orDefault(obj.Message, obj.Error))
		}
		return ""
	case '<':
		// HTML error pages are not useful to show.
		return ""
	}
	return text
}

func transportError(ctx context.Context, op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError(op, err.Error())
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError(op, err.Error())
	}
	return errors.NewNetworkError(op, err)
}

func decodeError(op string, err error) error {
	return errors.NewNetworkError(op, fmt.Errorf("unexpected response: %w", err))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
