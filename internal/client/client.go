// Package client talks to the Taskr REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskr/internal/domain"
	"taskr/internal/logging"

	"github.com/google/uuid"
)

const (
	// SessionIDHeader and SessionHashHeader carry the device session.
	SessionIDHeader   = "sessionId"
	SessionHashHeader = "sessionHash"
	// RequestIDHeader correlates a request with backend logs.
	RequestIDHeader = "X-Request-ID"

	tasksPath    = "/api/v1/tasks/"
	loginPath    = "/api/v1/auth/login"
	registerPath = "/api/v1/auth/register"
	logoutPath   = "/api/v1/auth/logout"
	mePath       = "/api/v1/users/me"

	maxErrorBody = 4 << 10
)

// Client calls the Taskr REST API.
type Client struct {
	baseURL      string
	http         *http.Client
	newRequestID func() string
}

// New creates a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		newRequestID: uuid.NewString,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTasks returns the signed-in user's tasks in creation order.
func (c *Client) GetTasks(ctx context.Context, s domain.Session) ([]domain.Task, error) {
	resp, err := c.do(ctx, "get tasks", http.MethodGet, tasksPath, &s, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("get tasks", resp, nil); err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if err := decodeBody(resp, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

type createTaskRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate"`
}

// CreateTask creates a task and returns it as stored by the server.
func (c *Client) CreateTask(ctx context.Context, s domain.Session, text, due string) (*domain.Task, error) {
	resp, err := c.do(ctx, "create task", http.MethodPost, tasksPath, &s, createTaskRequest{Text: text, DueDate: due})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("create task", resp, nil); err != nil {
		return nil, err
	}
	return decodeTask(resp)
}

// UpdateTask applies a partial update. The returned task is nil when the
// server acknowledges without a body.
func (c *Client) UpdateTask(ctx context.Context, s domain.Session, id string, update domain.TaskUpdate) (*domain.Task, error) {
	resp, err := c.do(ctx, "update task", http.MethodPatch, tasksPath+id, &s, update)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("update task", resp, nil); err != nil {
		return nil, err
	}
	return decodeTask(resp)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, s domain.Session, id string) error {
	resp, err := c.do(ctx, "delete task", http.MethodDelete, tasksPath+id, &s, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus("delete task", resp, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	resp, err := c.do(ctx, "login", http.MethodPost, loginPath, nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("login", resp, loginErrors); err != nil {
		return nil, err
	}
	return decodeAuth(resp)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	body := registerRequest{Name: strings.TrimSpace(name), Email: email, Password: password}
	resp, err := c.do(ctx, "register", http.MethodPost, registerPath, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("register", resp, registerErrors); err != nil {
		return nil, err
	}
	return decodeAuth(resp)
}

// GetCurrentUser returns the account behind s, or nil when the backend no
// longer recognises the session.
func (c *Client) GetCurrentUser(ctx context.Context, s domain.Session) (*domain.User, error) {
	resp, err := c.do(ctx, "get current user", http.MethodGet, mePath, &s, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil
	}
	if err := checkStatus("get current user", resp, nil); err != nil {
		return nil, err
	}

	var envelope struct {
		User *domain.User `json:"user"`
	}
	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, decodeError("get current user", err)
	}
	return &user, nil
}

// SignOut invalidates the session on the server.
func (c *Client) SignOut(ctx context.Context, s domain.Session) error {
	resp, err := c.do(ctx, "sign out", http.MethodPost, logoutPath, &s, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus("sign out", resp, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, s *domain.Session, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := c.newRequestID()
	req.Header.Set(RequestIDHeader, requestID)
	if s != nil {
		req.Header.Set(SessionIDHeader, s.SessionID)
		req.Header.Set(SessionHashHeader, s.SessionHash)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debugf("%s %s failed after %s [%s]: %v\n", method, path, time.Since(start), requestID, err)
		return nil, transportError(ctx, op, err)
	}
	logging.Debugf("%s %s -> %d in %s [%s]\n", method, path, resp.StatusCode, time.Since(start), requestID)
	return resp, nil
}

func decodeBody(resp *http.Response, dest any) error {
	raw, err := readBody(resp)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return decodeError(resp.Request.Method+" "+resp.Request.URL.Path, err)
	}
	return nil
}

// decodeTask accepts either a bare task or {"task": {...}}.
func decodeTask(resp *http.Response) (*domain.Task, error) {
	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var envelope struct {
		Task *domain.Task `json:"task"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Task != nil {
		return envelope.Task, nil
	}

	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, decodeError("decode task", err)
	}
	if task.ID == "" {
		return nil, nil
	}
	return &task, nil
}

func decodeAuth(resp *http.Response) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := decodeBody(resp, &result); err != nil {
		return nil, err
	}
	if !result.Session.IsComplete() {
		return nil, decodeError("decode session", fmt.Errorf("response did not include a complete session"))
	}
	return &result, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(resp.Request.Context(), "read response", err)
	}
	return raw, nil
}
