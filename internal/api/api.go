// Package api combines the backend client with the local stores into one
// call per user action.
package api

import (
	"context"

	"taskr/internal/client"
	"taskr/internal/domain"
	"taskr/internal/session"
	"taskr/internal/theme"
)

// TaskClient is the subset of the backend REST API the business layer uses.
type TaskClient interface {
	GetTasks(ctx context.Context, s domain.Session) ([]domain.Task, error)
	CreateTask(ctx context.Context, s domain.Session, text, due string) (*domain.Task, error)
	UpdateTask(ctx context.Context, s domain.Session, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, s domain.Session, id string) error

	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error)
	GetCurrentUser(ctx context.Context, s domain.Session) (*domain.User, error)
	SignOut(ctx context.Context, s domain.Session) error
}

// SessionStore keeps the session tokens between invocations.
type SessionStore interface {
	Set(ctx context.Context, id, hash string, ttlDays int) error
	Get(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}

// ThemeStore keeps the colour theme preference.
type ThemeStore interface {
	Get(ctx context.Context) (domain.Theme, error)
	Set(ctx context.Context, t domain.Theme) error
	Toggle(ctx context.Context) (domain.Theme, error)
	Reset(ctx context.Context) error
}

var (
	_ TaskClient   = (*client.Client)(nil)
	_ SessionStore = (*session.Store)(nil)
	_ ThemeStore   = (*theme.Store)(nil)
)
