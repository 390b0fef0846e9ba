package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"taskr/internal/api"
	"taskr/internal/config"
	"taskr/internal/domain"

	"github.com/stretchr/testify/mock"
)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	mock.Mock
}

var _ api.BusinessAPI = (*mockBusinessAPI)(nil)

func (m *mockBusinessAPI) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return userArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	return userArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockBusinessAPI) CurrentUser(ctx context.Context) (*api.Profile, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.(*api.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, filter domain.Filter) (*api.TaskList, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.(*api.TaskList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, ref string) (*domain.Task, error) {
	args := m.Called(ctx, ref)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) AddTask(ctx context.Context, text, due string) (*domain.Task, error) {
	args := m.Called(ctx, text, due)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) EditTask(ctx context.Context, ref string, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, ref, update)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) SetCompleted(ctx context.Context, ref string, completed bool) (*domain.Task, error) {
	args := m.Called(ctx, ref, completed)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) SetDueDate(ctx context.Context, ref string, due string) (*domain.Task, error) {
	args := m.Called(ctx, ref, due)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, ref string) (*domain.Task, error) {
	args := m.Called(ctx, ref)
	return taskArg(args, 0), args.Error(1)
}

func (m *mockBusinessAPI) Theme(ctx context.Context) (domain.Theme, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Theme), args.Error(1)
}

func (m *mockBusinessAPI) SetTheme(ctx context.Context, t domain.Theme) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockBusinessAPI) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Theme), args.Error(1)
}

func (m *mockBusinessAPI) ResetTheme(ctx context.Context) (domain.Theme, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Theme), args.Error(1)
}

func taskArg(args mock.Arguments, i int) *domain.Task {
	if t := args.Get(i); t != nil {
		return t.(*domain.Task)
	}
	return nil
}

func userArg(args mock.Arguments, i int) *domain.User {
	if u := args.Get(i); u != nil {
		return u.(*domain.User)
	}
	return nil
}

// 15 March 2024, 09:30.
var testNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)

// freezeTime pins timeNow for the duration of the test.
func freezeTime(t *testing.T) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = prev })
}

// setupTestApp returns an App whose output is captured and whose prompts
// read from input.
func setupTestApp(t *testing.T, input string) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	freezeTime(t)

	m := new(mockBusinessAPI)
	out := new(bytes.Buffer)
	app := NewApp(m, config.NewConfig()).WithIO(strings.NewReader(input), out, new(bytes.Buffer))
	t.Cleanup(func() { m.AssertExpectations(t) })
	return app, m, out
}
