package api

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"taskr/internal/domain"
	"taskr/internal/repository/sqlite"
	"taskr/internal/session"
	"taskr/internal/theme"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskClient is a mock implementation of TaskClient for testing
type MockTaskClient struct {
	mock.Mock
}

func (m *MockTaskClient) GetTasks(ctx context.Context, s domain.Session) ([]domain.Task, error) {
	args := m.Called(ctx, s)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) CreateTask(ctx context.Context, s domain.Session, text, due string) (*domain.Task, error) {
	args := m.Called(ctx, s, text, due)
	if task := args.Get(0); task != nil {
		return task.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) UpdateTask(ctx context.Context, s domain.Session, id string, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, s, id, update)
	if task := args.Get(0); task != nil {
		return task.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) DeleteTask(ctx context.Context, s domain.Session, id string) error {
	args := m.Called(ctx, s, id)
	return args.Error(0)
}

func (m *MockTaskClient) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if result := args.Get(0); result != nil {
		return result.(*domain.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	if result := args.Get(0); result != nil {
		return result.(*domain.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) GetCurrentUser(ctx context.Context, s domain.Session) (*domain.User, error) {
	args := m.Called(ctx, s)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) SignOut(ctx context.Context, s domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

var (
	// 15 March 2024, 09:30 local time.
	testNow     = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)
	testSession = domain.Session{SessionID: "sid-1", SessionHash: "hash-1"}
	testUser    = domain.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
)

type testHarness struct {
	api      BusinessAPI
	client   *MockTaskClient
	sessions *session.Store
	themes   *theme.Store
}

// setupTestBusinessAPI wires the API to a mocked backend and real stores on a
// temporary SQLite file.
func setupTestBusinessAPI(t *testing.T) *testHarness {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "taskr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := func() time.Time { return testNow }
	h := &testHarness{
		client:   new(MockTaskClient),
		sessions: session.NewStore(repo, session.DefaultTTLDays).WithClock(clock),
		themes:   theme.NewStore(repo).WithSystemSignal(func() bool { return false }),
	}
	h.api = NewBusinessAPI(h.client, h.sessions, h.themes, WithClock(clock))
	return h
}

// signIn stores testSession as if a login had succeeded.
func (h *testHarness) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, h.sessions.Set(context.Background(), testSession.SessionID, testSession.SessionHash, 0))
}

func (h *testHarness) storedSession(t *testing.T) *domain.Session {
	t.Helper()
	s, err := h.sessions.Get(context.Background())
	require.NoError(t, err)
	return s
}
