package api

import (
	"context"
	"testing"

	"taskr/internal/domain"
	"taskr/internal/errors"
	"taskr/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		password       string
		setupMock      func(m *MockTaskClient)
		expectSession  bool
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "should store the session when credentials are accepted",
			email:    "  ada@example.com ",
			password: "password1",
			setupMock: func(m *MockTaskClient) {
				m.On("Login", mock.Anything, "ada@example.com", "password1").
					Return(&domain.AuthResult{User: testUser, Session: testSession}, nil)
			},
			expectSession: true,
		},
		{
			name:     "should reject an invalid email without calling the server",
			email:    "ada",
			password: "password1",
			errorAssertion: func(t *testing.T, err error) {
				var ve *validation.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, validation.MessageEmailInvalid, ve.GetUserFriendlyMessage())
			},
		},
		{
			name:     "should reject an incomplete form",
			email:    "ada@example.com",
			password: "   ",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, validation.IsValidationError(err))
				assert.Contains(t, err.Error(), validation.MessageFormIncomplete)
			},
		},
		{
			name:     "should pass through the server's wrong password error",
			email:    "ada@example.com",
			password: "password2",
			setupMock: func(m *MockTaskClient) {
				m.On("Login", mock.Anything, "ada@example.com", "password2").
					Return(nil, errors.NewAuthError("Password is incorrect."))
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAuth))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestBusinessAPI(t)
			if tt.setupMock != nil {
				tt.setupMock(h.client)
			}

			user, err := h.api.SignIn(context.Background(), tt.email, tt.password)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, h.storedSession(t))
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUser, *user)
			}
			if tt.expectSession {
				assert.Equal(t, &testSession, h.storedSession(t))
			}
			h.client.AssertExpectations(t)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("should trim the name and store the session", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.client.On("Register", mock.Anything, "Grace", "grace@example.com", "password1").
			Return(&domain.AuthResult{User: domain.User{ID: "u2", Name: "Grace"}, Session: testSession}, nil)

		user, err := h.api.Register(context.Background(), "  Grace ", "grace@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.Name)
		assert.Equal(t, &testSession, h.storedSession(t))
		h.client.AssertExpectations(t)
	})

	t.Run("should reject a long name", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		_, err := h.api.Register(context.Background(), "abcdefghijklmnopqrstuvwxyzabcde", "grace@example.com", "password1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), validation.MessageNameTooLong)
		h.client.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report a duplicate account", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.client.On("Register", mock.Anything, "Grace", "grace@example.com", "password1").
			Return(nil, errors.NewConflictError("account", "exists"))

		_, err := h.api.Register(context.Background(), "Grace", "grace@example.com", "password1")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
		assert.Nil(t, h.storedSession(t))
	})
}

func TestSignOut(t *testing.T) {
	t.Run("should clear the session even when the server call fails", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("SignOut", mock.Anything, testSession).Return(errors.NewNetworkError("sign out", assert.AnError))

		require.NoError(t, h.api.SignOut(context.Background()))
		assert.Nil(t, h.storedSession(t))
	})

	t.Run("should do nothing when signed out", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		require.NoError(t, h.api.SignOut(context.Background()))
		h.client.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("should return nil when no session is stored", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		profile, err := h.api.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("should greet the signed in user", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetCurrentUser", mock.Anything, testSession).Return(&testUser, nil)

		profile, err := h.api.CurrentUser(context.Background())
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Good Morning, Ada", profile.Greeting)
		assert.Equal(t, "A", profile.Initial)
	})

	t.Run("should forget a session the server no longer knows", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetCurrentUser", mock.Anything, testSession).Return(nil, nil)

		profile, err := h.api.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Nil(t, profile)
		assert.Nil(t, h.storedSession(t))
	})
}

// Creation order: A (not overdue), B (overdue), C (completed).
var (
	taskA = domain.Task{ID: "aaaa1111", Text: "A", DueDate: "20/03/2024"}
	taskB = domain.Task{ID: "bbbb2222", Text: "B", DueDate: "01/03/2024"}
	taskC = domain.Task{ID: "cccc3333", Text: "C", Completed: true}
)

func TestListTasks(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.Filter
		expected []domain.Task
	}{
		{"uncompleted shows overdue first then newest", domain.FilterUncompleted, []domain.Task{taskB, taskA}},
		{"completed shows newest first", domain.FilterCompleted, []domain.Task{taskC}},
		{"all shows completed block then uncompleted block", domain.FilterAll, []domain.Task{taskC, taskB, taskA}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestBusinessAPI(t)
			h.signIn(t)
			h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{taskA, taskB, taskC}, nil)

			list, err := h.api.ListTasks(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, list.Tasks)
			assert.Equal(t, tt.filter, list.Filter)
			assert.Equal(t, map[domain.Filter]int{
				domain.FilterAll:         3,
				domain.FilterUncompleted: 2,
				domain.FilterCompleted:   1,
			}, list.Counts)
			assert.Equal(t, 1, list.Overdue)
			assert.Equal(t, testNow, list.Now)
		})
	}
}

func TestListTasks_RequiresSession(t *testing.T) {
	h := setupTestBusinessAPI(t)

	_, err := h.api.ListTasks(context.Background(), domain.FilterAll)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAuth))
	assert.Equal(t, "NOT_SIGNED_IN", errors.GetErrorCode(err))
	assert.Equal(t, MessageNotSignedIn, errors.GetUserMessage(err))
	h.client.AssertNotCalled(t, "GetTasks", mock.Anything, mock.Anything)
}

func TestListTasks_RejectedSessionIsForgotten(t *testing.T) {
	h := setupTestBusinessAPI(t)
	h.signIn(t)
	h.client.On("GetTasks", mock.Anything, testSession).Return(nil, errors.NewAuthError("Session expired."))

	_, err := h.api.ListTasks(context.Background(), domain.FilterAll)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAuth))
	assert.Nil(t, h.storedSession(t))
}

func TestGetTask(t *testing.T) {
	tasks := []domain.Task{
		{ID: "65f1aa01", Text: "first"},
		{ID: "65f1aa02", Text: "second"},
		{ID: "65f1", Text: "short"},
		{ID: "9b2c7700", Text: "third"},
	}

	tests := []struct {
		name         string
		ref          string
		expectedText string
		errorType    errors.ErrorType
	}{
		{"exact ID wins over prefix matches", "65f1", "short", 0},
		{"full ID resolves", "65f1aa02", "second", 0},
		{"unique prefix resolves", "9b", "third", 0},
		{"ambiguous prefix is rejected", "65f1aa0", "", errors.ErrorTypeInvalidInput},
		{"unknown ID is not found", "ffff", "", errors.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestBusinessAPI(t)
			h.signIn(t)
			h.client.On("GetTasks", mock.Anything, testSession).Return(tasks, nil)

			task, err := h.api.GetTask(context.Background(), tt.ref)
			if tt.errorType != 0 {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, tt.errorType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, task.Text)
		})
	}

	t.Run("blank reference is a validation error", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		_, err := h.api.GetTask(context.Background(), "  ")
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestAddTask(t *testing.T) {
	t.Run("should trim and create the task", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		created := &domain.Task{ID: "new1", Text: "Buy milk", DueDate: "05/03/2024"}
		h.client.On("CreateTask", mock.Anything, testSession, "Buy milk", "05/03/2024").Return(created, nil)

		task, err := h.api.AddTask(context.Background(), "  Buy milk ", " 05/03/2024")
		require.NoError(t, err)
		assert.Equal(t, created, task)
		h.client.AssertExpectations(t)
	})

	t.Run("should allow a task without due date", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("CreateTask", mock.Anything, testSession, "Call mum", "").
			Return(&domain.Task{ID: "new2", Text: "Call mum"}, nil)

		_, err := h.api.AddTask(context.Background(), "Call mum", "")
		require.NoError(t, err)
	})

	invalid := []struct {
		name string
		text string
		due  string
	}{
		{"blank text", "   ", ""},
		{"malformed due date", "Buy milk", "5/3/2024"},
		{"impossible due date", "Buy milk", "31/02/2024"},
	}
	for _, tt := range invalid {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			h := setupTestBusinessAPI(t)
			h.signIn(t)
			_, err := h.api.AddTask(context.Background(), tt.text, tt.due)
			assert.True(t, validation.IsValidationError(err))
			h.client.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEditTask(t *testing.T) {
	open := domain.Task{ID: "open0001", Text: "Buy milk", DueDate: "05/03/2024"}
	done := domain.Task{ID: "done0001", Text: "Call mum", Completed: true}

	t.Run("should send the trimmed update", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{open, done}, nil)
		text := "Buy oat milk"
		updated := open
		updated.Text = text
		h.client.On("UpdateTask", mock.Anything, testSession, "open0001", domain.TaskUpdate{Text: &text}).Return(&updated, nil)

		padded := "  Buy oat milk "
		task, err := h.api.EditTask(context.Background(), "open", domain.TaskUpdate{Text: &padded})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", task.Text)
		h.client.AssertExpectations(t)
	})

	t.Run("should refuse to edit a completed task", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{open, done}, nil)

		text := "Call dad"
		_, err := h.api.EditTask(context.Background(), "done0001", domain.TaskUpdate{Text: &text})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "completed tasks cannot be edited")
		h.client.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should apply the update locally when the server returns no body", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{open, done}, nil)
		h.client.On("UpdateTask", mock.Anything, testSession, "done0001", mock.Anything).Return(nil, nil)

		task, err := h.api.SetCompleted(context.Background(), "done", false)
		require.NoError(t, err)
		assert.False(t, task.Completed)
		assert.Equal(t, "Call mum", task.Text)
	})
}

func TestSetDueDate(t *testing.T) {
	open := domain.Task{ID: "open0001", Text: "Buy milk", DueDate: "05/03/2024"}

	t.Run("should clear the due date", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{open}, nil)
		cleared := ""
		h.client.On("UpdateTask", mock.Anything, testSession, "open0001", domain.TaskUpdate{DueDate: &cleared}).
			Return(&domain.Task{ID: "open0001", Text: "Buy milk"}, nil)

		task, err := h.api.SetDueDate(context.Background(), "open0001", "")
		require.NoError(t, err)
		assert.False(t, task.HasDueDate())
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		h := setupTestBusinessAPI(t)
		h.signIn(t)
		h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{open}, nil)

		_, err := h.api.SetDueDate(context.Background(), "open0001", "2024-03-05")
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestDeleteTask(t *testing.T) {
	h := setupTestBusinessAPI(t)
	h.signIn(t)
	h.client.On("GetTasks", mock.Anything, testSession).Return([]domain.Task{taskA, taskB}, nil)
	h.client.On("DeleteTask", mock.Anything, testSession, "bbbb2222").Return(nil)

	deleted, err := h.api.DeleteTask(context.Background(), "bbbb")
	require.NoError(t, err)
	assert.Equal(t, taskB, *deleted)
	h.client.AssertExpectations(t)
}

func TestThemeOperations(t *testing.T) {
	h := setupTestBusinessAPI(t)
	ctx := context.Background()

	got, err := h.api.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, got, "falls back to the system theme")

	next, err := h.api.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, next)

	require.NoError(t, h.api.SetTheme(ctx, domain.ThemeLight))
	got, err = h.api.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, got)

	require.NoError(t, h.api.SetTheme(ctx, domain.ThemeDark))
	reset, err := h.api.ResetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, reset)
}
