package cli

import (
	"context"
	"testing"

	"taskr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShowCommand_Execute(t *testing.T) {
	app, m, out := setupTestApp(t, "")
	task := &domain.Task{
		ID:        "65f1c2a9e4b0",
		Text:      "Buy milk",
		DueDate:   "14/03/2024",
		CreatedAt: "2024-03-12T09:30:00Z",
	}
	m.On("GetTask", mock.Anything, "65f1").Return(task, nil)

	require.NoError(t, NewShowCommand(app).Execute(context.Background(), []string{"65f1"}))

	output := out.String()
	assert.Contains(t, output, "Buy milk\n\n")
	assert.Contains(t, output, "ID:       65f1c2a9e4b0\n")
	assert.Contains(t, output, "Status:   Overdue\n")
	assert.Contains(t, output, "Due date: 14 Mar\n")
	assert.Contains(t, output, "Created:")
	assert.NotContains(t, output, "Updated:")
}

func TestShowCommand_Usage(t *testing.T) {
	app, _, _ := setupTestApp(t, "")
	err := NewShowCommand(app).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: taskr show")
}
