package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskr/internal/dates"
	"taskr/internal/domain"
	"taskr/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
	due string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task from the joined arguments.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: taskr add \"your task here\" [--due DD/MM/YYYY]")
	}
	text := strings.Join(args, " ")

	task, err := c.app.businessAPI.AddTask(ctx, text, resolveDueDate(c.due, timeNow()))
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	c.app.println(describe("Added", *task, timeNow()))
	return nil
}

// resolveDueDate expands the shortcuts accepted by --due. Anything else is
// passed through for validation.
func resolveDueDate(arg string, now time.Time) string {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "none":
		return dates.NoDueDate
	case "today":
		return dates.Format(now)
	case "tomorrow":
		return dates.Format(now.AddDate(0, 0, 1))
	}
	return strings.TrimSpace(arg)
}

// describe renders a one-line confirmation such as
// "Added 65f1c2a9: Buy milk (due 5 Mar)".
func describe(verb string, task domain.Task, now time.Time) string {
	line := fmt.Sprintf("%s %s: %s", verb, task.ShortID(), task.Text)
	if task.HasDueDate() {
		line += fmt.Sprintf(" (due %s)", displayDate(task.DueDate, now))
	}
	return line
}
