package cli

import (
	"context"
	"strings"

	"taskr/internal/domain"
	"taskr/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app    *App
	due    string
	dueSet bool
	noDue  bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute changes the text and/or due date of an uncompleted task.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: taskr edit <id> [new text] [--due DD/MM/YYYY | --no-due]")
	}

	var update domain.TaskUpdate
	if len(args) > 1 {
		text := strings.Join(args[1:], " ")
		update.Text = &text
	}
	switch {
	case c.noDue:
		cleared := ""
		update.DueDate = &cleared
	case c.dueSet:
		due := resolveDueDate(c.due, timeNow())
		update.DueDate = &due
	}

	task, err := c.app.businessAPI.EditTask(ctx, args[0], update)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}
	c.app.println(describe("Updated", *task, timeNow()))
	return nil
}

// CompleteCommand handles the done and undone commands
type CompleteCommand struct {
	app       *App
	completed bool
}

// NewCompleteCommand creates a handler that marks tasks completed, or
// uncompleted when completed is false.
func NewCompleteCommand(app *App, completed bool) *CompleteCommand {
	return &CompleteCommand{app: app, completed: completed}
}

// Execute updates every task named in args, stopping at the first failure.
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", c.name(), "usage: taskr "+c.name()+" <id>...")
	}

	verb, op := "Completed", "complete task"
	if !c.completed {
		verb, op = "Reopened", "reopen task"
	}

	for _, ref := range args {
		task, err := c.app.businessAPI.SetCompleted(ctx, ref, c.completed)
		if err != nil {
			return c.app.errorHandler.Handle(op, err)
		}
		c.app.println(describe(verb, *task, timeNow()))
	}
	return nil
}

func (c *CompleteCommand) name() string {
	if c.completed {
		return "done"
	}
	return "undone"
}

// DueCommand handles the due command
type DueCommand struct {
	app *App
}

// NewDueCommand creates a new due command handler
func NewDueCommand(app *App) *DueCommand {
	return &DueCommand{app: app}
}

// Execute sets or clears ("none") the due date of a task.
func (c *DueCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "due", "usage: taskr due <id> <DD/MM/YYYY|today|tomorrow|none>")
	}

	task, err := c.app.businessAPI.SetDueDate(ctx, args[0], resolveDueDate(args[1], timeNow()))
	if err != nil {
		return c.app.errorHandler.Handle("set due date", err)
	}

	if task.HasDueDate() {
		c.app.printf("Due date of %s set to %s\n", task.ShortID(), displayDate(task.DueDate, timeNow()))
	} else {
		c.app.printf("Due date of %s cleared\n", task.ShortID())
	}
	return nil
}
