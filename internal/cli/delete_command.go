package cli

import (
	"context"
	"fmt"

	"taskr/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute asks for confirmation unless --yes was given, then deletes.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: taskr delete <id> [--yes]")
	}

	task, err := c.app.businessAPI.GetTask(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if !c.yes {
		ok, err := c.app.prompter.Confirm(fmt.Sprintf("Delete %q?", task.Text))
		if err != nil {
			return err
		}
		if !ok {
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	deleted, err := c.app.businessAPI.DeleteTask(ctx, task.ID)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}
	c.app.println(describe("Deleted", *deleted, timeNow()))
	return nil
}
