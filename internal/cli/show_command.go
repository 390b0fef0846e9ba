package cli

import (
	"context"

	"taskr/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the detail view of one task.
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: taskr show <id>")
	}

	task, err := c.app.businessAPI.GetTask(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}
	c.app.printf("%s", c.app.renderer(ctx).TaskDetail(*task, timeNow()))
	return nil
}
