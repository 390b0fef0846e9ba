package cli

import (
	"context"

	"taskr/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	filter domain.Filter
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, filter: domain.FilterUncompleted}
}

// Execute prints the tasks for the selected filter. A positional argument
// takes precedence over --filter.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter := c.filter
	if len(args) > 0 {
		if err := filter.Set(args[0]); err != nil {
			return err
		}
	}

	list, err := c.app.businessAPI.ListTasks(ctx, filter)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	c.app.printf("%s", c.app.renderer(ctx).TaskList(list))
	return nil
}
