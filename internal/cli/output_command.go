package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"taskr/internal/api"
	"taskr/internal/domain"
	"taskr/internal/errors"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app    *App
	format string
	filter domain.Filter
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, format: "csv", filter: domain.FilterAll}
}

// Execute writes the tasks of the selected view in a machine-readable format.
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	switch c.format {
	case "csv", "json":
	default:
		return errors.NewInvalidInputError("format", c.format, "unsupported format (want csv or json)")
	}

	list, err := c.app.businessAPI.ListTasks(ctx, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	if c.format == "json" {
		return c.outputJSON(list)
	}
	return c.outputCSV(list)
}

// outputCSV writes one row per task in display order.
func (c *OutputCommand) outputCSV(list *api.TaskList) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"ID", "Text", "Due Date", "Completed", "Overdue", "Created At", "Updated At"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range list.Tasks {
		row := []string{
			task.ID,
			task.Text,
			task.DueDate,
			strconv.FormatBool(task.Completed),
			strconv.FormatBool(!task.Completed && task.IsOverdue(list.Now)),
			task.CreatedAt,
			task.UpdatedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *OutputCommand) outputJSON(list *api.TaskList) error {
	tasks := list.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	encoder := json.NewEncoder(c.app.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tasks); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
