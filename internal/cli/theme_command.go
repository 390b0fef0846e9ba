package cli

import (
	"context"
	"strings"

	"taskr/internal/domain"
	"taskr/internal/errors"
)

// ThemeCommand handles the theme command
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute shows the theme, or changes it with toggle, light, dark or reset.
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		t, err := c.app.businessAPI.Theme(ctx)
		if err != nil {
			return c.app.errorHandler.Handle("read theme", err)
		}
		c.app.printf("Theme: %s\n", t)
		return nil
	}

	action := strings.ToLower(strings.TrimSpace(args[0]))
	switch action {
	case "toggle":
		t, err := c.app.businessAPI.ToggleTheme(ctx)
		if err != nil {
			return c.app.errorHandler.Handle("toggle theme", err)
		}
		c.app.printf("Theme set to %s\n", t)
	case "reset":
		t, err := c.app.businessAPI.ResetTheme(ctx)
		if err != nil {
			return c.app.errorHandler.Handle("reset theme", err)
		}
		c.app.printf("Theme reset; following the terminal (%s)\n", t)
	default:
		t, ok := domain.ParseTheme(action)
		if !ok {
			return errors.NewInvalidInputError("theme", args[0], "expected toggle, light, dark or reset")
		}
		if err := c.app.businessAPI.SetTheme(ctx, t); err != nil {
			return c.app.errorHandler.Handle("set theme", err)
		}
		c.app.printf("Theme set to %s\n", t)
	}
	return nil
}
