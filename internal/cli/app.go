package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"taskr/internal/api"
	"taskr/internal/config"
	"taskr/internal/domain"
	"taskr/internal/logging"
	"taskr/internal/theme"

	"golang.org/x/term"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what every command handler needs.
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	in           io.Reader
	out          io.Writer
	errOut       io.Writer
	prompter     *Prompter
	errorHandler *ErrorHandler
}

// NewApp creates a CLI application bound to the process's standard streams.
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI:  businessAPI,
		config:       cfg,
		errorHandler: NewErrorHandler(),
	}
	return app.WithIO(os.Stdin, os.Stdout, os.Stderr)
}

// WithIO replaces the input and output streams.
func (a *App) WithIO(in io.Reader, out, errOut io.Writer) *App {
	a.in = in
	a.out = out
	a.errOut = errOut
	a.prompter = NewPrompter(in, errOut)
	return a
}

// styles picks the palette: plain when output is not a terminal, otherwise
// the configured theme or the stored preference.
func (a *App) styles(ctx context.Context) theme.Styles {
	if !isTerminal(a.out) || os.Getenv("NO_COLOR") != "" {
		return theme.Plain()
	}

	if forced, ok := domain.ParseTheme(a.config.Display.Theme); ok {
		return theme.NewStyles(forced)
	}
	t, err := a.businessAPI.Theme(ctx)
	if err != nil {
		logging.Debugf("falling back to light theme: %v\n", err)
		t = domain.ThemeLight
	}
	return theme.NewStyles(t)
}

func (a *App) renderer(ctx context.Context) *Renderer {
	return NewRenderer(a.styles(ctx), a.config.Display.Width)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// verbosef writes to the error stream when verbose output is enabled.
func (a *App) verbosef(format string, args ...interface{}) {
	if a.config.Application.Verbose {
		fmt.Fprintf(a.errOut, format, args...)
	}
}

func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
