package cli

import (
	"context"
	"fmt"
	"time"

	"taskr/internal/api"
	"taskr/internal/config"
	"taskr/internal/domain"

	"github.com/spf13/cobra"
)

// Command is implemented by every command handler.
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// APIFactory builds the business API once flag overrides are applied. The
// returned func releases whatever the API holds open.
type APIFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	config  *config.Config
	factory APIFactory
	closeFn func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "taskr",
		Short: "A command-line client for Taskr to-do lists",
		Long: `Taskr keeps your to-do list on the Taskr server. Sign in once and the
session is remembered on this device for 90 days.

EXAMPLES:
  taskr register                         # Create an account
  taskr login -e ada@example.com         # Sign in
  taskr add "Buy milk" --due 05/03/2024  # Add a task with a due date
  taskr list                             # Uncompleted tasks, overdue first
  taskr list --filter all                # Every task
  taskr done 65f1c2a9                    # Complete a task by ID or ID prefix
  taskr theme toggle                     # Switch between light and dark

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env > config file > defaults

  The config file is ~/.config/taskr/config.toml, or the path in TASKR_CONFIG.

    TASKR_API_BASE_URL                   Server URL (default: http://localhost:8080)
    TASKR_API_TIMEOUT                    Request timeout (default: 10s)
    TASKR_SESSION_TTL_DAYS               Session lifetime in days (default: 90)
    TASKR_DB_DIR                         Local store directory (default: ~/.taskr)
    TASKR_DB_FILENAME                    Local store filename (default: taskr.db)
    TASKR_THEME                          Force light or dark
    TASKR_DISPLAY_WIDTH                  Line width (default: 72)
    TASKR_APP_TIMEOUT                    Command timeout (default: 60s)
    TASKR_APP_VERBOSE                    Verbose output (default: false)
    TASKR_DEBUG                          Print debug diagnostics to stderr

DUE DATES:
  Due dates are written DD/MM/YYYY. --due also accepts today, tomorrow and none.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.Close()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every
// command's context.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Close releases the resources of the business API, if one was built.
func (r *RootCommand) Close() error {
	if r.closeFn == nil {
		return nil
	}
	closeFn := r.closeFn
	r.closeFn = nil
	return closeFn()
}

func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.factory == nil {
		return fmt.Errorf("no API factory configured")
	}
	businessAPI, closeFn, err := r.factory(r.config)
	if err != nil {
		return err
	}
	r.closeFn = closeFn

	r.app = NewApp(businessAPI, r.config).WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	r.app.verbosef("Using server %s\n", r.config.API.BaseURL)
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// API configuration
	flags.String("api-url", "", "Taskr server URL (overrides TASKR_API_BASE_URL)")
	flags.Duration("api-timeout", 0, "Request timeout (overrides TASKR_API_TIMEOUT)")

	// Storage configuration
	flags.String("db-dir", "", "Local store directory (overrides TASKR_DB_DIR)")
	flags.String("db-filename", "", "Local store filename (overrides TASKR_DB_FILENAME)")

	// Display configuration
	flags.String("theme", "", "Force light or dark colours (overrides TASKR_THEME)")
	flags.Int("width", 0, "Line width (overrides TASKR_DISPLAY_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TASKR_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TASKR_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Login command
	var loginEmail string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Long:  "Sign in with your email and password. The password is read without echo.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewLoginCommand(r.app)
			handler.email = loginEmail
			return r.runInteractive(cmd, handler, args)
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")

	// Register command
	var registerName, registerEmail string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account and sign in.

Names are at most 30 characters and passwords at least 8.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewRegisterCommand(r.app)
			handler.name = registerName
			handler.email = registerEmail
			return r.runInteractive(cmd, handler, args)
		},
	}
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")

	// Logout command
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewLogoutCommand(r.app), args)
		},
	}

	// Whoami command
	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewWhoamiCommand(r.app), args)
		},
	}

	// List command
	listFilter := domain.FilterUncompleted
	listCmd := &cobra.Command{
		Use:   "list [all|uncompleted|completed]",
		Short: "List tasks",
		Long: `List tasks for one of the three views.

  uncompleted  Tasks still to do, overdue ones first (default)
  completed    Finished tasks, newest first
  all          Completed tasks, then uncompleted ones, newest first`,
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewListCommand(r.app)
			handler.filter = listFilter
			return r.run(cmd, handler, args)
		},
	}
	listCmd.Flags().VarP(&listFilter, "filter", "f", "View to show: all, uncompleted or completed")

	// Add command
	var addDue string
	addCmd := &cobra.Command{
		Use:   "add [task text]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewAddCommand(r.app)
			handler.due = addDue
			return r.run(cmd, handler, args)
		},
	}
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (DD/MM/YYYY, today, tomorrow)")

	// Edit command
	var editDue string
	var editNoDue bool
	editCmd := &cobra.Command{
		Use:   "edit <id> [new text]",
		Short: "Change the text or due date of a task",
		Long:  "Change the text or due date of a task. Completed tasks must be reopened with `taskr undone` first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewEditCommand(r.app)
			handler.due = editDue
			handler.dueSet = cmd.Flags().Changed("due")
			handler.noDue = editNoDue
			return r.run(cmd, handler, args)
		},
	}
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date (DD/MM/YYYY, today, tomorrow)")
	editCmd.Flags().BoolVar(&editNoDue, "no-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "no-due")

	// Done and undone commands
	doneCmd := &cobra.Command{
		Use:   "done <id>...",
		Short: "Mark tasks as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewCompleteCommand(r.app, true), args)
		},
	}
	undoneCmd := &cobra.Command{
		Use:   "undone <id>...",
		Short: "Mark tasks as not completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewCompleteCommand(r.app, false), args)
		},
	}

	// Due command
	dueCmd := &cobra.Command{
		Use:   "due <id> <DD/MM/YYYY|today|tomorrow|none>",
		Short: "Set or clear the due date of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewDueCommand(r.app), args)
		},
	}

	// Show command
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewShowCommand(r.app), args)
		},
	}

	// Delete command
	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task.

This operation cannot be undone. You will be asked to confirm unless --yes is given.`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewDeleteCommand(r.app)
			handler.yes = deleteYes
			return r.runInteractive(cmd, handler, args)
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	// Theme command
	themeCmd := &cobra.Command{
		Use:       "theme [toggle|light|dark|reset]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", "light", "dark", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewThemeCommand(r.app), args)
		},
	}

	// Output command
	outputFormat := "csv"
	outputFilter := domain.FilterAll
	outputCmd := &cobra.Command{
		Use:   "output",
		Short: "Export tasks as CSV or JSON",
		Long: `Export tasks in display order for the selected view.

Examples:
  taskr output > tasks.csv
  taskr output --format json --filter uncompleted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewOutputCommand(r.app)
			handler.format = outputFormat
			handler.filter = outputFilter
			return r.run(cmd, handler, args)
		},
	}
	outputCmd.Flags().StringVar(&outputFormat, "format", "csv", "Output format: csv or json")
	outputCmd.Flags().VarP(&outputFilter, "filter", "f", "View to export: all, uncompleted or completed")

	r.cmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		addCmd,
		editCmd,
		doneCmd,
		undoneCmd,
		dueCmd,
		showCmd,
		deleteCmd,
		themeCmd,
		outputCmd,
	)
}

func (r *RootCommand) run(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return handler.Execute(ctx, args)
}

// runInteractive gives commands that wait for the user a longer timeout.
func (r *RootCommand) runInteractive(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*2)
	defer cancel()
	return handler.Execute(ctx, args)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides.BaseURL = &v
	}
	if flags.Changed("api-timeout") {
		v, _ := flags.GetDuration("api-timeout")
		overrides.APITimeout = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("theme") {
		v, _ := flags.GetString("theme")
		overrides.Theme = &v
	}
	if flags.Changed("width") {
		v, _ := flags.GetInt("width")
		overrides.Width = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	r.config.ApplyOverrides(overrides)
	return r.config.Validate()
}
