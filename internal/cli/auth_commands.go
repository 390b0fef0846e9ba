package cli

import (
	"context"

	"taskr/internal/api"
	"taskr/internal/domain"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app   *App
	email string
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app}
}

// Execute prompts for any missing credentials and signs in.
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	email := c.email
	if email == "" {
		var err error
		if email, err = c.app.prompter.Ask("Email: "); err != nil {
			return err
		}
	}
	password, err := c.app.prompter.AskPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := c.app.businessAPI.SignIn(ctx, email, password)
	if err != nil {
		return c.app.errorHandler.Handle("sign in", err)
	}

	c.app.println(c.app.renderer(ctx).styles.Success.Render("Signed in as " + user.Email + "."))
	c.app.println(domain.WelcomeMessage(user.Name, timeNow()))
	return nil
}

// RegisterCommand handles the register command
type RegisterCommand struct {
	app   *App
	name  string
	email string
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app}
}

// Execute prompts for any missing fields and creates the account.
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	name, email := c.name, c.email
	var err error
	if name == "" {
		if name, err = c.app.prompter.Ask("Name: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = c.app.prompter.Ask("Email: "); err != nil {
			return err
		}
	}
	password, err := c.app.prompter.AskPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := c.app.businessAPI.Register(ctx, name, email, password)
	if err != nil {
		return c.app.errorHandler.Handle("create account", err)
	}

	c.app.println(c.app.renderer(ctx).styles.Success.Render("Account created for " + user.Email + "."))
	c.app.println(domain.WelcomeMessage(user.Name, timeNow()))
	return nil
}

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute signs out and forgets the stored session.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.businessAPI.SignOut(ctx); err != nil {
		return c.app.errorHandler.Handle("sign out", err)
	}
	c.app.println("Signed out.")
	return nil
}

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute shows the greeting for the signed-in user.
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	profile, err := c.app.businessAPI.CurrentUser(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("load profile", err)
	}
	if profile == nil {
		c.app.println("Not signed in.")
		return nil
	}
	c.printProfile(ctx, profile)
	return nil
}

func (c *WhoamiCommand) printProfile(ctx context.Context, profile *api.Profile) {
	r := c.app.renderer(ctx)
	c.app.println(r.Welcome(profile))
	c.app.println(r.styles.Muted.Render(profile.User.Email))
}
