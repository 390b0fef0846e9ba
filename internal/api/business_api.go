package api

import (
	"context"
	"strings"
	"time"

	"taskr/internal/domain"
	"taskr/internal/errors"
	"taskr/internal/logging"
	"taskr/internal/validation"
)

const (
	// MessageNotSignedIn is returned by every task operation without a stored session.
	MessageNotSignedIn = "You are not signed in. Run `taskr login` or `taskr register` first."
	// MessageAmbiguousTask is the reason given when an ID prefix matches several tasks.
	MessageAmbiguousTask = "more than one task matches; use more characters of the ID"
)

// TaskList is one rendered view of the task list.
type TaskList struct {
	Filter domain.Filter
	// Tasks is in display order for Filter.
	Tasks []domain.Task
	// Counts holds the number of tasks each filter would show.
	Counts map[domain.Filter]int
	// Overdue is the number of uncompleted tasks past their due date.
	Overdue int
	// Now is the instant the view was ordered against.
	Now time.Time
}

// Profile is the signed-in user together with the welcome line.
type Profile struct {
	User     domain.User
	Greeting string
	Initial  string
}

// BusinessAPI defines one operation per user action.
type BusinessAPI interface {
	// ========== Account ==========

	// SignIn validates the form, logs in and stores the session.
	SignIn(ctx context.Context, email, password string) (*domain.User, error)

	// Register validates the form, creates the account and stores the session.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// SignOut ends the session on the server and forgets it locally.
	SignOut(ctx context.Context) error

	// CurrentUser returns the signed-in profile, or nil when signed out.
	CurrentUser(ctx context.Context) (*Profile, error)

	// ========== Tasks ==========

	// ListTasks returns the tasks matching filter in display order.
	ListTasks(ctx context.Context, filter domain.Filter) (*TaskList, error)

	// GetTask finds a task by its ID or a unique ID prefix.
	GetTask(ctx context.Context, ref string) (*domain.Task, error)

	// AddTask creates a task. due is "" or DD/MM/YYYY.
	AddTask(ctx context.Context, text, due string) (*domain.Task, error)

	// EditTask applies a partial update. Completed tasks only accept reopening.
	EditTask(ctx context.Context, ref string, update domain.TaskUpdate) (*domain.Task, error)

	// SetCompleted marks a task as completed or uncompleted.
	SetCompleted(ctx context.Context, ref string, completed bool) (*domain.Task, error)

	// SetDueDate changes or clears ("") the due date.
	SetDueDate(ctx context.Context, ref string, due string) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, ref string) (*domain.Task, error)

	// ========== Preferences ==========

	// Theme returns the effective colour theme.
	Theme(ctx context.Context) (domain.Theme, error)

	// SetTheme persists an explicit theme.
	SetTheme(ctx context.Context, t domain.Theme) error

	// ToggleTheme flips the effective theme and persists the result.
	ToggleTheme(ctx context.Context) (domain.Theme, error)

	// ResetTheme forgets the saved theme and returns the system one.
	ResetTheme(ctx context.Context) (domain.Theme, error)
}

// Option configures the business API.
type Option func(*businessAPIImpl)

// WithClock replaces the time source used for ordering and greetings.
func WithClock(now func() time.Time) Option {
	return func(b *businessAPIImpl) {
		b.now = now
	}
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	client        TaskClient
	sessions      SessionStore
	themes        ThemeStore
	authValidator *validation.AuthValidator
	taskValidator *validation.TaskValidator
	now           func() time.Time
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(client TaskClient, sessions SessionStore, themes ThemeStore, opts ...Option) BusinessAPI {
	b := &businessAPIImpl{
		client:        client,
		sessions:      sessions,
		themes:        themes,
		authValidator: validation.NewAuthValidator(),
		taskValidator: validation.NewTaskValidator(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ========== Account ==========

func (b *businessAPIImpl) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := b.authValidator.ValidateSignIn(email, password); err != nil {
		return nil, err
	}

	result, err := b.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return b.startSession(ctx, result)
}

func (b *businessAPIImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := b.authValidator.ValidateRegistration(name, email, password); err != nil {
		return nil, err
	}

	result, err := b.client.Register(ctx, strings.TrimSpace(name), email, password)
	if err != nil {
		return nil, err
	}
	return b.startSession(ctx, result)
}

func (b *businessAPIImpl) startSession(ctx context.Context, result *domain.AuthResult) (*domain.User, error) {
	if err := b.sessions.Set(ctx, result.Session.SessionID, result.Session.SessionHash, 0); err != nil {
		return nil, err
	}
	user := result.User
	return &user, nil
}

func (b *businessAPIImpl) SignOut(ctx context.Context) error {
	s, err := b.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	// The local session is forgotten even when the server cannot be told.
	if err := b.client.SignOut(ctx, *s); err != nil {
		logging.Debugf("sign out on server failed: %v\n", err)
	}
	return b.sessions.Clear(ctx)
}

func (b *businessAPIImpl) CurrentUser(ctx context.Context) (*Profile, error) {
	s, err := b.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}

	user, err := b.client.GetCurrentUser(ctx, *s)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := b.sessions.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &Profile{
		User:     *user,
		Greeting: domain.WelcomeMessage(user.Name, b.now()),
		Initial:  user.Initial(),
	}, nil
}

// ========== Tasks ==========

func (b *businessAPIImpl) ListTasks(ctx context.Context, filter domain.Filter) (*TaskList, error) {
	s, err := b.session(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := b.client.GetTasks(ctx, s)
	if err != nil {
		return nil, b.dropRejectedSession(ctx, err)
	}

	now := b.now()
	list := &TaskList{
		Filter: filter,
		Tasks:  domain.Order(tasks, filter, now),
		Counts: make(map[domain.Filter]int, len(domain.Filters())),
		Now:    now,
	}
	for _, f := range domain.Filters() {
		for _, task := range tasks {
			if f.Matches(task) {
				list.Counts[f]++
			}
		}
	}
	for _, task := range tasks {
		if !task.Completed && task.IsOverdue(now) {
			list.Overdue++
		}
	}
	return list, nil
}

func (b *businessAPIImpl) GetTask(ctx context.Context, ref string) (*domain.Task, error) {
	s, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	return b.findTask(ctx, s, ref)
}

func (b *businessAPIImpl) AddTask(ctx context.Context, text, due string) (*domain.Task, error) {
	due = strings.TrimSpace(due)
	if err := b.taskValidator.ValidateTaskForCreation(text, due); err != nil {
		return nil, err
	}
	cleaned, err := b.taskValidator.GetValidTaskText(text)
	if err != nil {
		return nil, err
	}

	s, err := b.session(ctx)
	if err != nil {
		return nil, err
	}

	task, err := b.client.CreateTask(ctx, s, cleaned, due)
	if err != nil {
		return nil, b.dropRejectedSession(ctx, err)
	}
	return task, nil
}

func (b *businessAPIImpl) EditTask(ctx context.Context, ref string, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Text != nil {
		trimmed := strings.TrimSpace(*update.Text)
		update.Text = &trimmed
	}
	if update.DueDate != nil {
		trimmed := strings.TrimSpace(*update.DueDate)
		update.DueDate = &trimmed
	}

	s, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	current, err := b.findTask(ctx, s, ref)
	if err != nil {
		return nil, err
	}
	if err := b.taskValidator.ValidateTaskUpdate(*current, update); err != nil {
		return nil, err
	}

	updated, err := b.client.UpdateTask(ctx, s, current.ID, update)
	if err != nil {
		return nil, b.dropRejectedSession(ctx, err)
	}
	if updated == nil {
		applied := current.Apply(update)
		return &applied, nil
	}
	return updated, nil
}

func (b *businessAPIImpl) SetCompleted(ctx context.Context, ref string, completed bool) (*domain.Task, error) {
	return b.EditTask(ctx, ref, domain.TaskUpdate{Completed: &completed})
}

func (b *businessAPIImpl) SetDueDate(ctx context.Context, ref string, due string) (*domain.Task, error) {
	return b.EditTask(ctx, ref, domain.TaskUpdate{DueDate: &due})
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, ref string) (*domain.Task, error) {
	s, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	task, err := b.findTask(ctx, s, ref)
	if err != nil {
		return nil, err
	}
	if err := b.client.DeleteTask(ctx, s, task.ID); err != nil {
		return nil, b.dropRejectedSession(ctx, err)
	}
	return task, nil
}

// ========== Preferences ==========

func (b *businessAPIImpl) Theme(ctx context.Context) (domain.Theme, error) {
	return b.themes.Get(ctx)
}

func (b *businessAPIImpl) SetTheme(ctx context.Context, t domain.Theme) error {
	return b.themes.Set(ctx, t)
}

func (b *businessAPIImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return b.themes.Toggle(ctx)
}

func (b *businessAPIImpl) ResetTheme(ctx context.Context) (domain.Theme, error) {
	if err := b.themes.Reset(ctx); err != nil {
		return "", err
	}
	return b.themes.Get(ctx)
}

// ========== Helpers ==========

func (b *businessAPIImpl) session(ctx context.Context) (domain.Session, error) {
	s, err := b.sessions.Get(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if s == nil {
		notSignedIn := errors.NewAuthError(MessageNotSignedIn)
		notSignedIn.Code = "NOT_SIGNED_IN"
		return domain.Session{}, notSignedIn
	}
	return *s, nil
}

// dropRejectedSession forgets the stored session when the server refused it,
// so the next command reports the user as signed out.
func (b *businessAPIImpl) dropRejectedSession(ctx context.Context, err error) error {
	if errors.IsErrorType(err, errors.ErrorTypeAuth) {
		if clearErr := b.sessions.Clear(ctx); clearErr != nil {
			logging.Debugf("failed to clear rejected session: %v\n", clearErr)
		}
	}
	return err
}

// findTask resolves ref as a full task ID or a unique ID prefix.
func (b *businessAPIImpl) findTask(ctx context.Context, s domain.Session, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if err := b.taskValidator.ValidateTaskID(ref); err != nil {
		return nil, err
	}

	tasks, err := b.client.GetTasks(ctx, s)
	if err != nil {
		return nil, b.dropRejectedSession(ctx, err)
	}

	for i := range tasks {
		if tasks[i].ID == ref {
			return &tasks[i], nil
		}
	}

	var match *domain.Task
	for i := range tasks {
		if !strings.HasPrefix(tasks[i].ID, ref) {
			continue
		}
		if match != nil {
			return nil, errors.NewInvalidInputError("task", ref, MessageAmbiguousTask)
		}
		match = &tasks[i]
	}
	if match == nil {
		return nil, errors.NewNotFoundError("task", ref)
	}
	return match, nil
}
