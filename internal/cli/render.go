package cli

import (
	"fmt"
	"strings"
	"time"

	"taskr/internal/api"
	"taskr/internal/dates"
	"taskr/internal/domain"
	"taskr/internal/theme"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
)

// Renderer turns tasks into styled terminal text.
type Renderer struct {
	styles theme.Styles
	width  int
}

// NewRenderer creates a renderer that keeps lines within width columns.
func NewRenderer(styles theme.Styles, width int) *Renderer {
	return &Renderer{styles: styles, width: width}
}

// Tabs renders the filter tabs with their task counts.
func (r *Renderer) Tabs(list *api.TaskList) string {
	tabs := make([]string, 0, len(domain.Filters()))
	for _, f := range domain.Filters() {
		label := fmt.Sprintf("%s (%d)", f.Label(), list.Counts[f])
		style := r.styles.TabInactive
		if f == list.Filter {
			style = r.styles.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, " ")
}

// TaskList renders the tabs followed by one line per task.
func (r *Renderer) TaskList(list *api.TaskList) string {
	var b strings.Builder
	b.WriteString(r.Tabs(list))
	b.WriteString("\n\n")

	if len(list.Tasks) == 0 {
		b.WriteString(r.styles.Muted.Render(emptyMessage(list.Filter)))
		b.WriteString("\n")
		return b.String()
	}

	for _, task := range list.Tasks {
		b.WriteString(r.TaskLine(task, list.Now))
		b.WriteString("\n")
	}

	if list.Overdue > 0 && list.Filter != domain.FilterCompleted {
		b.WriteString("\n")
		b.WriteString(r.styles.Overdue.Render(fmt.Sprintf("%d overdue", list.Overdue)))
		b.WriteString("\n")
	}
	return b.String()
}

// TaskLine renders a single task as "[x] id  text  due 5 Mar".
func (r *Renderer) TaskLine(task domain.Task, now time.Time) string {
	check, textStyle := "[ ]", r.styles.Task
	if task.Completed {
		check, textStyle = "[x]", r.styles.Completed
	}

	id := fmt.Sprintf("%-*s", domain.ShortIDLength, task.ShortID())
	due := r.dueLabel(task, now)
	room := r.width - len(check) - len(id) - 3
	if due != "" {
		room -= len([]rune(due)) + 2
	}

	line := check + " " + r.styles.Muted.Render(id) + "  " + textStyle.Render(truncate(task.Text, room))
	if due == "" {
		return line
	}
	if !task.Completed && task.IsOverdue(now) {
		return line + "  " + r.styles.Overdue.Render(due)
	}
	return line + "  " + r.styles.DueDate.Render(due)
}

func (r *Renderer) dueLabel(task domain.Task, now time.Time) string {
	if !task.HasDueDate() {
		return ""
	}
	label := "due " + displayDate(task.DueDate, now)
	if !task.Completed && task.IsOverdue(now) {
		label += " (overdue)"
	}
	return label
}

// TaskDetail renders every field of a task.
func (r *Renderer) TaskDetail(task domain.Task, now time.Time) string {
	var b strings.Builder

	textStyle := r.styles.Title
	if task.Completed {
		textStyle = r.styles.Completed
	}
	b.WriteString(textStyle.Render(wordwrap.String(task.Text, r.width)))
	b.WriteString("\n\n")

	field := func(name, value string) {
		b.WriteString(r.styles.Muted.Render(fmt.Sprintf("%-10s", name+":")))
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("ID", task.ID)

	switch {
	case task.Completed:
		field("Status", r.styles.Success.Render("Completed"))
	case task.IsOverdue(now):
		field("Status", r.styles.Overdue.Render("Overdue"))
	default:
		field("Status", "Open")
	}

	if task.HasDueDate() {
		field("Due date", displayDate(task.DueDate, now))
	} else {
		field("Due date", r.styles.Muted.Render("none"))
	}

	if created, ok := relativeTime(task.CreatedAt, now); ok {
		field("Created", created)
	}
	if updated, ok := relativeTime(task.UpdatedAt, now); ok {
		field("Updated", updated)
	}
	return b.String()
}

// Welcome renders the account badge next to the greeting.
func (r *Renderer) Welcome(profile *api.Profile) string {
	return r.styles.Badge.Render(profile.Initial) + " " + r.styles.Greeting.Render(profile.Greeting)
}

func emptyMessage(f domain.Filter) string {
	switch f {
	case domain.FilterCompleted:
		return "No completed tasks yet."
	case domain.FilterAll:
		return "No tasks yet. Add one with `taskr add`."
	default:
		return "Nothing left to do."
	}
}

// displayDate shows a stored due date as "5 Mar", falling back to the raw
// value when it cannot be parsed.
func displayDate(due string, now time.Time) string {
	shown, err := dates.Display(due, now)
	if err != nil {
		return due
	}
	return shown
}

// relativeTime renders a backend timestamp as "3 days ago".
func relativeTime(stamp string, now time.Time) (string, bool) {
	if stamp == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return "", false
	}
	return humanize.RelTime(t, now, "ago", "from now"), true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 1 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
