package theme

import (
	"taskr/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the palette the CLI renders with.
type Styles struct {
	Theme domain.Theme

	Title       lipgloss.Style
	Greeting    lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Task        lipgloss.Style
	Completed   lipgloss.Style
	Overdue     lipgloss.Style
	DueDate     lipgloss.Style
	Muted       lipgloss.Style
	Badge       lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
}

type palette struct {
	text, muted, accent, accentText, danger, success, tabBg string
}

var (
	lightPalette = palette{
		text: "235", muted: "244", accent: "25", accentText: "231",
		danger: "160", success: "28", tabBg: "254",
	}
	darkPalette = palette{
		text: "252", muted: "245", accent: "33", accentText: "230",
		danger: "203", success: "78", tabBg: "236",
	}
)

// NewStyles builds the palette for t.
func NewStyles(t domain.Theme) Styles {
	p := lightPalette
	if t == domain.ThemeDark {
		p = darkPalette
	}

	base := lipgloss.NewStyle().Foreground(lipgloss.Color(p.text))

	return Styles{
		Theme:       t,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		Greeting:    base.Bold(true),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accentText)).Background(lipgloss.Color(p.accent)).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Background(lipgloss.Color(p.tabBg)).Padding(0, 1),
		Task:        base,
		Completed:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Strikethrough(true),
		Overdue:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)),
		DueDate:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Badge:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accentText)).Background(lipgloss.Color(p.accent)).Padding(0, 1),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
	}
}

// Plain returns styles that render text unchanged, for non-terminal output.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Greeting: s, TabActive: s, TabInactive: s, Task: s, Completed: s,
		Overdue: s, DueDate: s, Muted: s, Badge: s, Success: s, Error: s,
	}
}
