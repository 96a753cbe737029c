package tui

import (
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Primary   = lipgloss.Color("#5B4FCF")
	Accent    = lipgloss.Color("#4ECDC4")
	Completed = lipgloss.Color("#95E1A3")
	Danger    = lipgloss.Color("#FF6B6B")
	Warning   = lipgloss.Color("#FFB347")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Width(24).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	CategoryItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	CategoryItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().Foreground(Danger)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// FormatPriority renders a priority in its color
func FormatPriority(p model.Priority) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(viewmodel.PriorityColor(p)))
	if p == model.PriorityHigh {
		style = style.Bold(true)
	}
	return style.Render(string(p))
}

// FormatDue renders a due label; overdue open tasks stand out
func FormatDue(label viewmodel.DueLabel, completed bool) string {
	style := HelpStyle
	switch label.Kind {
	case viewmodel.DueNone:
		return ""
	case viewmodel.DueOverdue:
		if !completed {
			style = lipgloss.NewStyle().Foreground(Danger).Bold(true)
		}
	case viewmodel.DueToday:
		style = lipgloss.NewStyle().Foreground(Warning)
	case viewmodel.DueTomorrow:
		style = lipgloss.NewStyle().Foreground(Accent)
	}
	return style.Render(label.Text)
}

// FormatCategory renders a category name as a colored pill
func FormatCategory(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("● " + name)
}
