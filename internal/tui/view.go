package tui

import (
	"fmt"
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskList)

	switch m.mode {
	case ModeAddTask, ModeAddCategory, ModeEditTask, ModeConfirmDelete:
		mainContent = lipgloss.Place(
			m.width, m.height-4,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar)
}

func (m Model) renderHeader() string {
	stats := m.view.Stats
	title := HeaderStyle.Render("TaskFlow")
	today := HelpStyle.Render(m.now.Format("Mon, Jan 2"))
	progress := fmt.Sprintf("%s %d%%  %d done, %d remaining today",
		lipgloss.NewStyle().Foreground(Completed).Render(progressBar(m.view.Progress, 20)),
		m.view.Progress, stats.CompletedToday, stats.RemainingToday)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", today, "   ", progress)
}

func (m Model) renderSidebar() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Categories") + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(repeat("─", 18)) + "\n")

	all := "All"
	if m.state.Filter.Category == "" {
		all = "» All"
	}
	s.WriteString(m.sidebarItem(0, all) + "\n")

	for i, b := range m.view.Categories {
		label := FormatCategory(truncate(b.Category.Name, 12), b.Color)
		if b.ShowCount() {
			label += HelpStyle.Render(fmt.Sprintf(" %d", b.ActiveCount))
		}
		if b.Selected {
			label = "» " + label
		}
		s.WriteString(m.sidebarItem(i+1, label) + "\n")
	}

	return SidebarStyle.Height(max(m.height-6, 1)).Render(s.String())
}

func (m Model) sidebarItem(index int, label string) string {
	if index == m.catCursor && m.pane == PaneSidebar {
		return CategoryItemSelectedStyle.Render(label)
	}
	return CategoryItemStyle.Render(label)
}

func (m Model) renderTaskList() string {
	var s strings.Builder

	if filters := m.describeFilters(); filters != "" {
		s.WriteString(HelpStyle.Render(filters) + "\n\n")
	}

	if len(m.view.Tasks) == 0 {
		s.WriteString(HelpStyle.Render(m.view.EmptyMessage))
		if !m.view.Filtered {
			s.WriteString(HelpStyle.Render(" (press 'a' to add one)"))
		}
		return TaskListStyle.Render(s.String())
	}

	titleWidth := max(m.width-24-40, 20)
	for i, t := range m.view.Tasks {
		row := m.renderTask(t, titleWidth)
		if i == m.taskCursor && m.pane == PaneTaskList {
			row = TaskItemSelectedStyle.Render(row)
		} else {
			row = TaskItemStyle.Render(row)
		}
		s.WriteString(row + "\n")
	}

	return TaskListStyle.Render(s.String())
}

func (m Model) renderTask(t model.Task, titleWidth int) string {
	check := "[ ]"
	title := truncate(t.Title, titleWidth)
	if t.Completed {
		check = lipgloss.NewStyle().Foreground(Completed).Render("[✓]")
		title = TaskDoneStyle.Render(title)
	}

	parts := []string{check, title, FormatCategory(t.Category, m.colors[t.Category]), FormatPriority(t.Priority)}
	if due := FormatDue(viewmodel.ClassifyDueDate(t.DueDate, m.now), t.Completed); due != "" {
		parts = append(parts, due)
	}
	return strings.Join(parts, "  ")
}

func (m Model) describeFilters() string {
	f := m.state.Filter
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	if f.Category != "" {
		parts = append(parts, "category: "+f.Category)
	}
	if f.Priority != "" {
		parts = append(parts, "priority: "+string(f.Priority))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtered by " + strings.Join(parts, ", ") + "  (esc to clear)"
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.mode == ModeSearch:
		left = "/" + m.input.View()
	case m.busy:
		left = "Working..."
	case m.message != "" && m.failed:
		left = ErrorStyle.Render(m.message)
	case m.message != "":
		left = m.message
	default:
		left = "a:add  x:done  e:edit  d:delete  /:search  p:priority  ?:help  q:quit"
	}

	count := fmt.Sprintf("%d tasks", len(m.view.Tasks))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(count)-4, 1)
	return StatusBarStyle.Width(max(m.width-2, 1)).Render(left + repeat(" ", gap) + count)
}

func (m Model) renderModal() string {
	var title, body string
	switch m.mode {
	case ModeAddTask:
		title = "New Task"
		if c := m.state.Filter.Category; c != "" {
			title += " in " + c
		}
		body = m.input.View()
	case ModeAddCategory:
		title = "New Category"
		body = m.input.View()
	case ModeEditTask:
		title = "Edit Task"
		body = m.input.View()
	case ModeConfirmDelete:
		title = "Delete"
		if m.pending != nil {
			kind := "task"
			if m.pending.category {
				kind = "category"
			}
			body = fmt.Sprintf("Delete %s %q? [y/N]", kind, truncate(m.pending.name, 40))
		}
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(title) + "\n\n" + body
	if m.mode != ModeConfirmDelete {
		content += "\n\n" + HelpStyle.Render("enter: save  esc: cancel")
	}
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Keyboard Shortcuts") + "\n\n")
	for _, b := range helpBindings {
		h := b.Help()
		s.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
	}
	s.WriteString("\n" + HelpStyle.Render("Press any key to close"))
	return ModalStyle.Render(s.String())
}
