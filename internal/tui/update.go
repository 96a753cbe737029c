package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval re-derives due labels and today stats so the screen
// follows the clock across midnight
const refreshInterval = 30 * time.Second

// tickMsg is sent every refreshInterval
type tickMsg time.Time

// loadedMsg reports the result of reloading the snapshot
type loadedMsg struct {
	err error
}

// actionMsg reports the result of a store-backed action
type actionMsg struct {
	status string // shown on success
	failed string // prefix shown with the error
	err    error
}

// pendingDelete is what ModeConfirmDelete will remove
type pendingDelete struct {
	category bool
	id       string
	name     string
}

// Init starts the refresh ticker
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// run executes fn off the UI goroutine and marks the model busy until
// its actionMsg arrives
func (m *Model) run(status, failed string, fn func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		return actionMsg{status: status, failed: failed, err: fn(context.Background())}
	}
}

func (m *Model) reload() tea.Cmd {
	m.busy = true
	svc := m.svc
	return func() tea.Msg {
		return loadedMsg{err: svc.Load(context.Background())}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.busy {
			m.refresh()
		}
		return m, tickCmd()

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError("Reload failed", msg.err)
		} else {
			m.setMessage("Reloaded")
		}
		m.refresh()
		return m, nil

	case actionMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.failed, msg.err)
		} else {
			m.setMessage(msg.status)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		m.mode = ModeNormal
		return m, nil
	case ModeAddTask, ModeAddCategory, ModeEditTask:
		return m.handleInput(msg)
	case ModeSearch:
		return m.handleSearch(msg)
	case ModeConfirmDelete:
		return m.handleConfirm(msg)
	}

	if m.busy && !key.Matches(msg, keys.Quit) {
		return m, nil
	}
	return m.handleNormal(msg)
}

func (m Model) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTaskList

	case key.Matches(msg, keys.Up):
		if m.pane == PaneSidebar {
			m.catCursor = clamp(m.catCursor-1, len(m.view.Categories)+1)
		} else {
			m.taskCursor = clamp(m.taskCursor-1, len(m.view.Tasks))
		}

	case key.Matches(msg, keys.Down):
		if m.pane == PaneSidebar {
			m.catCursor = clamp(m.catCursor+1, len(m.view.Categories)+1)
		} else {
			m.taskCursor = clamp(m.taskCursor+1, len(m.view.Tasks))
		}

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			name := m.selectedCategory()
			if name == "" {
				m.state.Filter.Category = ""
			} else {
				m.state.ToggleCategory(name)
			}
			m.taskCursor = 0
			m.refresh()
			return m, nil
		}
		cmd := m.toggleCurrent()
		return m, cmd

	case key.Matches(msg, keys.Done):
		if m.pane == PaneTaskList {
			cmd := m.toggleCurrent()
			return m, cmd
		}

	case key.Matches(msg, keys.Add):
		m.openInput(ModeAddTask, "What needs to be done?", "")

	case key.Matches(msg, keys.Category):
		m.openInput(ModeAddCategory, "Category name", "")

	case key.Matches(msg, keys.Edit):
		if t := m.currentTask(); t != nil {
			m.state.StartEditing(*t)
			m.openInput(ModeEditTask, "Task title", t.Title)
		}

	case key.Matches(msg, keys.Delete):
		return m.startDelete()

	case key.Matches(msg, keys.Search):
		m.openInput(ModeSearch, "Search tasks", m.state.Filter.Query)

	case key.Matches(msg, keys.Priority):
		m.state.CyclePriority()
		m.taskCursor = 0
		m.refresh()

	case key.Matches(msg, keys.Clear):
		m.state.ClearFilters()
		m.refresh()
		m.setMessage("Filters cleared")

	case key.Matches(msg, keys.Refresh):
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, keys.SetPrio):
		cmd := m.setPriority(priorityKeys[msg.String()])
		return m, cmd
	}

	return m, nil
}

// priorityKeys set the priority of the task under the cursor
var priorityKeys = map[string]model.Priority{
	"1": model.PriorityHigh,
	"2": model.PriorityMedium,
	"3": model.PriorityLow,
}

func (m *Model) openInput(mode Mode, placeholder, value string) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) toggleCurrent() tea.Cmd {
	t := m.currentTask()
	if t == nil {
		return nil
	}
	id, title := t.ID, t.Title
	status := "Completed: " + title
	if t.Completed {
		status = "Reopened: " + title
	}
	svc := m.svc
	return m.run(status, "Update failed", func(ctx context.Context) error {
		_, err := svc.ToggleTask(ctx, id)
		return err
	})
}

func (m *Model) setPriority(p model.Priority) tea.Cmd {
	t := m.currentTask()
	if t == nil || t.Priority == p {
		return nil
	}
	id := t.ID
	svc := m.svc
	return m.run(fmt.Sprintf("Priority set to %s", p), "Update failed", func(ctx context.Context) error {
		_, err := svc.UpdateTask(ctx, id, model.TaskPatch{Priority: &p})
		return err
	})
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	var target pendingDelete
	if m.pane == PaneSidebar {
		name := m.selectedCategory()
		if name == "" {
			return m, nil
		}
		target = pendingDelete{category: true, id: m.view.Categories[m.catCursor-1].Category.ID, name: name}
	} else {
		t := m.currentTask()
		if t == nil {
			return m, nil
		}
		target = pendingDelete{id: t.ID, name: t.Title}
	}

	if m.confirmDelete {
		m.pending = &target
		m.mode = ModeConfirmDelete
		return m, nil
	}
	cmd := m.delete(target)
	return m, cmd
}

func (m *Model) delete(target pendingDelete) tea.Cmd {
	svc := m.svc
	if target.category {
		if m.state.Filter.Category == target.name {
			m.state.Filter.Category = ""
		}
		return m.run("Deleted category: "+target.name, "Delete failed", func(ctx context.Context) error {
			return svc.DeleteCategory(ctx, target.id)
		})
	}
	return m.run("Deleted: "+target.name, "Delete failed", func(ctx context.Context) error {
		return svc.DeleteTask(ctx, target.id)
	})
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pending
	m.pending = nil
	m.mode = ModeNormal
	if target == nil {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y":
		cmd := m.delete(*target)
		return m, cmd
	default:
		m.setMessage("Cancelled")
		return m, nil
	}
}

func (m Model) handleSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.closeInput()
		return m, nil
	case tea.KeyEsc:
		m.closeInput()
		m.state.Filter.Query = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Filter.Query {
		m.state.Filter.Query = m.input.Value()
		m.taskCursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == ModeEditTask {
			m.state.CancelEdit()
		}
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == ModeEditTask && m.state.Editing != nil {
		m.state.Editing.Title = m.input.Value()
	}
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.mode
	m.closeInput()
	svc := m.svc

	switch mode {
	case ModeAddTask:
		draft := model.TaskDraft{Title: value, Category: m.state.Filter.Category}
		logger.Debug("Adding task from TUI", logger.F("category", draft.Category))
		cmd := m.run("Added: "+value, "Add failed", func(ctx context.Context) error {
			_, err := svc.AddTask(ctx, draft)
			return err
		})
		return m, cmd

	case ModeAddCategory:
		draft := model.CategoryDraft{Name: value}
		cmd := m.run("Added category: "+value, "Add category failed", func(ctx context.Context) error {
			_, err := svc.AddCategory(ctx, draft)
			return err
		})
		return m, cmd

	case ModeEditTask:
		editing := m.state.Editing
		m.state.CancelEdit()
		if editing == nil {
			return m, nil
		}
		if original, ok := svc.Task(editing.TaskID); ok && original.Title == value {
			return m, nil
		}
		id := editing.TaskID
		cmd := m.run("Renamed: "+value, "Rename failed", func(ctx context.Context) error {
			_, err := svc.RenameTask(ctx, id, value)
			return err
		})
		return m, cmd
	}

	return m, nil
}
