package tui

import (
	"time"

	"github.com/apper-canvas/taskflow/internal/app"
	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
	"github.com/charmbracelet/bubbles/textinput"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddCategory
	ModeEditTask
	ModeSearch
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model.
//
// Store calls run as tea.Cmds. While one is in flight (busy) the model
// does not touch the service, so the service is only ever used from one
// goroutine at a time.
type Model struct {
	svc           *app.Service
	state         viewmodel.State
	view          viewmodel.View
	now           time.Time
	colors        map[string]string // category name -> color for task rows
	confirmDelete bool
	pending       *pendingDelete

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	catCursor  int // 0 is "All", then one row per category
	taskCursor int
	busy       bool

	// Input
	input textinput.Model

	message string
	failed  bool
}

// NewModel creates a TUI over a loaded service
func NewModel(svc *app.Service, confirmDelete bool) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		svc:           svc,
		confirmDelete: confirmDelete,
		pane:          PaneTaskList,
		mode:          ModeNormal,
		input:         ti,
	}
	m.refresh()

	logger.Debug("TUI model initialized",
		logger.F("categories", len(m.view.Categories)),
		logger.F("tasks", len(m.view.Tasks)))
	return m
}

// refresh re-derives the view from the service snapshot and clamps cursors
func (m *Model) refresh() {
	m.view = m.svc.View(m.state)
	m.now = m.svc.Now()

	categories := m.svc.Categories()
	m.colors = make(map[string]string, len(categories))
	for _, t := range m.view.Tasks {
		if _, ok := m.colors[t.Category]; !ok {
			m.colors[t.Category] = viewmodel.ResolveCategoryColor(categories, t.Category)
		}
	}
	m.taskCursor = clamp(m.taskCursor, len(m.view.Tasks))
	m.catCursor = clamp(m.catCursor, len(m.view.Categories)+1)
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.view.Tasks) {
		return &m.view.Tasks[m.taskCursor]
	}
	return nil
}

// selectedCategory returns the category under the sidebar cursor, "" for All
func (m *Model) selectedCategory() string {
	if m.catCursor == 0 || m.catCursor > len(m.view.Categories) {
		return ""
	}
	return m.view.Categories[m.catCursor-1].Category.Name
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.failed = false
}

func (m *Model) setError(prefix string, err error) {
	m.message = prefix + ": " + err.Error()
	m.failed = true
}
