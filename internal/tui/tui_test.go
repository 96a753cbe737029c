package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/apper-canvas/taskflow/internal/app"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store/memory"
	tea "github.com/charmbracelet/bubbletea"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, confirmDelete bool) (Model, *app.Service) {
	t.Helper()
	st := memory.New(
		memory.WithClock(func() time.Time { return now }),
		memory.WithCategories(
			model.Category{ID: "c1", Name: "Work", Color: "#5B4FCF"},
			model.Category{ID: "c2", Name: "Personal", Color: "#FF6B6B"},
		),
		memory.WithTasks(
			model.Task{ID: "t1", Title: "Write report", Category: "Work", Priority: model.PriorityHigh, DueDate: "2024-03-09", CreatedAt: now},
			model.Task{ID: "t2", Title: "Buy milk", Category: "Personal", Priority: model.PriorityLow, CreatedAt: now},
		),
	)
	svc := app.New(st, app.WithClock(func() time.Time { return now }))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m := NewModel(svc, confirmDelete)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// send feeds msgs to the model. When a message starts a store action the
// returned command is run synchronously and its result fed back.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, cmd := m.Update(msg)
		m = updated.(Model)
		if m.busy && cmd != nil {
			updated, _ = m.Update(cmd())
			m = updated.(Model)
		}
	}
	return m
}

func TestNewModelShowsTasks(t *testing.T) {
	m, _ := newTestModel(t, false)

	if got := len(m.view.Tasks); got != 2 {
		t.Fatalf("tasks = %d, want 2", got)
	}
	out := m.View()
	for _, want := range []string{"TaskFlow", "Write report", "Buy milk", "Work", "Mar 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestToggleDone(t *testing.T) {
	m, svc := newTestModel(t, false)

	m = send(t, m, runes("x"))

	task, _ := svc.Task("t1")
	if !task.Completed {
		t.Fatal("task not completed")
	}
	if m.message != "Completed: Write report" || m.failed {
		t.Errorf("message = %q (failed %v)", m.message, m.failed)
	}
	if m.view.Stats.CompletedToday != 1 {
		t.Errorf("CompletedToday = %d, want 1", m.view.Stats.CompletedToday)
	}

	m = send(t, m, enter)
	if task, _ := svc.Task("t1"); task.Completed {
		t.Error("enter did not reopen the task")
	}
}

func TestBusyIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t, false)

	updated, cmd := m.Update(runes("x"))
	m = updated.(Model)
	if cmd == nil || !m.busy {
		t.Fatal("toggle did not start an action")
	}

	updated, cmd = m.Update(runes("x"))
	if cmd != nil {
		t.Error("second toggle started while busy")
	}
	if updated.(Model).mode != ModeNormal {
		t.Error("mode changed while busy")
	}
}

func TestAddTaskUsesCategoryFilter(t *testing.T) {
	m, svc := newTestModel(t, false)

	// select Personal in the sidebar
	m = send(t, m, runes("h"), runes("j"), runes("j"), enter)
	if m.state.Filter.Category != "Personal" {
		t.Fatalf("category filter = %q, want Personal", m.state.Filter.Category)
	}
	if len(m.view.Tasks) != 1 {
		t.Fatalf("filtered tasks = %d, want 1", len(m.view.Tasks))
	}

	m = send(t, m, runes("a"), runes("Call mom"), enter)

	tasks := svc.Tasks()
	last := tasks[len(tasks)-1]
	if last.Title != "Call mom" || last.Category != "Personal" || last.Priority != model.PriorityMedium {
		t.Errorf("added task = %+v", last)
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
	if len(m.view.Tasks) != 2 {
		t.Errorf("filtered tasks = %d, want 2", len(m.view.Tasks))
	}
}

func TestAddTaskValidationError(t *testing.T) {
	m, svc := newTestModel(t, false)

	m = send(t, m, runes("a"), enter)

	if !m.failed || !strings.HasPrefix(m.message, "Add failed") {
		t.Errorf("message = %q (failed %v)", m.message, m.failed)
	}
	if len(svc.Tasks()) != 2 {
		t.Errorf("tasks = %d, want 2", len(svc.Tasks()))
	}
}

func TestSearchIsLive(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = send(t, m, runes("/"), runes("MILK"))
	if m.mode != ModeSearch {
		t.Fatalf("mode = %v, want search", m.mode)
	}
	if len(m.view.Tasks) != 1 || m.view.Tasks[0].ID != "t2" {
		t.Fatalf("search results = %+v", m.view.Tasks)
	}

	m = send(t, m, runes("zzz"))
	if m.view.EmptyMessage != "No tasks match your filters" {
		t.Errorf("EmptyMessage = %q", m.view.EmptyMessage)
	}

	m = send(t, m, esc)
	if m.state.Filter.Query != "" || len(m.view.Tasks) != 2 {
		t.Errorf("esc did not clear search: %q, %d tasks", m.state.Filter.Query, len(m.view.Tasks))
	}
}

func TestPriorityFilterAndClear(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = send(t, m, runes("p"))
	if m.state.Filter.Priority != model.PriorityHigh || len(m.view.Tasks) != 1 {
		t.Fatalf("priority filter = %q, %d tasks", m.state.Filter.Priority, len(m.view.Tasks))
	}
	m = send(t, m, runes("p"))
	if len(m.view.Tasks) != 0 {
		t.Errorf("Medium filter tasks = %d, want 0", len(m.view.Tasks))
	}

	m = send(t, m, esc)
	if m.state.HasActiveFilters() || len(m.view.Tasks) != 2 {
		t.Errorf("filters not cleared")
	}
}

func TestSetPriority(t *testing.T) {
	m, svc := newTestModel(t, false)

	send(t, m, runes("j"), runes("1"))

	if task, _ := svc.Task("t2"); task.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want High", task.Priority)
	}
}

func TestEditTitle(t *testing.T) {
	m, svc := newTestModel(t, false)

	m = send(t, m, runes("e"))
	if m.mode != ModeEditTask || !m.state.IsEditing("t1") {
		t.Fatalf("not editing: mode %v", m.mode)
	}
	m = send(t, m, runes(" v2"))
	if m.state.Editing.Title != "Write report v2" {
		t.Errorf("editing title = %q", m.state.Editing.Title)
	}
	m = send(t, m, enter)

	if task, _ := svc.Task("t1"); task.Title != "Write report v2" {
		t.Errorf("title = %q", task.Title)
	}
	if m.state.Editing != nil {
		t.Error("edit state not cleared")
	}

	m = send(t, m, runes("e"), runes("!"), esc)
	if task, _ := svc.Task("t1"); task.Title != "Write report v2" {
		t.Errorf("cancelled edit saved: %q", task.Title)
	}
	if m.state.Editing != nil {
		t.Error("cancel did not clear edit state")
	}
}

func TestDeleteWithConfirm(t *testing.T) {
	m, svc := newTestModel(t, true)

	m = send(t, m, runes("d"))
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "Write report") {
		t.Error("confirm dialog does not name the task")
	}

	m = send(t, m, runes("n"))
	if len(svc.Tasks()) != 2 || m.message != "Cancelled" {
		t.Fatalf("cancel deleted: %d tasks, message %q", len(svc.Tasks()), m.message)
	}

	m = send(t, m, runes("d"), runes("y"))
	if _, ok := svc.Task("t1"); ok {
		t.Error("task not deleted")
	}
	if len(m.view.Tasks) != 1 {
		t.Errorf("view tasks = %d, want 1", len(m.view.Tasks))
	}
}

func TestCategories(t *testing.T) {
	m, svc := newTestModel(t, false)

	m = send(t, m, runes("c"), runes("Health"), enter)
	if len(svc.Categories()) != 3 {
		t.Fatalf("categories = %d, want 3", len(svc.Categories()))
	}

	m = send(t, m, runes("c"), runes("Work"), enter)
	if !m.failed {
		t.Errorf("duplicate category accepted: %q", m.message)
	}

	// select Work in the sidebar, filter by it, then delete it
	m = send(t, m, runes("h"), runes("j"), enter, runes("d"))
	if len(svc.Categories()) != 2 {
		t.Errorf("categories = %d, want 2", len(svc.Categories()))
	}
	if m.state.Filter.Category != "" {
		t.Errorf("filter still on deleted category %q", m.state.Filter.Category)
	}
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = send(t, m, runes("?"))
	if m.mode != ModeHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	m = send(t, m, runes("x"))
	if m.mode != ModeNormal {
		t.Fatal("help not closed")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
