// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
)

// Run exercises the store contract against stores built by newStore.
// Each subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("CreateAssignsIdentity", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a, err := s.CreateTask(ctx, model.TaskDraft{Title: "First", Category: "Work", Priority: model.PriorityHigh})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		b, err := s.CreateTask(ctx, model.TaskDraft{Title: "Second"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if a.ID == "" || a.ID == b.ID {
			t.Errorf("expected distinct ids, got %q and %q", a.ID, b.ID)
		}
		if a.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
		if a.Completed || a.CompletedAt != nil {
			t.Error("new task must be open")
		}
		if b.Priority != model.PriorityMedium {
			t.Errorf("expected default priority, got %q", b.Priority)
		}

		got, err := s.GetTask(ctx, a.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != "First" || got.Category != "Work" || got.Priority != model.PriorityHigh {
			t.Errorf("unexpected task %+v", got)
		}
	})

	t.Run("ListPreservesOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, title := range []string{"one", "two", "three"} {
			if _, err := s.CreateTask(ctx, model.TaskDraft{Title: title}); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		tasks, err := s.ListTasks(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		for i, want := range []string{"one", "two", "three"} {
			if tasks[i].Title != want {
				t.Errorf("position %d: got %q, want %q", i, tasks[i].Title, want)
			}
		}
	})

	t.Run("UpdateKeepsCompletionInvariant", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task, err := s.CreateTask(ctx, model.TaskDraft{Title: "Toggle me", DueDate: "2024-03-10"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		done, err := s.UpdateTask(ctx, task.ID, task.Toggle(task.CreatedAt))
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if !done.Completed || done.CompletedAt == nil {
			t.Fatalf("expected completed task with timestamp, got %+v", done)
		}

		reopened, err := s.UpdateTask(ctx, task.ID, done.Toggle(task.CreatedAt))
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		if reopened.Completed || reopened.CompletedAt != nil {
			t.Errorf("expected open task without timestamp, got %+v", reopened)
		}
		if reopened.DueDate != "2024-03-10" || reopened.Title != "Toggle me" {
			t.Errorf("untouched fields changed: %+v", reopened)
		}
	})

	t.Run("UpdateFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task, err := s.CreateTask(ctx, model.TaskDraft{Title: "Old", DueDate: "2024-03-10"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		title, prio, due := "New", model.PriorityLow, ""
		got, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{Title: &title, Priority: &prio, DueDate: &due})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Title != "New" || got.Priority != model.PriorityLow || got.DueDate != "" {
			t.Errorf("unexpected task after update: %+v", got)
		}
		if !got.CreatedAt.Equal(task.CreatedAt) {
			t.Errorf("createdAt changed from %v to %v", task.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("UnknownTaskIsNotFound", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		title := "x"
		if _, err := s.GetTask(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("get: expected ErrNotFound, got %v", err)
		}
		if _, err := s.UpdateTask(ctx, "missing", model.TaskPatch{Title: &title}); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("update: expected ErrNotFound, got %v", err)
		}
		if _, err := s.DeleteTask(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task, err := s.CreateTask(ctx, model.TaskDraft{Title: "Temporary"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ok, err := s.DeleteTask(ctx, task.ID)
		if err != nil || !ok {
			t.Fatalf("delete: ok=%v err=%v", ok, err)
		}
		if _, err := s.GetTask(ctx, task.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected deleted task to be gone, got %v", err)
		}
	})

	t.Run("Categories", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		before, err := s.ListCategories(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		c, err := s.CreateCategory(ctx, model.CategoryDraft{Name: "Errands", Color: "#123456"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if c.ID == "" || c.Name != "Errands" || c.Color != "#123456" {
			t.Errorf("unexpected category %+v", c)
		}

		color := "#654321"
		updated, err := s.UpdateCategory(ctx, c.ID, model.CategoryPatch{Color: &color})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Color != color || updated.Name != "Errands" {
			t.Errorf("unexpected category after update %+v", updated)
		}

		after, err := s.ListCategories(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(after) != len(before)+1 {
			t.Errorf("expected %d categories, got %d", len(before)+1, len(after))
		}

		if _, err := s.DeleteCategory(ctx, c.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := s.GetCategory(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if _, err := s.DeleteCategory(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("CategoryRenameValidated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		errands, err := s.CreateCategory(ctx, model.CategoryDraft{Name: "Errands"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := s.CreateCategory(ctx, model.CategoryDraft{Name: "Chores"}); err != nil {
			t.Fatalf("create: %v", err)
		}

		var verr *model.ValidationError
		blank := "  "
		if _, err := s.UpdateCategory(ctx, errands.ID, model.CategoryPatch{Name: &blank}); !errors.As(err, &verr) {
			t.Errorf("blank rename: expected ValidationError, got %v", err)
		}
		taken := "Chores"
		if _, err := s.UpdateCategory(ctx, errands.ID, model.CategoryPatch{Name: &taken}); !errors.As(err, &verr) {
			t.Errorf("duplicate rename: expected ValidationError, got %v", err)
		}

		got, err := s.GetCategory(ctx, errands.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Errands" {
			t.Errorf("rejected rename changed name to %q", got.Name)
		}

		padded := " Shopping list "
		renamed, err := s.UpdateCategory(ctx, errands.ID, model.CategoryPatch{Name: &padded})
		if err != nil {
			t.Fatalf("rename: %v", err)
		}
		if renamed.Name != "Shopping list" {
			t.Errorf("expected trimmed name, got %q", renamed.Name)
		}
	})

	t.Run("RejectsBlankTitle", func(t *testing.T) {
		s := newStore(t)
		var verr *model.ValidationError
		if _, err := s.CreateTask(context.Background(), model.TaskDraft{Title: "  "}); !errors.As(err, &verr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}
