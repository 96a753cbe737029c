package memory

import (
	"context"
	"testing"
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/apper-canvas/taskflow/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}

func TestNewSeeded(t *testing.T) {
	s, err := NewSeeded()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	tasks, _ := s.ListTasks(context.Background())
	cats, _ := s.ListCategories(context.Background())
	if len(tasks) == 0 || len(cats) == 0 {
		t.Fatalf("expected seeded data, got %d tasks and %d categories", len(tasks), len(cats))
	}
	for _, task := range tasks {
		if task.Completed != (task.CompletedAt != nil) {
			t.Errorf("seed task %s breaks completion invariant", task.ID)
		}
	}
}

func TestReadsAreCopies(t *testing.T) {
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	s := New(WithTasks(model.Task{ID: "a", Title: "Original", Completed: true, CompletedAt: &at}))

	tasks, _ := s.ListTasks(context.Background())
	tasks[0].Title = "Mutated"
	*tasks[0].CompletedAt = at.Add(time.Hour)

	got, err := s.GetTask(context.Background(), "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Original" || !got.CompletedAt.Equal(at) {
		t.Errorf("store state leaked through returned slice: %+v", got)
	}
}

func TestClockStampsCreateAndComplete(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.TaskDraft{Title: "Stamp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !task.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v, want %v", task.CreatedAt, now)
	}

	yes := true
	done, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{Completed: &yes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want %v", done.CompletedAt, now)
	}
}

func TestDuplicateCategoryName(t *testing.T) {
	s := New(WithCategories(model.Category{ID: "w", Name: "Work"}))
	if _, err := s.CreateCategory(context.Background(), model.CategoryDraft{Name: "Work"}); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
}
