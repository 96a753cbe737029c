package sqlstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apper-canvas/taskflow/internal/db"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/apper-canvas/taskflow/internal/store/storetest"
)

func openTemp(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"), opts...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTemp(t)
	})
}

func TestDefaultCategoriesSeededOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != len(model.DefaultCategories(time.Now())) {
		t.Fatalf("expected default categories, got %d", len(cats))
	}
	if _, err := s.DeleteCategory(ctx, cats[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	s.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	again, err := reopened.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(again) != len(cats)-1 {
		t.Errorf("deleted default came back: got %d categories, want %d", len(again), len(cats)-1)
	}
}

func TestTimestampsSurviveRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	s := openTemp(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.TaskDraft{Title: "Stamp", DueDate: "2024-03-11"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.UpdateTask(ctx, task.ID, task.Toggle(now)); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, now)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want %v", got.CompletedAt, now)
	}
	if got.DueDate != "2024-03-11" {
		t.Errorf("dueDate = %q", got.DueDate)
	}
}

func TestDuplicateCategoryName(t *testing.T) {
	s := openTemp(t)
	if _, err := s.CreateCategory(context.Background(), model.CategoryDraft{Name: "Work"}); err == nil {
		t.Error("expected duplicate of seeded category to be rejected")
	}
}

func TestRebind(t *testing.T) {
	pg := &db.DB{Dialect: db.Postgres}
	if got := pg.Rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	lite := &db.DB{Dialect: db.SQLite}
	if got := lite.Rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}

func TestCategoriesListInCreationOrder(t *testing.T) {
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	steps := []time.Duration{0, 500 * time.Millisecond, 520 * time.Millisecond}
	i := 0
	s := openTemp(t, WithClock(func() time.Time {
		at := base.Add(steps[i])
		i++
		return at
	}))
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := s.CreateCategory(ctx, model.CategoryDraft{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var order []string
	for _, c := range cats {
		switch c.Name {
		case "First", "Second", "Third":
			order = append(order, c.Name)
		}
	}
	if strings.Join(order, ",") != "First,Second,Third" {
		t.Errorf("order = %v, want [First Second Third]", order)
	}

	got, err := s.GetCategory(ctx, cats[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CreatedAt.Equal(cats[0].CreatedAt) {
		t.Errorf("CreatedAt round trip: %v != %v", got.CreatedAt, cats[0].CreatedAt)
	}
}
