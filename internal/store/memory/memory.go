// Package memory is the mock backend: an in-memory store that needs no
// server, optionally seeded with demo data.
package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/google/uuid"
)

//go:embed seed.json
var seedJSON []byte

type seedData struct {
	Tasks      []model.Task     `json:"tasks"`
	Categories []model.Category `json:"categories"`
}

// Store keeps tasks and categories in slices guarded by a mutex.
// Every value handed in or out is a copy.
type Store struct {
	mu         sync.RWMutex
	tasks      []model.Task
	categories []model.Category
	now        func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTasks preloads tasks
func WithTasks(tasks ...model.Task) Option {
	return func(s *Store) {
		for _, t := range tasks {
			s.tasks = append(s.tasks, cloneTask(t))
		}
	}
}

// WithCategories preloads categories
func WithCategories(categories ...model.Category) Option {
	return func(s *Store) { s.categories = append(s.categories, categories...) }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded creates a store holding the bundled demo tasks and categories
func NewSeeded(opts ...Option) (*Store, error) {
	var seed seedData
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	opts = append([]Option{WithTasks(seed.Tasks...), WithCategories(seed.Categories...)}, opts...)
	return New(opts...), nil
}

// ListTasks implements store.TaskStore.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out, nil
}

// GetTask implements store.TaskStore.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, store.NotFound("task", id)
	}
	return cloneTask(s.tasks[i]), nil
}

// CreateTask implements store.TaskStore.
func (s *Store) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, store.Wrap("create task", err)
	}
	t := model.NewTask(uuid.New().String(), draft, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return cloneTask(t), nil
}

// UpdateTask implements store.TaskStore.
func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, store.NotFound("task", id)
	}
	s.tasks[i].Apply(patch, s.now())
	return cloneTask(s.tasks[i]), nil
}

// DeleteTask implements store.TaskStore.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return false, store.NotFound("task", id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, nil
}

// ListCategories implements store.CategoryStore.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// GetCategory implements store.CategoryStore.
func (s *Store) GetCategory(ctx context.Context, id string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return model.Category{}, store.NotFound("category", id)
	}
	return s.categories[i], nil
}

// CreateCategory implements store.CategoryStore.
func (s *Store) CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	if err := draft.Validate(); err != nil {
		return model.Category{}, store.Wrap("create category", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == draft.Name {
			return model.Category{}, store.Wrap("create category", model.DuplicateCategory(draft.Name))
		}
	}
	c := model.NewCategory(uuid.New().String(), draft, s.now())
	s.categories = append(s.categories, c)
	return c, nil
}

// UpdateCategory implements store.CategoryStore.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error) {
	if err := patch.Validate(); err != nil {
		return model.Category{}, store.Wrap("update category", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return model.Category{}, store.NotFound("category", id)
	}
	if patch.Name != nil {
		for j, c := range s.categories {
			if j != i && c.Name == *patch.Name {
				return model.Category{}, store.Wrap("update category", model.DuplicateCategory(c.Name))
			}
		}
	}
	s.categories[i].Apply(patch)
	return s.categories[i], nil
}

// DeleteCategory implements store.CategoryStore.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return false, store.NotFound("category", id)
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return true, nil
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func (s *Store) taskIndex(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneTask(t model.Task) model.Task {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}
