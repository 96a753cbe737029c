// Package app is the calling context around the view model: it holds the
// task and category snapshot, sends one store request per user action and
// updates the snapshot only when that request succeeds.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/apper-canvas/taskflow/internal/viewmodel"
)

// ErrAmbiguous is returned when an id prefix matches more than one task
var ErrAmbiguous = errors.New("ambiguous task reference")

// Defaults fill in fields a new task was created without
type Defaults struct {
	Category string
	Priority model.Priority
}

// Service owns the snapshot. It is not safe for concurrent use; the CLI
// and the TUI update loop each drive it from a single goroutine.
type Service struct {
	store      store.Store
	defaults   Defaults
	now        func() time.Time
	log        *logger.Logger
	tasks      []model.Task
	categories []model.Category
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. The default is the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDefaults sets the category and priority of new tasks
func WithDefaults(d Defaults) Option {
	return func(s *Service) { s.defaults = d }
}

// New creates a service over st with an empty snapshot
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		defaults: Defaults{Category: "Work", Priority: model.PriorityMedium},
		now:      time.Now,
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock
func (s *Service) Now() time.Time {
	return s.now()
}

// Tasks returns the current task snapshot
func (s *Service) Tasks() []model.Task {
	return s.tasks
}

// Categories returns the current category snapshot
func (s *Service) Categories() []model.Category {
	return s.categories
}

// Close closes the underlying store
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) failed(op string, err error, fields ...logger.Field) error {
	s.log.Error("Store request failed", append([]logger.Field{logger.F("op", op), logger.Err(err)}, fields...)...)
	return err
}

// Load replaces the snapshot with the store's tasks and categories
func (s *Service) Load(ctx context.Context) error {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return s.failed("load tasks", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return s.failed("load categories", err)
	}
	s.tasks = tasks
	s.categories = categories
	s.log.Debug("Snapshot loaded", logger.F("tasks", len(tasks)), logger.F("categories", len(categories)))
	return nil
}

// AddTask validates the draft, fills in defaults and creates the task.
// The new task is appended to the snapshot.
func (s *Service) AddTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	if draft.Category == "" {
		draft.Category = s.defaults.Category
	}
	if draft.Priority == "" {
		draft.Priority = s.defaults.Priority
	}

	t, err := s.store.CreateTask(ctx, draft)
	if err != nil {
		return model.Task{}, s.failed("create task", err)
	}
	s.tasks = append(s.tasks, t)
	s.log.Info("Task created", logger.F("id", t.ID), logger.F("category", t.Category))
	return t, nil
}

// ToggleTask flips the completion state of a task
func (s *Service) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, store.NotFound("task", id)
	}
	return s.update(ctx, id, s.tasks[i].Toggle(s.now()))
}

// RenameTask sets a new, non-empty title
func (s *Service) RenameTask(ctx context.Context, id, title string) (model.Task, error) {
	title, err := model.ValidateTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	return s.update(ctx, id, model.TaskPatch{Title: &title})
}

// UpdateTask applies an arbitrary patch
func (s *Service) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, err
	}
	return s.update(ctx, id, patch)
}

func (s *Service) update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	t, err := s.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return model.Task{}, s.failed("update task", err, logger.F("id", id))
	}
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = t
	} else {
		s.tasks = append(s.tasks, t)
	}
	s.log.Info("Task updated", logger.F("id", id), logger.F("completed", t.Completed))
	return t, nil
}

// DeleteTask removes a task from the store and the snapshot
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.store.DeleteTask(ctx, id); err != nil {
		return s.failed("delete task", err, logger.F("id", id))
	}
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	s.log.Info("Task deleted", logger.F("id", id))
	return nil
}

// ClearTasks deletes completed tasks, or every task when all is set.
// It stops at the first failure; tasks deleted before it stay deleted.
func (s *Service) ClearTasks(ctx context.Context, all bool) (int, error) {
	var ids []string
	for _, t := range s.tasks {
		if all || t.Completed {
			ids = append(ids, t.ID)
		}
	}

	cleared := 0
	for _, id := range ids {
		if err := s.DeleteTask(ctx, id); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}

// AddCategory creates a category
func (s *Service) AddCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	if err := draft.Validate(); err != nil {
		return model.Category{}, err
	}
	c, err := s.store.CreateCategory(ctx, draft)
	if err != nil {
		return model.Category{}, s.failed("create category", err)
	}
	s.categories = append(s.categories, c)
	s.log.Info("Category created", logger.F("id", c.ID), logger.F("name", c.Name))
	return c, nil
}

// DeleteCategory removes a category by id or exact name. Tasks keep
// their category text.
func (s *Service) DeleteCategory(ctx context.Context, ref string) error {
	id := ref
	for _, c := range s.categories {
		if c.Name == ref {
			id = c.ID
			break
		}
	}
	if _, err := s.store.DeleteCategory(ctx, id); err != nil {
		return s.failed("delete category", err, logger.F("ref", ref))
	}
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
			break
		}
	}
	s.log.Info("Category deleted", logger.F("id", id))
	return nil
}

// ResolveTaskID maps an exact id or a unique id prefix to a task id
func (s *Service) ResolveTaskID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", store.NotFound("task", ref)
	}

	var matches []string
	for _, t := range s.tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", store.NotFound("task", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d tasks: %w", ref, len(matches), ErrAmbiguous)
	}
}

// Task returns the snapshot copy of a task
func (s *Service) Task(id string) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// View derives the screen for state at the service clock
func (s *Service) View(state viewmodel.State) viewmodel.View {
	return viewmodel.Derive(s.tasks, s.categories, state, s.now())
}

func (s *Service) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
