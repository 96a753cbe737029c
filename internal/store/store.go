// Package store defines the persistence contract for tasks and categories.
//
// Implementations live in subpackages (memory, sqlstore, remote, cache) and
// are selected once at startup. Callers only see these interfaces.
package store

import (
	"context"

	"github.com/apper-canvas/taskflow/internal/model"
)

// TaskStore is CRUD over tasks.
// Get, Update and Delete return an error wrapping ErrNotFound for unknown ids.
type TaskStore interface {
	// ListTasks returns every task in store order.
	ListTasks(ctx context.Context) ([]model.Task, error)

	// GetTask returns one task.
	GetTask(ctx context.Context, id string) (model.Task, error)

	// CreateTask stores a new task, assigning its ID and CreatedAt.
	CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)

	// UpdateTask applies a partial update and returns the stored result.
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) (bool, error)
}

// CategoryStore is CRUD over categories
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (model.Category, error)
	CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

// Store is a complete backend
type Store interface {
	TaskStore
	CategoryStore
	Close() error
}
