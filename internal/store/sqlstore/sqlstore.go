// Package sqlstore implements store.Store on top of database/sql, for the
// local SQLite backend and the server's SQLite or Postgres storage.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/apper-canvas/taskflow/internal/db"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/google/uuid"
)

// Store is a SQL-backed store.Store
type Store struct {
	db  *db.DB
	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps an open database
func New(database *db.DB, opts ...Option) *Store {
	s := &Store{db: database, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the database behind dsn (see db.Open) and wraps it
func Open(dsn string, opts ...Option) (*Store, error) {
	database, err := db.Open(dsn)
	if err != nil {
		return nil, err
	}
	return New(database, opts...), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

const taskColumns = `id, title, category, priority, due_date, completed, completed_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t           model.Task
		priority    string
		completedAt sql.NullString
		createdAt   string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Category, &priority, &t.DueDate, &t.Completed, &completedAt, &createdAt); err != nil {
		return model.Task{}, err
	}
	t.Priority = model.Priority(priority)
	t.CreatedAt = parseTime(createdAt)
	if t.Completed && completedAt.Valid {
		at := parseTime(completedAt.String)
		t.CompletedAt = &at
	}
	return t, nil
}

// ListTasks implements store.TaskStore.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq ASC`)
	if err != nil {
		return nil, store.Wrap("list tasks", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, store.Wrap("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list tasks", err)
	}
	return tasks, nil
}

// GetTask implements store.TaskStore.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	return s.getTask(ctx, s.db.DB, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) getTask(ctx context.Context, q querier, id string) (model.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, s.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, store.NotFound("task", id)
	}
	if err != nil {
		return model.Task{}, store.Wrap("get task", err)
	}
	return t, nil
}

// CreateTask implements store.TaskStore.
func (s *Store) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, store.Wrap("create task", err)
	}
	t := model.NewTask(uuid.New().String(), draft, s.now().UTC())

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO tasks (seq, `+taskColumns+`)
		VALUES ((SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks), ?, ?, ?, ?, ?, ?, NULL, ?)`),
		t.ID, t.Title, t.Category, string(t.Priority), t.DueDate, false, formatTime(t.CreatedAt),
	)
	if err != nil {
		return model.Task{}, store.Wrap("create task", err)
	}
	return t, nil
}

// UpdateTask implements store.TaskStore.
// The read-modify-write runs in one transaction so the completion
// invariant is evaluated against the stored row.
func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}
	defer tx.Rollback()

	t, err := s.getTask(ctx, tx, id)
	if err != nil {
		return model.Task{}, err
	}
	t.Apply(patch, s.now().UTC())

	var completedAt sql.NullString
	if t.CompletedAt != nil {
		completedAt = sql.NullString{String: formatTime(*t.CompletedAt), Valid: true}
	}
	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		UPDATE tasks
		SET title = ?, category = ?, priority = ?, due_date = ?, completed = ?, completed_at = ?
		WHERE id = ?`),
		t.Title, t.Category, string(t.Priority), t.DueDate, t.Completed, completedAt, id,
	)
	if err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}
	return t, nil
}

// DeleteTask implements store.TaskStore.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "tasks", "task", id)
}

func (s *Store) deleteByID(ctx context.Context, table, kind, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return false, store.Wrap("delete "+kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, store.Wrap("delete "+kind, err)
	}
	if n == 0 {
		return false, store.NotFound(kind, id)
	}
	return true, nil
}

const categoryColumns = `id, name, color, task_count, created_at`

func scanCategory(row rowScanner) (model.Category, error) {
	var (
		c         model.Category
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.TaskCount, &createdAt); err != nil {
		return model.Category{}, err
	}
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

// ListCategories implements store.CategoryStore.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, store.Wrap("list categories", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, store.Wrap("list categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list categories", err)
	}
	return categories, nil
}

// GetCategory implements store.CategoryStore.
func (s *Store) GetCategory(ctx context.Context, id string) (model.Category, error) {
	return s.getCategory(ctx, s.db.DB, id)
}

func (s *Store) getCategory(ctx context.Context, q querier, id string) (model.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx, s.db.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, store.NotFound("category", id)
	}
	if err != nil {
		return model.Category{}, store.Wrap("get category", err)
	}
	return c, nil
}

// CreateCategory implements store.CategoryStore.
func (s *Store) CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	if err := draft.Validate(); err != nil {
		return model.Category{}, store.Wrap("create category", err)
	}
	c := model.NewCategory(uuid.New().String(), draft, s.now().UTC())

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?)`),
		c.ID, c.Name, c.Color, c.TaskCount, formatTime(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, store.Wrap("create category", model.DuplicateCategory(c.Name))
		}
		return model.Category{}, store.Wrap("create category", err)
	}
	return c, nil
}

// UpdateCategory implements store.CategoryStore.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error) {
	if err := patch.Validate(); err != nil {
		return model.Category{}, store.Wrap("update category", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Category{}, store.Wrap("update category", err)
	}
	defer tx.Rollback()

	c, err := s.getCategory(ctx, tx, id)
	if err != nil {
		return model.Category{}, err
	}
	c.Apply(patch)

	if _, err := tx.ExecContext(ctx, s.db.Rebind(`UPDATE categories SET name = ?, color = ?, task_count = ? WHERE id = ?`),
		c.Name, c.Color, c.TaskCount, id,
	); err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, store.Wrap("update category", model.DuplicateCategory(c.Name))
		}
		return model.Category{}, store.Wrap("update category", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Category{}, store.Wrap("update category", err)
	}
	return c, nil
}

// DeleteCategory implements store.CategoryStore.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "categories", "category", id)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(db.TimeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation matches both SQLite and Postgres constraint messages
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
