package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
)

// migrate runs all database migrations
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateCategories,
		migrationCreateTasks,
		migrationTaskIndexes,
		migrationCreateMeta,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return db.seedDefaults()
}

// seedDefaults inserts the default categories once per database, so
// deleting one of them later sticks.
func (db *DB) seedDefaults() error {
	var value string
	err := db.QueryRow(db.Rebind(`SELECT value FROM meta WHERE key = ?`), "seeded").Scan(&value)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read seed marker: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, c := range model.DefaultCategories(now) {
		if _, err := tx.Exec(db.Rebind(`
			INSERT INTO categories (id, name, color, task_count, created_at)
			VALUES (?, ?, ?, 0, ?)
			ON CONFLICT DO NOTHING`),
			c.ID, c.Name, c.Color, c.CreatedAt.Format(TimeLayout),
		); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	if _, err := tx.Exec(db.Rebind(`INSERT INTO meta (key, value) VALUES (?, ?)`), "seeded", now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write seed marker: %w", err)
	}
	return tx.Commit()
}

// Both dialects accept this DDL. Timestamps are TimeLayout text so rows read
// back identically from SQLite and Postgres.

const migrationCreateCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    color TEXT NOT NULL DEFAULT '#4ECDC4',
    task_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
`

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    seq INTEGER NOT NULL,
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL DEFAULT 'Medium',
    due_date TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TEXT,
    created_at TEXT NOT NULL
);
`

const migrationTaskIndexes = `
CREATE INDEX IF NOT EXISTS idx_tasks_seq ON tasks(seq);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
`

const migrationCreateMeta = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT
);
`
