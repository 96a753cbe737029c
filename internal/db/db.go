package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a connection
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// TimeLayout is how timestamps are stored. The fraction is fixed width so
// text order matches time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB wraps a database connection together with its dialect
type DB struct {
	*sql.DB
	Dialect Dialect
}

// DefaultDBPath returns the default database path (~/.taskflow/tasks.db)
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskflow", "tasks.db"), nil
}

// Open opens a database from a DSN and runs migrations.
// postgres:// and postgresql:// URLs select Postgres; anything else is a
// SQLite file path.
func Open(dsn string) (*DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return open(Postgres, dsn)
	}
	return OpenSQLite(dsn)
}

// OpenSQLite opens or creates a SQLite database file
func OpenSQLite(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return open(SQLite, dbPath)
}

func open(dialect Dialect, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == SQLite {
		// One writer at a time; also keeps ":memory:" on a single connection.
		sqlDB.SetMaxOpenConns(1)
		if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	db := &DB{DB: sqlDB, Dialect: dialect}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Rebind rewrites ? placeholders into the dialect's form
func (db *DB) Rebind(query string) string {
	if db.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
