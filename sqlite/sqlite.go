// Package sqlite provides SQLite-based storage implementations for rooftop services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string

	// Now returns the current time. Defaults to time.Now and is replaced in
	// tests to get stable timestamps.
	Now func() time.Time
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path, Now: time.Now}
}

// pragma is a connection setting applied on Open.
type pragma struct {
	stmt     string
	fileOnly bool
}

var pragmas = []pragma{
	{stmt: "PRAGMA busy_timeout = 5000"},
	// WAL is not supported for in-memory databases.
	{stmt: "PRAGMA journal_mode = WAL", fileOnly: true},
	// Deleting a parent relies on ON DELETE SET NULL.
	{stmt: "PRAGMA foreign_keys = ON"},
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() (err error) {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	// One connection serialises writers and keeps every query on the same
	// in-memory database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range pragmas {
		if p.fileOnly && db.path == ":memory:" {
			continue
		}
		if _, err := conn.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p.stmt, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		db.db = nil
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// now returns the current time truncated to the stored precision.
func (db *DB) now() time.Time {
	return db.Now().UTC().Truncate(time.Second)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS contents (
			id INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			slug TEXT NOT NULL,
			parent_id INTEGER REFERENCES contents(id) ON DELETE SET NULL,
			status TEXT NOT NULL DEFAULT 'publish',
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_contents_path ON contents(path);
		CREATE INDEX IF NOT EXISTS idx_contents_type_slug ON contents(type, slug);
		CREATE INDEX IF NOT EXISTS idx_contents_parent_id ON contents(parent_id);

		CREATE TABLE IF NOT EXISTS menus (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id INTEGER PRIMARY KEY,
			menu_id INTEGER NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			parent_id INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_menu_items_menu_id ON menu_items(menu_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
