// Package ledger tracks which ingested news items have already been
// processed, so repeated runs over the same bucket files never produce
// duplicate drafts. The ledger is a single-table SQLite database.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/faytuks/engine/migrations"
)

// Ledger is the SQLite-backed seen-items store.
type Ledger struct {
	db *sql.DB
}

// Open initializes the ledger database at path, creating parent
// directories, enabling WAL mode, and applying pending migrations.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Ledger{db: db}, nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Seen reports whether the item id has already been processed.
func (l *Ledger) Seen(ctx context.Context, id string) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seen_items WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query seen: %w", err)
	}
	return count > 0, nil
}

// Mark records an item as processed. Marking an already-seen id is a
// no-op so ingestion retries stay idempotent.
func (l *Ledger) Mark(ctx context.Context, id, bucket, handle string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO seen_items (id, bucket, handle, seen_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, bucket, handle, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

// Count returns the number of seen items, optionally filtered by bucket.
func (l *Ledger) Count(ctx context.Context, bucket string) (int64, error) {
	var count int64
	var err error
	if bucket == "" {
		err = l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seen_items").Scan(&count)
	} else {
		err = l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seen_items WHERE bucket = ?", bucket).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count seen: %w", err)
	}
	return count, nil
}

// Prune deletes entries older than the cutoff and returns how many
// were removed. Old entries are safe to drop once their source bucket
// windows have long expired.
func (l *Ledger) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, "DELETE FROM seen_items WHERE seen_at < ?", cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("prune seen: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return n, nil
}
