// Package excluded stores the path prefixes whose files are left out of the library.
package excluded

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"
)

// ErrEmptyPath is returned when adding an empty path.
var ErrEmptyPath = errors.New("excluded path is empty")

// Store reads and writes the excluded_paths table of the state database.
type Store struct {
	db *sql.DB
}

// New creates a store over the state database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Paths returns all excluded path prefixes, oldest first.
func (s *Store) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM excluded_paths ORDER BY added_at, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// Add excludes a path prefix. Adding an existing path is a no-op.
func (s *Store) Add(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO excluded_paths (path, added_at) VALUES (?, ?)
	`, filepath.Clean(path), time.Now().Unix())
	return err
}

// Remove stops excluding a path prefix. It reports whether the path was excluded.
func (s *Store) Remove(ctx context.Context, path string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM excluded_paths WHERE path = ?`, filepath.Clean(path))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists checks if a path is excluded.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM excluded_paths WHERE path = ?
	`, filepath.Clean(path)).Scan(&count)
	return count > 0, err
}
