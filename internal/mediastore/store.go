// Package mediastore is the host media index: a sqlite database describing the
// audio files found under the library sources and their tag-derived metadata.
//
// The index mirrors what a platform media provider exposes rather
// than a clean model: missing artists are stored as the Unknown sentinel, album
// ids are assigned per (album, folder) so one album can be split across several
// ids, genre rows are never pruned, and files without a probed duration are kept
// with a NULL duration.
package mediastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// Unknown is the sentinel value the index stores for a missing artist or album.
const Unknown = "<unknown>"

// Store owns the media index database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the media index at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init media index schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a private in-memory media index. Used by tests and fixtures.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
