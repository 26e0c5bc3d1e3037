package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

// TestGetPlayback_Empty tests getting playback state from an empty database.
func TestGetPlayback_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getPlayback(db)
	if err != nil {
		t.Fatalf("getPlayback failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil playback on empty db, got %+v", s)
	}
}

// writePlayback stores a playback row the way the player does.
func writePlayback(t *testing.T, db *sql.DB, songID, positionMs int64, paused bool, updatedAt int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT OR REPLACE INTO playback_state (id, song_id, position_ms, paused, updated_at)
		VALUES (1, ?, ?, ?, ?)
	`, songID, positionMs, paused, updatedAt)
	if err != nil {
		t.Fatalf("failed to write playback: %v", err)
	}
}

// TestGetPlayback tests decoding a stored playback row.
func TestGetPlayback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	writePlayback(t, db, 42, 83500, true, 1700000000)

	got, err := getPlayback(db)
	if err != nil {
		t.Fatalf("getPlayback failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected playback state, got nil")
	}
	if got.SongID != 42 || got.Position != 83500*time.Millisecond || !got.Paused ||
		!got.UpdatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected playback state: %+v", got)
	}
}

// TestManager_GetPlaybackPersisted tests that Manager reads what an earlier session stored.
func TestManager_GetPlaybackPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got, err := m.GetPlayback(); err != nil || got != nil {
		t.Fatalf("expected no playback on a new database, got %+v, %v", got, err)
	}
	writePlayback(t, m.DB(), 7, 1000, false, 1700000000)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetPlayback()
	if err != nil {
		t.Fatalf("GetPlayback failed: %v", err)
	}
	if got == nil || got.SongID != 7 || got.Position != time.Second || got.Paused {
		t.Errorf("expected song 7 at 1s, got %+v", got)
	}
}

// TestMock tests the mock returns what was set.
func TestMock(t *testing.T) {
	m := NewMock()
	if got, _ := m.GetPlayback(); got != nil {
		t.Errorf("expected no playback, got %+v", got)
	}

	m.SetPlayback(&PlaybackState{SongID: 3})
	got, _ := m.GetPlayback()
	if got == nil || got.SongID != 3 {
		t.Errorf("expected song 3, got %+v", got)
	}

	_ = m.Close()
	if !m.IsClosed() {
		t.Error("expected mock to be closed")
	}
}
