package state

import (
	"database/sql"
	"errors"
	"time"
)

// PlaybackState is the position playback resumes from. The row is written by
// the player; a missing row means nothing was played yet.
type PlaybackState struct {
	SongID    int64 // media index id
	Position  time.Duration
	Paused    bool
	UpdatedAt time.Time
}

func getPlayback(db *sql.DB) (*PlaybackState, error) {
	var (
		s          PlaybackState
		positionMs int64
		paused     int
		updatedAt  int64
	)
	err := db.QueryRow(`
		SELECT song_id, position_ms, paused, updated_at FROM playback_state WHERE id = 1
	`).Scan(&s.SongID, &positionMs, &paused, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is not an error
	}
	if err != nil {
		return nil, err
	}
	s.Position = time.Duration(positionMs) * time.Millisecond
	s.Paused = paused != 0
	s.UpdatedAt = time.Unix(updatedAt, 0)
	return &s, nil
}
