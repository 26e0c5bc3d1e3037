package state

import (
	"database/sql"
)

// Mock is an in-memory Interface for tests of state consumers.
type Mock struct {
	playback *PlaybackState
	closed   bool
}

// NewMock creates a mock with no saved playback.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetPlayback() (*PlaybackState, error) {
	return m.playback, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// SetPlayback replaces the saved playback. nil clears it.
func (m *Mock) SetPlayback(s *PlaybackState) { m.playback = s }

func (m *Mock) IsClosed() bool { return m.closed }

var _ Interface = (*Mock)(nil)
