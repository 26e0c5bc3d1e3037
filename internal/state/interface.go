package state

import (
	"database/sql"
)

// Interface is the part of Manager the CLI depends on.
type Interface interface {
	DB() *sql.DB
	GetPlayback() (*PlaybackState, error)
	Close() error
}

var _ Interface = (*Manager)(nil)
