// Command seedindex writes a synthetic media index that reproduces the quirks of
// a real platform index, for trying out `shoal load` without a music folder.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	dbutil "github.com/llehouerou/shoal/internal/db"
	"github.com/llehouerou/shoal/internal/mediastore"
)

const root = "/storage/music"

type track struct {
	dir         string
	file        string
	title       string
	artist      string
	albumArtist string
	album       string
	genre       string
	year        int
	track       int
	duration    time.Duration
}

// fixture lists the files of the synthetic library. Each block exercises one
// way the index misrepresents the music it describes.
var fixture = []track{
	// One artist spelled with two casings
	{"Rammstein/Sehnsucht", "01.mp3", "Sehnsucht", "Rammstein", "", "Sehnsucht", "(17)", 1997, 1, 244 * time.Second},
	{"Rammstein/Sehnsucht", "05.mp3", "Du Hast", "Rammstein", "", "Sehnsucht", "(17)", 1997, 5, 234 * time.Second},
	{"RAMMSTEIN/Mutter", "02.mp3", "Links 2 3 4", "RAMMSTEIN", "", "Mutter", "Metal", 2001, 2, 217 * time.Second},

	// One album split over two folders, so over two album ids
	{"Pink Floyd/The Wall/CD1", "01.flac", "In the Flesh?", "Pink Floyd", "Pink Floyd", "The Wall", "Rock", 1979, 1, 199 * time.Second},
	{"Pink Floyd/The Wall/CD1", "03.flac", "Another Brick in the Wall, Part 1", "Pink Floyd", "Pink Floyd", "The Wall", "Rock", 1979, 3, 191 * time.Second},
	{"Pink Floyd/The Wall/CD2", "01.flac", "Hey You", "Pink Floyd", "Pink Floyd", "The Wall", "Rock", 0, 1, 280 * time.Second},

	// The same file copied twice
	{"Daft Punk/Discovery", "01.m4a", "One More Time", "Daft Punk", "", "Discovery", "13", 2001, 1, 320 * time.Second},
	{"Downloads", "one more time.m4a", "One More Time", "Daft Punk", "", "Discovery", "13", 2001, 1, 320 * time.Second},

	// Compilation held together by its album artist
	{"Compilations/Pulp Fiction", "01.mp3", "Misirlou", "Dick Dale", "Various Artists", "Pulp Fiction", "Soundtrack", 1994, 1, 145 * time.Second},
	{"Compilations/Pulp Fiction", "04.mp3", "Son of a Preacher Man", "Dusty Springfield", "Various Artists", "Pulp Fiction", "Soundtrack", 1994, 4, 146 * time.Second},

	// No artist, no title, no genre
	{"Unsorted", "track01.ogg", "", "", "", "", "", 0, 0, 180 * time.Second},
	{"Unsorted", "voice memo.opus", "Rehearsal", "", "", "Demos", "", 2020, 0, 95 * time.Second},

	// Duration could not be probed
	{"Unsorted", "broken.mp3", "Broken", "Nobody", "", "Broken", "Rock", 0, 0, 0},

	// Not music
	{"Ringtones", "ring.ogg", "Ring", "Phone", "", "Tones", "", 0, 0, 5 * time.Second},
}

func main() {
	out := flag.String("out", "index.db", "Path of the media index to create")
	force := flag.Bool("force", false, "Overwrite an existing index")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(context.Background(), *out, *force); err != nil {
		log.Fatal().Err(err).Msg("seeding media index failed")
	}
}

func run(ctx context.Context, out string, force bool) error {
	if _, err := os.Stat(out); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force)", out)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(out + suffix); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}

	store, err := mediastore.Open(out)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now().Unix()
	err = dbutil.WithTx(ctx, store.DB(), func(tx *sql.Tx) error {
		for _, t := range fixture {
			path := filepath.Join(root, t.dir, t.file)
			if _, err := mediastore.Upsert(ctx, tx, mediastore.Entry{
				Path:        path,
				Mtime:       now,
				Title:       t.title,
				Artist:      t.artist,
				AlbumArtist: t.albumArtist,
				Album:       t.album,
				Genre:       t.genre,
				Track:       t.track,
				Year:        t.year,
				Duration:    t.duration,
				IsMusic:     mediastore.IsMusicPath(path),
			}); err != nil {
				return fmt.Errorf("insert %s: %w", path, err)
			}
		}
		return addStaleGenres(ctx, tx, now)
	})
	if err != nil {
		return err
	}

	log.Info().Str("path", out).Int("files", len(fixture)).Msg("media index seeded")
	return nil
}

// addStaleGenres leaves behind the genre rows a real index accumulates: one
// whose only file was deleted and one that lost its name.
func addStaleGenres(ctx context.Context, tx *sql.Tx, mtime int64) error {
	gone := filepath.Join(root, "Deleted", "gone.mp3")
	if _, err := mediastore.Upsert(ctx, tx, mediastore.Entry{
		Path:     gone,
		Mtime:    mtime,
		Title:    "Gone",
		Artist:   "Ghost",
		Album:    "Vanished",
		Genre:    "Polka",
		Duration: time.Minute,
		IsMusic:  true,
	}); err != nil {
		return err
	}
	if err := mediastore.DeleteByPath(ctx, tx, gone); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO genres (name) VALUES (NULL)`)
	return err
}
