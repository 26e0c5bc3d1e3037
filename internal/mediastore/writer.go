package mediastore

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	dbutil "github.com/llehouerou/shoal/internal/db"
)

// Entry is one audio file as the index records it. Empty strings and zero
// numbers are absent values.
type Entry struct {
	Path        string
	Mtime       int64
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string // may hold several genres separated by ';'
	Track       int
	Year        int
	Duration    time.Duration
	IsMusic     bool
}

// nonMusicDirs are folder names whose audio the index does not flag as music.
var nonMusicDirs = map[string]bool{
	"ringtones":     true,
	"notifications": true,
	"alarms":        true,
	"podcasts":      true,
	"recordings":    true,
}

// IsMusicPath reports whether a file at path should be flagged as music.
func IsMusicPath(path string) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if nonMusicDirs[strings.ToLower(filepath.Base(dir))] {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return true
		}
	}
}

// Upsert inserts or updates the entry keyed by its path and rewrites its genre
// memberships. It returns the row id.
func Upsert(ctx context.Context, q dbutil.Querier, e Entry) (int64, error) {
	album := e.Album
	if album == "" {
		album = Unknown
	}
	artist := e.Artist
	if artist == "" {
		artist = Unknown
	}

	albumID, err := albumID(ctx, q, album, filepath.Dir(e.Path))
	if err != nil {
		return 0, err
	}

	isMusic := 0
	if e.IsMusic {
		isMusic = 1
	}

	var id int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO audio (path, mtime, title, display_name, album, album_id, artist, album_artist, year, track, duration, is_music)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			title = excluded.title,
			display_name = excluded.display_name,
			album = excluded.album,
			album_id = excluded.album_id,
			artist = excluded.artist,
			album_artist = excluded.album_artist,
			year = excluded.year,
			track = excluded.track,
			duration = excluded.duration,
			is_music = excluded.is_music
		RETURNING id
	`, e.Path, e.Mtime, dbutil.NullString(e.Title), filepath.Base(e.Path), album, albumID,
		artist, dbutil.NullString(e.AlbumArtist), e.Year, dbutil.NullPositive(int64(e.Track)),
		dbutil.NullPositive(e.Duration.Milliseconds()), isMusic).Scan(&id)
	if err != nil {
		return 0, err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM genre_members WHERE audio_id = ?`, id); err != nil {
		return 0, err
	}
	for _, name := range splitGenres(e.Genre) {
		if err := addGenreMember(ctx, q, name, id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// DeleteByPath removes the file at path and its genre memberships.
// Genre rows are left in place even when they lose their last member.
func DeleteByPath(ctx context.Context, q dbutil.Querier, path string) error {
	if _, err := q.ExecContext(ctx, `
		DELETE FROM genre_members WHERE audio_id IN (SELECT id FROM audio WHERE path = ?)
	`, path); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM audio WHERE path = ?`, path)
	return err
}

// Mtimes returns path->mtime for every indexed file under one of the sources.
func Mtimes(ctx context.Context, q dbutil.Querier, sources []string) (map[string]int64, error) {
	rows, err := q.QueryContext(ctx, `SELECT path, mtime FROM audio`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mtimes := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		if sourceOf(sources, path) != "" {
			mtimes[path] = mtime
		}
	}
	return mtimes, rows.Err()
}

func albumID(ctx context.Context, q dbutil.Querier, album, bucket string) (int64, error) {
	if _, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO albums (album, bucket) VALUES (?, ?)
	`, album, bucket); err != nil {
		return 0, err
	}
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT id FROM albums WHERE album = ? AND bucket = ?
	`, album, bucket).Scan(&id)
	return id, err
}

func addGenreMember(ctx context.Context, q dbutil.Querier, name string, audioID int64) error {
	if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO genres (name) VALUES (?)`, name); err != nil {
		return err
	}
	var genreID int64
	if err := q.QueryRowContext(ctx, `SELECT id FROM genres WHERE name = ?`, name).Scan(&genreID); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO genre_members (genre_id, audio_id) VALUES (?, ?)
	`, genreID, audioID)
	return err
}

func splitGenres(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// sourceOf returns the source directory containing path, or "" if none does.
func sourceOf(sources []string, path string) string {
	for _, src := range sources {
		prefix := strings.TrimSuffix(src, string(filepath.Separator)) + string(filepath.Separator)
		if path == src || strings.HasPrefix(path, prefix) {
			return src
		}
	}
	return ""
}
