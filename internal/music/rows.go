package music

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	dbutil "github.com/llehouerou/shoal/internal/db"
)

// RawSong is a music row as the index returns it. Every column may be NULL.
type RawSong struct {
	ID          sql.NullInt64
	Title       sql.NullString
	DisplayName sql.NullString
	Album       sql.NullString
	AlbumID     sql.NullInt64
	Artist      sql.NullString
	AlbumArtist sql.NullString
	Year        sql.NullInt64
	Track       sql.NullInt64
	Duration    sql.NullInt64 // milliseconds
}

// RawGenre is a genre definition row. Name may be NULL.
type RawGenre struct {
	ID   int64
	Name sql.NullString
}

// Rows is the query surface of the media index.
// Zero rows is never an error; an error means the index could not be queried.
type Rows interface {
	Songs(ctx context.Context, excluded []string) ([]RawSong, error)
	Genres(ctx context.Context) ([]RawGenre, error)
	GenreMembers(ctx context.Context, genreID int64) ([]int64, error)
}

// RowSource queries a media index database.
type RowSource struct {
	q dbutil.Querier
}

// NewRowSource creates a row source reading from q.
func NewRowSource(q dbutil.Querier) *RowSource {
	return &RowSource{q: q}
}

// Songs returns every music row whose path is not under one of the excluded prefixes.
func (r *RowSource) Songs(ctx context.Context, excluded []string) ([]RawSong, error) {
	query := `
		SELECT id, title, display_name, album, album_id, artist, album_artist, year, track, duration
		FROM audio
		WHERE is_music = 1`
	args := make([]any, 0, len(excluded))
	for _, prefix := range excluded {
		if prefix == "" {
			continue
		}
		// GLOB is case-sensitive, so it matches bytes; the prefix's own
		// wildcard characters are escaped.
		query += ` AND path NOT GLOB ?`
		args = append(args, globEscape(prefix)+"*")
	}
	query += ` ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var out []RawSong
	for rows.Next() {
		var s RawSong
		if err := rows.Scan(&s.ID, &s.Title, &s.DisplayName, &s.Album, &s.AlbumID,
			&s.Artist, &s.AlbumArtist, &s.Year, &s.Track, &s.Duration); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Genres returns every genre definition row.
func (r *RowSource) Genres(ctx context.Context) ([]RawGenre, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var out []RawGenre
	for rows.Next() {
		var g RawGenre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GenreMembers returns the ids of the songs the index lists under a genre.
func (r *RowSource) GenreMembers(ctx context.Context, genreID int64) ([]int64, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT audio_id FROM genre_members WHERE genre_id = ? ORDER BY audio_id
	`, genreID)
	if err != nil {
		return nil, fmt.Errorf("query genre %d members: %w", genreID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan genre member: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var globEscaper = strings.NewReplacer("[", "[[]", "*", "[*]", "?", "[?]")

// globEscape makes s match itself literally in a GLOB pattern.
func globEscape(s string) string {
	return globEscaper.Replace(s)
}
