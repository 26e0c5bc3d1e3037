package music

import (
	"time"

	"github.com/rs/zerolog/log"
)

// normalizeStats counts the rows normalize did not turn into songs.
type normalizeStats struct {
	Malformed  int
	Duplicates int
}

// dedupKey is the tuple two rows must share to be considered the same file.
// Index ids are not part of it: the index registers some files
// twice under different ids.
type dedupKey struct {
	title       string
	album       string
	artist      Name
	albumArtist Name
	track       int
	duration    time.Duration
}

// normalize maps raw rows to songs, dropping malformed rows and duplicates.
// The first occurrence of a duplicate wins.
func normalize(rows []RawSong) ([]*Song, normalizeStats) {
	var stats normalizeStats
	songs := make([]*Song, 0, len(rows))
	seen := make(map[dedupKey]struct{}, len(rows))

	for i := range rows {
		song, ok := toSong(&rows[i])
		if !ok {
			stats.Malformed++
			log.Debug().
				Int64("id", rows[i].ID.Int64).
				Bool("has_id", rows[i].ID.Valid).
				Bool("has_duration", rows[i].Duration.Valid).
				Msg("dropping malformed row")
			continue
		}

		k := dedupKey{
			title:       song.Title,
			album:       song.Album,
			artist:      song.Artist,
			albumArtist: song.AlbumArtist,
			track:       song.Track,
			duration:    song.Duration,
		}
		if _, dup := seen[k]; dup {
			stats.Duplicates++
			continue
		}
		seen[k] = struct{}{}
		songs = append(songs, song)
	}
	return songs, stats
}

// toSong converts one row. Rows without an id or a duration are malformed.
func toSong(r *RawSong) (*Song, bool) {
	if !r.ID.Valid || !r.Duration.Valid {
		return nil, false
	}

	s := &Song{
		ID:          r.ID.Int64,
		FileName:    r.DisplayName.String,
		Title:       r.Title.String,
		Duration:    time.Duration(r.Duration.Int64) * time.Millisecond,
		Artist:      ParseName(r.Artist),
		AlbumArtist: ParseName(r.AlbumArtist),
		AlbumID:     r.AlbumID.Int64,
		Album:       r.Album.String,
		Year:        int(r.Year.Int64),
	}
	if s.Title == "" {
		s.Title = s.FileName
	}
	if r.Track.Valid && r.Track.Int64 > 0 {
		s.Track = int(r.Track.Int64)
	}
	s.key = groupKey{
		artist: keyOfName(s.EffectiveArtist()),
		album:  fold(s.Album),
	}
	return s, true
}
