// Package music turns the rows of the media index into a consistent library of
// songs, albums, artists and genres.
//
// The index is known to be unreliable: it emits duplicate rows, splits one album
// over several album ids, spells one artist with several casings, stores the
// "<unknown>" sentinel for missing artists and keeps genres that no longer have
// members. Loader repairs all of this and either returns an immutable Library or
// fails with a *LoadError.
package music

import "time"

// Song is one deduplicated music file.
type Song struct {
	ID          int64  // index row id
	Title       string // tag title, or the file name when the tag is empty
	FileName    string
	Duration    time.Duration
	Track       int // 0 when absent
	Artist      Name
	AlbumArtist Name
	AlbumID     int64 // index album id, one of possibly several for the same album
	Album       string
	Year        int // 0 when absent

	key groupKey
}

// EffectiveArtist is the album artist when known, otherwise the artist.
func (s *Song) EffectiveArtist() Name {
	return s.AlbumArtist.Or(s.Artist)
}

// Album groups the songs sharing a grouping identity.
type Album struct {
	Name     string
	Year     int
	CoverURI string
	Artist   Name
	Songs    []*Song

	key groupKey
}

// Artist groups the albums whose artist names only differ by case.
type Artist struct {
	Name        Name // first-seen casing
	DisplayName string
	Albums      []*Album
}

// Genre groups the songs the index tags with one genre.
type Genre struct {
	ID          int64  // index genre id, 0 for the unknown genre
	Name        string // raw index name, possibly a numeric ID3 code
	DisplayName string
	Songs       []*Song
}

// IsUnknown reports whether the genre collects songs the index gave no genre.
func (g *Genre) IsUnknown() bool {
	return g.ID == 0 && g.Name == UnknownSentinel
}
