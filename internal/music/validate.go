package music

import "fmt"

// ViolationKind names a broken library invariant.
type ViolationKind string

// Violation kinds reported by Validate.
const (
	SongWithoutAlbum   ViolationKind = "song_without_album"
	SongInManyAlbums   ViolationKind = "song_in_many_albums"
	SongKeyMismatch    ViolationKind = "song_key_mismatch"
	SongWithoutGenre   ViolationKind = "song_without_genre"
	SongInManyGenres   ViolationKind = "song_in_many_genres"
	UnknownSongRef     ViolationKind = "unknown_song"
	AlbumWithoutArtist ViolationKind = "album_without_artist"
	AlbumInManyArtists ViolationKind = "album_in_many_artists"
	EmptyGenre         ViolationKind = "empty_genre"
	DuplicateSongID    ViolationKind = "duplicate_song_id"
)

// Violation is one broken invariant, pointing at the song or album involved.
type Violation struct {
	Kind   ViolationKind
	SongID int64  // 0 for album-level violations
	Album  string // album name, when relevant
	Detail string
}

func (v Violation) String() string {
	s := string(v.Kind)
	if v.SongID != 0 {
		s += fmt.Sprintf(" song=%d", v.SongID)
	}
	if v.Album != "" {
		s += fmt.Sprintf(" album=%q", v.Album)
	}
	if v.Detail != "" {
		s += " " + v.Detail
	}
	return s
}

// Validation is the outcome of Validate.
type Validation struct {
	Violations []Violation
}

// OK reports whether no invariant is broken.
func (v Validation) OK() bool {
	return len(v.Violations) == 0
}

// Validate checks that every song belongs to exactly one album whose grouping
// identity it shares and to exactly one genre, and that every album belongs to
// exactly one artist. It reports every violation rather than stopping at the first.
func Validate(songs []*Song, albums []*Album, artists []*Artist, genres []*Genre) Validation {
	var out []Violation
	add := func(v Violation) { out = append(out, v) }

	known := make(map[int64]bool, len(songs))
	for _, s := range songs {
		if known[s.ID] {
			add(Violation{Kind: DuplicateSongID, SongID: s.ID})
		}
		known[s.ID] = true
	}

	albumClaims := make(map[int64]int, len(songs))
	for _, a := range albums {
		for _, s := range a.Songs {
			if !known[s.ID] {
				add(Violation{Kind: UnknownSongRef, SongID: s.ID, Album: a.Name})
				continue
			}
			albumClaims[s.ID]++
			if s.key != a.key {
				add(Violation{
					Kind:   SongKeyMismatch,
					SongID: s.ID,
					Album:  a.Name,
					Detail: fmt.Sprintf("song=%q album=%q", s.key, a.key),
				})
			}
		}
	}

	genreClaims := make(map[int64]int, len(songs))
	for _, g := range genres {
		if len(g.Songs) == 0 {
			add(Violation{Kind: EmptyGenre, Detail: fmt.Sprintf("genre=%q", g.Name)})
		}
		for _, s := range g.Songs {
			if !known[s.ID] {
				add(Violation{Kind: UnknownSongRef, SongID: s.ID, Detail: fmt.Sprintf("genre=%q", g.Name)})
				continue
			}
			genreClaims[s.ID]++
		}
	}

	for _, s := range songs {
		switch n := albumClaims[s.ID]; {
		case n == 0:
			add(Violation{Kind: SongWithoutAlbum, SongID: s.ID})
		case n > 1:
			add(Violation{Kind: SongInManyAlbums, SongID: s.ID, Detail: fmt.Sprintf("albums=%d", n)})
		}
		switch n := genreClaims[s.ID]; {
		case n == 0:
			add(Violation{Kind: SongWithoutGenre, SongID: s.ID})
		case n > 1:
			add(Violation{Kind: SongInManyGenres, SongID: s.ID, Detail: fmt.Sprintf("genres=%d", n)})
		}
	}

	artistClaims := make(map[*Album]int, len(albums))
	for _, ar := range artists {
		for _, a := range ar.Albums {
			artistClaims[a]++
		}
	}
	for _, a := range albums {
		switch n := artistClaims[a]; {
		case n == 0:
			add(Violation{Kind: AlbumWithoutArtist, Album: a.Name})
		case n > 1:
			add(Violation{Kind: AlbumInManyArtists, Album: a.Name, Detail: fmt.Sprintf("artists=%d", n)})
		}
	}

	return Validation{Violations: out}
}
