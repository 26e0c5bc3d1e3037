package music

import "time"

// Library is an immutable snapshot of the indexed music. Its slices and the
// values they point to must not be modified; it is safe for concurrent reads.
type Library struct {
	Genres  []*Genre
	Artists []*Artist
	Albums  []*Album
	Songs   []*Song

	songs    map[int64]*Song
	albumOf  map[int64]*Album
	artistOf map[*Album]*Artist
	genreOf  map[int64]*Genre
}

func newLibrary(songs []*Song, albums []*Album, artists []*Artist, genres []*Genre) *Library {
	l := &Library{
		Genres:   genres,
		Artists:  artists,
		Albums:   albums,
		Songs:    songs,
		songs:    make(map[int64]*Song, len(songs)),
		albumOf:  make(map[int64]*Album, len(songs)),
		artistOf: make(map[*Album]*Artist, len(albums)),
		genreOf:  make(map[int64]*Genre, len(songs)),
	}
	for _, s := range songs {
		l.songs[s.ID] = s
	}
	for _, a := range albums {
		for _, s := range a.Songs {
			l.albumOf[s.ID] = a
		}
	}
	for _, ar := range artists {
		for _, a := range ar.Albums {
			l.artistOf[a] = ar
		}
	}
	for _, g := range genres {
		for _, s := range g.Songs {
			l.genreOf[s.ID] = g
		}
	}
	return l
}

// Song returns the song with the given index id.
func (l *Library) Song(id int64) (*Song, bool) {
	s, ok := l.songs[id]
	return s, ok
}

// AlbumOf returns the album holding the song.
func (l *Library) AlbumOf(s *Song) *Album {
	return l.albumOf[s.ID]
}

// ArtistOf returns the artist holding the album.
func (l *Library) ArtistOf(a *Album) *Artist {
	return l.artistOf[a]
}

// GenreOf returns the genre holding the song.
func (l *Library) GenreOf(s *Song) *Genre {
	return l.genreOf[s.ID]
}

// Duration returns the total duration of all songs.
func (l *Library) Duration() (total time.Duration) {
	for _, s := range l.Songs {
		total += s.Duration
	}
	return total
}
