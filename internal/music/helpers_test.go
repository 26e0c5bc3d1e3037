package music

import (
	"context"
	"database/sql"
)

type fakeRows struct {
	songs   []RawSong
	genres  []RawGenre
	members map[int64][]int64

	songsErr   error
	genresErr  error
	membersErr error

	excluded []string
}

func (f *fakeRows) Songs(_ context.Context, excluded []string) ([]RawSong, error) {
	f.excluded = excluded
	return f.songs, f.songsErr
}

func (f *fakeRows) Genres(context.Context) ([]RawGenre, error) {
	return f.genres, f.genresErr
}

func (f *fakeRows) GenreMembers(_ context.Context, id int64) ([]int64, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.members[id], nil
}

func (f *fakeRows) addGenre(id int64, name string, songIDs ...int64) {
	f.genres = append(f.genres, RawGenre{ID: id, Name: str(name)})
	if f.members == nil {
		f.members = make(map[int64][]int64)
	}
	f.members[id] = songIDs
}

type fakeExclusions struct {
	paths []string
	err   error
}

func (f fakeExclusions) Paths(context.Context) ([]string, error) {
	return f.paths, f.err
}

type testNames struct{}

func (testNames) UnknownArtist() string { return "No Artist" }
func (testNames) UnknownGenre() string  { return "No Genre" }

// str returns a NULL string for "".
func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func num(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}

// rawSong builds a well-formed row with a 3 minute duration.
func rawSong(id int64, title, album, artist string) RawSong {
	return RawSong{
		ID:          num(id),
		Title:       str(title),
		DisplayName: str(title + ".mp3"),
		Album:       str(album),
		AlbumID:     num(id),
		Artist:      str(artist),
		Duration:    num(180000),
	}
}

func withYear(r RawSong, year int64) RawSong {
	r.Year = num(year)
	return r
}

func withAlbumArtist(r RawSong, albumArtist string) RawSong {
	r.AlbumArtist = str(albumArtist)
	return r
}

func songIDs(songs []*Song) []int64 {
	ids := make([]int64, 0, len(songs))
	for _, s := range songs {
		ids = append(ids, s.ID)
	}
	return ids
}
