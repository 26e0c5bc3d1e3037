package music

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenSongs(t *testing.T) []*Song {
	t.Helper()
	var rows []RawSong
	for i := int64(1); i <= 10; i++ {
		rows = append(rows, rawSong(i, string(rune('A'+i)), "Album", "Artist"))
	}
	return songsOf(t, rows...)
}

func TestResolveGenres_SyntheticUnknownGenre(t *testing.T) {
	rows := &fakeRows{}
	rows.addGenre(1, "Metal", 1, 2, 3, 4)
	rows.addGenre(2, "Rock", 5, 6, 7)

	genres, stats, err := resolveGenres(context.Background(), rows, tenSongs(t), "No Genre")
	require.NoError(t, err)

	require.Len(t, genres, 3)
	unknown := genres[2]
	assert.True(t, unknown.IsUnknown())
	assert.Equal(t, UnknownSentinel, unknown.Name)
	assert.Equal(t, "No Genre", unknown.DisplayName)
	assert.Equal(t, []int64{8, 9, 10}, songIDs(unknown.Songs))
	assert.Equal(t, 3, stats.Unclaimed)
}

func TestResolveGenres_NoUnknownGenreWhenAllResolved(t *testing.T) {
	rows := &fakeRows{}
	rows.addGenre(1, "Metal", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	genres, stats, err := resolveGenres(context.Background(), rows, tenSongs(t), "No Genre")
	require.NoError(t, err)

	require.Len(t, genres, 1)
	assert.False(t, genres[0].IsUnknown())
	assert.Zero(t, stats.Unclaimed)
}

func TestResolveGenres_DropsPhantomGenres(t *testing.T) {
	rows := &fakeRows{}
	rows.addGenre(1, "Polka")
	rows.addGenre(2, "Deleted", 99, 100)
	rows.addGenre(3, "Metal", 1)

	genres, stats, err := resolveGenres(context.Background(), rows, songsOf(t, rawSong(1, "A", "X", "Y")), "?")
	require.NoError(t, err)

	require.Len(t, genres, 1)
	assert.Equal(t, "Metal", genres[0].Name)
	assert.Equal(t, 2, stats.Phantom)
}

func TestResolveGenres_SkipsNamelessGenres(t *testing.T) {
	rows := &fakeRows{}
	rows.genres = append(rows.genres, RawGenre{ID: 1})
	rows.members = map[int64][]int64{1: {1}}

	genres, stats, err := resolveGenres(context.Background(), rows, songsOf(t, rawSong(1, "A", "X", "Y")), "No Genre")
	require.NoError(t, err)

	require.Len(t, genres, 1)
	assert.True(t, genres[0].IsUnknown())
	assert.Equal(t, 1, stats.Nameless)
}

func TestResolveGenres_NumericNames(t *testing.T) {
	rows := &fakeRows{}
	rows.addGenre(1, "(17)", 1)
	rows.addGenre(2, "9", 2)
	rows.addGenre(3, "Neue Deutsche Härte", 3)
	rows.addGenre(4, "999", 4)

	songs := songsOf(t,
		rawSong(1, "A", "X", "Y"), rawSong(2, "B", "X", "Y"),
		rawSong(3, "C", "X", "Y"), rawSong(4, "D", "X", "Y"),
	)
	genres, _, err := resolveGenres(context.Background(), rows, songs, "?")
	require.NoError(t, err)

	require.Len(t, genres, 4)
	assert.Equal(t, "(17)", genres[0].Name)
	assert.Equal(t, "Rock", genres[0].DisplayName)
	assert.Equal(t, "Metal", genres[1].DisplayName)
	assert.Equal(t, "Neue Deutsche Härte", genres[2].DisplayName)
	assert.Equal(t, "999", genres[3].DisplayName)
}

func TestResolveGenres_FirstGenreClaimsSong(t *testing.T) {
	rows := &fakeRows{}
	rows.addGenre(1, "Metal", 1, 2)
	rows.addGenre(2, "Rock", 2, 3)
	rows.addGenre(3, "Industrial", 1)

	songs := songsOf(t, rawSong(1, "A", "X", "Y"), rawSong(2, "B", "X", "Y"), rawSong(3, "C", "X", "Y"))
	genres, stats, err := resolveGenres(context.Background(), rows, songs, "?")
	require.NoError(t, err)

	require.Len(t, genres, 2)
	assert.Equal(t, []int64{1, 2}, songIDs(genres[0].Songs))
	assert.Equal(t, []int64{3}, songIDs(genres[1].Songs))
	assert.Equal(t, 1, stats.Phantom)
}

func TestResolveGenres_QueryErrors(t *testing.T) {
	boom := errors.New("boom")
	songs := songsOf(t, rawSong(1, "A", "X", "Y"))

	_, _, err := resolveGenres(context.Background(), &fakeRows{genresErr: boom}, songs, "?")
	assert.ErrorIs(t, err, boom)

	rows := &fakeRows{membersErr: boom}
	rows.addGenre(1, "Metal", 1)
	_, _, err = resolveGenres(context.Background(), rows, songs, "?")
	assert.ErrorIs(t, err, boom)
}

func TestID3GenreName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"0", "Blues", true},
		{"17", "Rock", true},
		{"(17)", "Rock", true},
		{" (79) ", "Hard Rock", true},
		{"80", "Folk", true},
		{"191", "Psybient", true},
		{"192", "", false},
		{"(RX)", "Remix", true},
		{"(CR)", "Cover", true},
		{"17a", "", false},
		{"(17)Rock", "", false},
		{"-1", "", false},
		{"()", "", false},
		{"", "", false},
		{"Rock", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := id3GenreName(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, id3Genres, 192)
}
