package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupArtists_CaseInsensitiveMerge(t *testing.T) {
	songs := songsOf(t,
		rawSong(1, "Du Hast", "Sehnsucht", "Rammstein"),
		rawSong(2, "Sonne", "Mutter", "RAMMSTEIN"),
		rawSong(3, "Amerika", "Reise, Reise", "rammstein"),
	)
	albums := groupAlbums(songs, "")

	artists := groupArtists(albums, "No Artist")

	require.Len(t, artists, 1)
	assert.Equal(t, Known("Rammstein"), artists[0].Name)
	assert.Equal(t, "Rammstein", artists[0].DisplayName)
	require.Len(t, artists[0].Albums, 3)
	assert.Equal(t, "Sehnsucht", artists[0].Albums[0].Name)
	assert.Equal(t, "Mutter", artists[0].Albums[1].Name)
	assert.Equal(t, "Reise, Reise", artists[0].Albums[2].Name)
}

func TestGroupArtists_UnknownBucket(t *testing.T) {
	songs := songsOf(t,
		rawSong(1, "A", "Demo 1", UnknownSentinel),
		rawSong(2, "B", "Demo 2", ""),
		rawSong(3, "C", "Mutter", "Rammstein"),
	)
	albums := groupAlbums(songs, "")

	artists := groupArtists(albums, "No Artist")

	require.Len(t, artists, 2)
	unknown := artists[0]
	assert.False(t, unknown.Name.IsKnown())
	assert.Equal(t, "No Artist", unknown.DisplayName)
	assert.Len(t, unknown.Albums, 2)
}

func TestGroupArtists_ArtistNamedUnknownIsNotTheUnknownBucket(t *testing.T) {
	songs := songsOf(t,
		rawSong(1, "A", "X", "Unknown"),
		rawSong(2, "B", "Y", UnknownSentinel),
	)

	artists := groupArtists(groupAlbums(songs, ""), "Unknown")

	assert.Len(t, artists, 2)
}

func TestGroupArtists_EveryAlbumClaimedOnce(t *testing.T) {
	songs := songsOf(t,
		rawSong(1, "A", "X", "p"), rawSong(2, "B", "Y", "P"),
		rawSong(3, "C", "Z", "q"), rawSong(4, "D", "W", ""),
	)
	albums := groupAlbums(songs, "")

	artists := groupArtists(albums, "?")

	claims := make(map[*Album]int)
	for _, ar := range artists {
		for _, a := range ar.Albums {
			claims[a]++
		}
	}
	for _, a := range albums {
		assert.Equal(t, 1, claims[a], "album %q", a.Name)
	}
	assert.Len(t, artists, 3)
}
