package music

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TitleFallsBackToFileName(t *testing.T) {
	r := rawSong(1, "", "Mutter", "Rammstein")
	r.DisplayName = str("01 - Mein Herz brennt.flac")

	songs, stats := normalize([]RawSong{r})

	require.Len(t, songs, 1)
	assert.Equal(t, "01 - Mein Herz brennt.flac", songs[0].Title)
	assert.Equal(t, "01 - Mein Herz brennt.flac", songs[0].FileName)
	assert.Zero(t, stats.Malformed)
}

func TestNormalize_UnknownSentinel(t *testing.T) {
	r := withAlbumArtist(rawSong(1, "Intro", "Demo", UnknownSentinel), UnknownSentinel)

	songs, _ := normalize([]RawSong{r})

	require.Len(t, songs, 1)
	assert.False(t, songs[0].Artist.IsKnown())
	assert.False(t, songs[0].AlbumArtist.IsKnown())
	assert.Equal(t, groupKey{album: "demo"}, songs[0].key)
}

func TestNormalize_DropsMalformedRows(t *testing.T) {
	noID := rawSong(0, "A", "X", "Y")
	noID.ID = sql.NullInt64{}
	noDuration := rawSong(2, "B", "X", "Y")
	noDuration.Duration = sql.NullInt64{}
	ok := rawSong(3, "C", "X", "Y")

	songs, stats := normalize([]RawSong{noID, noDuration, ok})

	assert.Equal(t, []int64{3}, songIDs(songs))
	assert.Equal(t, 2, stats.Malformed)
}

func TestNormalize_Fields(t *testing.T) {
	r := withYear(withAlbumArtist(rawSong(7, "Sonne", "Mutter", "Rammstein"), "Rammstein"), 2001)
	r.Track = num(2)
	r.AlbumID = num(42)
	r.Duration = num(272500)

	songs, _ := normalize([]RawSong{r})

	require.Len(t, songs, 1)
	s := songs[0]
	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "Sonne", s.Title)
	assert.Equal(t, 2, s.Track)
	assert.Equal(t, int64(42), s.AlbumID)
	assert.Equal(t, 2001, s.Year)
	assert.Equal(t, 272500*time.Millisecond, s.Duration)
	assert.Equal(t, Known("Rammstein"), s.EffectiveArtist())
}

func TestNormalize_NonPositiveTrackIsAbsent(t *testing.T) {
	r := rawSong(1, "A", "X", "Y")
	r.Track = num(-1)

	songs, _ := normalize([]RawSong{r})

	assert.Zero(t, songs[0].Track)
}

func TestNormalize_Deduplicates(t *testing.T) {
	first := rawSong(1, "Du Hast", "Sehnsucht", "Rammstein")
	second := rawSong(2, "Du Hast", "Sehnsucht", "Rammstein")
	second.AlbumID = num(99)
	otherTrack := rawSong(3, "Du Hast", "Sehnsucht", "Rammstein")
	otherTrack.Track = num(5)
	otherDuration := rawSong(4, "Du Hast", "Sehnsucht", "Rammstein")
	otherDuration.Duration = num(1000)

	songs, stats := normalize([]RawSong{first, second, otherTrack, otherDuration})

	assert.Equal(t, []int64{1, 3, 4}, songIDs(songs))
	assert.Equal(t, 1, stats.Duplicates)
}

func TestNormalize_WhitespaceVariantArtistsAreDistinct(t *testing.T) {
	plain := rawSong(1, "Sonne", "Mutter", "Rammstein")
	padded := rawSong(2, "Sonne", "Mutter", "Rammstein ")
	paddedAlbumArtist := withAlbumArtist(rawSong(3, "Sonne", "Mutter", "Rammstein"), " Rammstein")

	songs, stats := normalize([]RawSong{plain, padded, paddedAlbumArtist})

	assert.Equal(t, []int64{1, 2, 3}, songIDs(songs))
	assert.Zero(t, stats.Duplicates)
	assert.Equal(t, "Rammstein ", songs[1].Artist.String())
}

func TestNormalize_SentinelAndNullArtistAreDuplicates(t *testing.T) {
	a := rawSong(1, "Track", "Album", UnknownSentinel)
	b := rawSong(2, "Track", "Album", "")

	songs, stats := normalize([]RawSong{a, b})

	assert.Equal(t, []int64{1}, songIDs(songs))
	assert.Equal(t, 1, stats.Duplicates)
}

func TestNormalize_NoTwoSongsShareDedupTuple(t *testing.T) {
	var rows []RawSong
	for i := int64(1); i <= 30; i++ {
		rows = append(rows, rawSong(i, []string{"a", "b", "c"}[i%3], "Album", []string{"X", "x"}[i%2]))
	}

	songs, stats := normalize(rows)

	seen := make(map[dedupKey]bool)
	for _, s := range songs {
		k := dedupKey{s.Title, s.Album, s.Artist, s.AlbumArtist, s.Track, s.Duration}
		assert.False(t, seen[k], "duplicate tuple for song %d", s.ID)
		seen[k] = true
	}
	assert.Len(t, songs, 6)
	assert.Equal(t, 24, stats.Duplicates)
}
