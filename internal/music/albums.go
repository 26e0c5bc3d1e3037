package music

import "strconv"

// DefaultArtURIBase is the cover art locator prefix; the album id is appended.
const DefaultArtURIBase = "content://media/external/audio/albumart"

// groupAlbums partitions songs by grouping identity, in order of first appearance.
//
// The index can split one album over several album ids (one per folder or per
// format), so the album id is not used for grouping. The representative song,
// the one with the highest year, supplies the album's name, year, cover art and
// artist; a year of 0 only wins when no member has a better one.
func groupAlbums(songs []*Song, artBase string) []*Album {
	index := make(map[groupKey]int)
	var groups [][]*Song

	for _, s := range songs {
		i, ok := index[s.key]
		if !ok {
			i = len(groups)
			index[s.key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s)
	}

	albums := make([]*Album, 0, len(groups))
	for _, members := range groups {
		rep := representative(members)
		albums = append(albums, &Album{
			Name:     rep.Album,
			Year:     rep.Year,
			CoverURI: coverURI(artBase, rep.AlbumID),
			Artist:   rep.EffectiveArtist(),
			Songs:    members,
			key:      rep.key,
		})
	}
	return albums
}

// representative returns the song with the highest year. Ties go to the first.
func representative(songs []*Song) *Song {
	rep := songs[0]
	for _, s := range songs[1:] {
		if s.Year > rep.Year {
			rep = s
		}
	}
	return rep
}

func coverURI(base string, albumID int64) string {
	if base == "" {
		base = DefaultArtURIBase
	}
	return base + "/" + strconv.FormatInt(albumID, 10)
}
