package music

// groupArtists merges albums into artists keyed by case-folded artist name.
// The first album seen for a key fixes the artist's name; albums of later
// casings are appended to it.
func groupArtists(albums []*Album, unknownArtist string) []*Artist {
	byKey := make(map[artistKey]*Artist)
	var artists []*Artist

	for _, a := range albums {
		k := a.key.artist
		if artist, ok := byKey[k]; ok {
			artist.Albums = append(artist.Albums, a)
			continue
		}

		artist := &Artist{
			Name:        a.Artist,
			DisplayName: displayArtist(a.Artist, unknownArtist),
			Albums:      []*Album{a},
		}
		byKey[k] = artist
		artists = append(artists, artist)
	}
	return artists
}

func displayArtist(n Name, unknown string) string {
	if v, ok := n.Value(); ok {
		return v
	}
	return unknown
}
