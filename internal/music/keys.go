package music

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold returns the case-insensitive comparison form of s. Composed and
// decomposed spellings of the same accented letter fold to the same form.
// cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// artistKey identifies an artist regardless of the casing of its name.
// Unknown artists share the zero key.
type artistKey struct {
	name  string
	known bool
}

func keyOfName(n Name) artistKey {
	v, ok := n.Value()
	if !ok {
		return artistKey{}
	}
	return artistKey{name: fold(v), known: true}
}

// groupKey is the grouping identity of a song: its effective artist and album
// name, both case-folded. Songs sharing a key belong to one album.
type groupKey struct {
	artist artistKey
	album  string
}

func (k groupKey) String() string {
	artist := UnknownSentinel
	if k.artist.known {
		artist = k.artist.name
	}
	return artist + " / " + k.album
}
