package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata from a music file.
// Unlike a player, it does not substitute defaults: a missing title or album
// artist stays empty so the index can record it as absent.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readID3v2(path)
		case ExtM4A, ExtMP4, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA:
			return readTaglib(path)
		}
		return nil, err
	}

	track, _ := m.Track()
	return &Tag{
		Path:        path,
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		AlbumArtist: strings.TrimSpace(m.AlbumArtist()),
		Album:       strings.TrimSpace(m.Album()),
		Genre:       strings.TrimSpace(m.Genre()),
		TrackNumber: track,
		Date:        yearToDate(m.Year()),
	}, nil
}

// ReadWithDuration reads tag metadata and probes the stream duration.
// A file whose tags cannot be read still yields a FileInfo with only Path set,
// matching how a media index keeps untagged files.
func ReadWithDuration(path string) *FileInfo {
	t, err := Read(path)
	if err != nil {
		t = &Tag{Path: path}
	}
	info := &FileInfo{Tag: *t}
	if d, err := ReadDuration(path); err == nil {
		info.Duration = d
	}
	return info
}

// readID3v2 reads MP3 metadata using only the id3v2 library.
func readID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, _ := parseNumberPair(id3TextFrame(id3tag, "TRCK"))

	date := ""
	if y := id3tag.Year(); len(y) >= 4 {
		date = y[:4]
	}
	if date == "" {
		if tdrc := id3TextFrame(id3tag, "TDRC"); len(tdrc) >= 4 {
			date = tdrc[:4]
		}
	}

	return &Tag{
		Path:        path,
		Title:       strings.TrimSpace(id3tag.Title()),
		Artist:      strings.TrimSpace(id3tag.Artist()),
		AlbumArtist: strings.TrimSpace(id3TextFrame(id3tag, "TPE2")),
		Album:       strings.TrimSpace(id3tag.Album()),
		Genre:       strings.TrimSpace(id3tag.Genre()),
		TrackNumber: track,
		Date:        date,
	}, nil
}

// id3TextFrame reads a text frame value from an ID3v2 tag.
func id3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// readTaglib reads metadata through TagLib, used when dhowden/tag fails on
// FLAC, Ogg or MP4 containers.
func readTaglib(path string) (*Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tt := taglibTags(raw)
	track, _ := parseNumberPair(tt.get(taglib.TrackNumber))
	date := tt.get(taglib.Date)
	if len(date) > 10 {
		date = date[:10]
	}

	return &Tag{
		Path:        path,
		Title:       tt.get(taglib.Title),
		Artist:      tt.get(taglib.Artist),
		AlbumArtist: tt.get(taglib.AlbumArtist),
		Album:       tt.get(taglib.Album),
		Genre:       tt.get(taglib.Genre),
		TrackNumber: track,
		Date:        date,
	}, nil
}

// taglibTags wraps a taglib result map.
type taglibTags map[string][]string

// get returns the first trimmed value for the key, or empty string if not found.
func (t taglibTags) get(key string) string {
	if values, ok := t[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}
