package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/llehouerou/shoal/internal/music"
)

func TestLocalizer(t *testing.T) {
	tests := []struct {
		lang   string
		tag    language.Tag
		artist string
		genre  string
	}{
		{"en", language.English, "Unknown Artist", "Unknown Genre"},
		{"fr", language.French, "Artiste inconnu", "Genre inconnu"},
		{"de-AT", language.German, "Unbekannter Künstler", "Unbekanntes Genre"},
		{"es-419", language.Spanish, "Artista desconocido", "Género desconocido"},
		{"ja", language.English, "Unknown Artist", "Unknown Genre"},
		{"not a tag!", language.English, "Unknown Artist", "Unknown Genre"},
		{"", language.English, "Unknown Artist", "Unknown Genre"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			l := New(tt.lang)
			assert.Equal(t, tt.tag, l.Language())
			assert.Equal(t, tt.artist, l.UnknownArtist())
			assert.Equal(t, tt.genre, l.UnknownGenre())
		})
	}
}

func TestLocalizer_IsLoaderNames(t *testing.T) {
	var _ music.Names = New("en")
}
