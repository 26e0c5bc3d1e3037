// Package i18n provides the localized fallback names shown for songs the
// media index has no artist or genre for.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	keyUnknownArtist = "Unknown Artist"
	keyUnknownGenre  = "Unknown Genre"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		keyUnknownArtist: "Unknown Artist",
		keyUnknownGenre:  "Unknown Genre",
	},
	language.French: {
		keyUnknownArtist: "Artiste inconnu",
		keyUnknownGenre:  "Genre inconnu",
	},
	language.German: {
		keyUnknownArtist: "Unbekannter Künstler",
		keyUnknownGenre:  "Unbekanntes Genre",
	},
	language.Spanish: {
		keyUnknownArtist: "Artista desconocido",
		keyUnknownGenre:  "Género desconocido",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(cat.Languages())
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// Only fails for malformed messages; every entry here is a plain string
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Localizer resolves fallback names in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a localizer for the closest supported match of lang, a BCP 47 tag
// such as "fr" or "de-AT". Unparsable or unsupported tags fall back to English.
func New(lang string) *Localizer {
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		matched, _, conf := matcher.Match(parsed)
		if conf != language.No {
			base, _ := matched.Base()
			tag = language.Make(base.String())
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Language returns the resolved language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// UnknownArtist is the display name of the artist bucket for songs without one.
func (l *Localizer) UnknownArtist() string {
	return l.printer.Sprintf(keyUnknownArtist)
}

// UnknownGenre is the display name of the genre holding songs without one.
func (l *Localizer) UnknownGenre() string {
	return l.printer.Sprintf(keyUnknownGenre)
}
