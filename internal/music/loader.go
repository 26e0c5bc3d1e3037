package music

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/shoal/internal/metrics"
)

// Exclusions returns the path prefixes whose files are left out of the library.
type Exclusions interface {
	Paths(ctx context.Context) ([]string, error)
}

// Names supplies the display names of the unknown artist and genre.
type Names interface {
	UnknownArtist() string
	UnknownGenre() string
}

type defaultNames struct{}

func (defaultNames) UnknownArtist() string { return "Unknown Artist" }
func (defaultNames) UnknownGenre() string  { return "Unknown Genre" }

// Stats describes what a load kept and dropped.
type Stats struct {
	Rows              int // music rows returned by the index
	Malformed         int // rows without an id or duration
	Duplicates        int
	NamelessGenres    int
	PhantomGenres     int // genre rows left without members
	UnknownGenreSongs int

	Songs   int
	Albums  int
	Artists int
	Genres  int
}

// Result is the outcome of a successful load.
type Result struct {
	Library *Library // nil when the index holds no music
	Stats   Stats
}

// Empty reports whether the index held no music. This is not an error.
func (r Result) Empty() bool {
	return r.Library == nil
}

// Loader builds a Library from the media index.
// A Loader must not run Load concurrently with itself; see Catalog.
type Loader struct {
	rows       Rows
	exclusions Exclusions
	names      Names
	artBase    string
}

// NewLoader creates a loader. exclusions and names may be nil.
func NewLoader(rows Rows, exclusions Exclusions, names Names) *Loader {
	if names == nil {
		names = defaultNames{}
	}
	return &Loader{rows: rows, exclusions: exclusions, names: names, artBase: DefaultArtURIBase}
}

// WithArtURIBase sets the prefix of album cover locators.
func (l *Loader) WithArtURIBase(base string) *Loader {
	if base != "" {
		l.artBase = base
	}
	return l
}

// Load reads the index and groups its rows into a library.
// It fails with ErrExclusionsUnavailable, ErrIndexUnavailable or ErrInconsistent.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	start := time.Now()
	res, outcome, err := l.load(ctx)
	metrics.LoadsTotal.WithLabelValues(outcome).Inc()
	metrics.LoadDuration.Observe(time.Since(start).Seconds())
	return res, err
}

func (l *Loader) load(ctx context.Context) (Result, string, error) {
	var excluded []string
	if l.exclusions != nil {
		paths, err := l.exclusions.Paths(ctx)
		if err != nil {
			return Result{}, metrics.OutcomeUnavailable, ErrExclusionsUnavailable.withCause(err)
		}
		excluded = paths
	}

	raw, err := l.rows.Songs(ctx, excluded)
	if err != nil {
		return Result{}, metrics.OutcomeUnavailable, ErrIndexUnavailable.withCause(err)
	}

	var stats Stats
	stats.Rows = len(raw)

	songs, ns := normalize(raw)
	stats.Malformed = ns.Malformed
	stats.Duplicates = ns.Duplicates
	metrics.RowsDropped.WithLabelValues(metrics.ReasonMalformed).Add(float64(ns.Malformed))
	metrics.RowsDropped.WithLabelValues(metrics.ReasonDuplicate).Add(float64(ns.Duplicates))
	if ns.Malformed > 0 {
		log.Info().Int("malformed", ns.Malformed).Msg("dropped malformed index rows")
	}

	if len(songs) == 0 {
		log.Info().Int("rows", stats.Rows).Msg("no music found")
		return Result{Stats: stats}, metrics.OutcomeEmpty, nil
	}

	albums := groupAlbums(songs, l.artBase)
	artists := groupArtists(albums, l.names.UnknownArtist())

	genres, gs, err := resolveGenres(ctx, l.rows, songs, l.names.UnknownGenre())
	if err != nil {
		return Result{}, metrics.OutcomeUnavailable, ErrIndexUnavailable.withCause(err)
	}
	stats.NamelessGenres = gs.Nameless
	stats.PhantomGenres = gs.Phantom
	stats.UnknownGenreSongs = gs.Unclaimed
	metrics.RowsDropped.WithLabelValues(metrics.ReasonNameless).Add(float64(gs.Nameless))
	metrics.RowsDropped.WithLabelValues(metrics.ReasonPhantom).Add(float64(gs.Phantom))

	stats.Songs = len(songs)
	stats.Albums = len(albums)
	stats.Artists = len(artists)
	stats.Genres = len(genres)

	log.Debug().
		Int("rows", stats.Rows).
		Int("songs", stats.Songs).
		Int("duplicates", stats.Duplicates).
		Int("albums", stats.Albums).
		Int("artists", stats.Artists).
		Int("genres", stats.Genres).
		Int("phantom_genres", stats.PhantomGenres).
		Msg("library grouped")

	if v := Validate(songs, albums, artists, genres); !v.OK() {
		for _, violation := range v.Violations {
			log.Error().Str("violation", violation.String()).Msg("library invariant broken")
		}
		return Result{Stats: stats}, metrics.OutcomeInconsistent, inconsistent(v.Violations)
	}

	metrics.SetLibraryItems(stats.Songs, stats.Albums, stats.Artists, stats.Genres)
	return Result{Library: newLibrary(songs, albums, artists, genres), Stats: stats}, metrics.OutcomeLoaded, nil
}
