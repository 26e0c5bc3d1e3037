// Package metrics defines the Prometheus collectors of the indexer. All metric
// names are prefixed with "shoal_".
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes recorded in LoadsTotal.
const (
	OutcomeLoaded       = "loaded"
	OutcomeEmpty        = "empty"
	OutcomeUnavailable  = "unavailable"
	OutcomeInconsistent = "inconsistent"
)

// Reasons a raw row does not become part of the library.
const (
	ReasonMalformed = "malformed"
	ReasonDuplicate = "duplicate"
	ReasonPhantom   = "phantom_genre"
	ReasonNameless  = "nameless_genre"
)

// Loader metrics
var (
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoal_loads_total",
			Help: "Total number of library loads by outcome",
		},
		[]string{"outcome"},
	)

	LoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shoal_load_duration_seconds",
			Help:    "Duration of library loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoal_rows_dropped_total",
			Help: "Total number of index rows dropped while loading, by reason",
		},
		[]string{"reason"},
	)

	LibraryItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shoal_library_items",
			Help: "Number of items in the current library by kind",
		},
		[]string{"kind"},
	)
)

// Index metrics
var (
	IndexScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shoal_index_scans_total",
			Help: "Total number of media index refreshes",
		},
	)

	IndexFilesChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoal_index_files_changed_total",
			Help: "Total number of files added, updated or removed by index refreshes",
		},
		[]string{"change"},
	)
)

// SetLibraryItems records the size of the current library.
func SetLibraryItems(songs, albums, artists, genres int) {
	LibraryItems.WithLabelValues("songs").Set(float64(songs))
	LibraryItems.WithLabelValues("albums").Set(float64(albums))
	LibraryItems.WithLabelValues("artists").Set(float64(artists))
	LibraryItems.WithLabelValues("genres").Set(float64(genres))
}
