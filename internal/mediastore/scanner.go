package mediastore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	dbutil "github.com/llehouerou/shoal/internal/db"
	"github.com/llehouerou/shoal/internal/tags"
)

const defaultWorkers = 8

// Scan phases reported through ScanProgress.
const (
	PhaseScanning   = "scanning"
	PhaseProcessing = "processing"
	PhaseCleaning   = "cleaning"
	PhaseDone       = "done"
)

// ScanProgress reports the progress of an index refresh.
type ScanProgress struct {
	Phase   string
	Current int
	Total   int
	Stats   *ScanStats // Only populated when Phase == PhaseDone
}

// ScanStats holds statistics for a completed refresh.
type ScanStats struct {
	BySource map[string]*SourceStats // keyed by source path
}

// SourceStats holds per-source refresh statistics.
type SourceStats struct {
	Added   []string // relative paths of added files
	Removed []string // relative paths of removed files
	Updated []string // relative paths of updated files (mtime changed)
}

// Changed reports whether the refresh touched the index at all.
func (s *ScanStats) Changed() bool {
	for _, src := range s.BySource {
		if len(src.Added)+len(src.Removed)+len(src.Updated) > 0 {
			return true
		}
	}
	return false
}

// fileInfo holds information about a discovered music file.
type fileInfo struct {
	path   string
	mtime  int64
	source string
}

// ReadFunc reads the tags and duration of one file.
type ReadFunc func(path string) *tags.FileInfo

// Scanner keeps the media index in sync with the files under the library sources.
type Scanner struct {
	store   *Store
	workers int
	read    ReadFunc
}

// NewScanner creates a scanner writing to store. workers <= 0 selects the default.
func NewScanner(store *Store, workers int) *Scanner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Scanner{store: store, workers: workers, read: tags.ReadWithDuration}
}

// WithReader replaces the tag reader. Used by tests to avoid real audio files.
func (s *Scanner) WithReader(read ReadFunc) *Scanner {
	s.read = read
	return s
}

// Refresh performs an incremental scan of the given source directories.
// progress may be nil; when set it is closed on return.
func (s *Scanner) Refresh(ctx context.Context, sources []string, progress chan<- ScanProgress) (*ScanStats, error) {
	return s.refresh(ctx, sources, progress, false)
}

// FullRefresh rescans all files, ignoring modification times.
func (s *Scanner) FullRefresh(ctx context.Context, sources []string, progress chan<- ScanProgress) (*ScanStats, error) {
	return s.refresh(ctx, sources, progress, true)
}

func (s *Scanner) refresh(
	ctx context.Context,
	sources []string,
	progress chan<- ScanProgress,
	forceRescan bool,
) (*ScanStats, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p ScanProgress) {
		if progress != nil {
			progress <- p
		}
	}

	stats := &ScanStats{BySource: make(map[string]*SourceStats)}
	for _, src := range sources {
		stats.BySource[src] = &SourceStats{}
	}

	// Phase 1: walk the sources
	report(ScanProgress{Phase: PhaseScanning})
	files, discovered, err := discoverFiles(ctx, sources, report)
	if err != nil {
		return nil, err
	}

	// Phase 2: compare against what the index already holds
	existing, err := Mtimes(ctx, s.store.db, sources)
	if err != nil {
		return nil, err
	}

	toProcess := make([]fileInfo, 0, len(files))
	isNew := make(map[string]bool)
	for _, f := range files {
		mtime, existed := existing[f.path]
		if !forceRescan && existed && mtime == f.mtime {
			continue
		}
		isNew[f.path] = !existed
		toProcess = append(toProcess, f)
	}

	// Phase 3: read tags in parallel and write the results
	if len(toProcess) > 0 {
		if err := s.processFiles(ctx, toProcess, isNew, stats, report); err != nil {
			return nil, err
		}
	}

	// Phase 4: drop files that disappeared
	report(ScanProgress{Phase: PhaseCleaning})
	err = dbutil.WithTx(ctx, s.store.db, func(tx *sql.Tx) error {
		for path := range existing {
			if _, ok := discovered[path]; ok {
				continue
			}
			if err := DeleteByPath(ctx, tx, path); err != nil {
				return err
			}
			if src := sourceOf(sources, path); src != "" {
				stats.BySource[src].Removed = append(stats.BySource[src].Removed, relativePath(src, path))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("files", len(files)).
		Int("processed", len(toProcess)).
		Msg("media index refreshed")

	report(ScanProgress{Phase: PhaseDone, Current: len(files), Total: len(files), Stats: stats})
	return stats, nil
}

// ErrNoSources is returned by callers that require at least one library source.
var ErrNoSources = errors.New("no library sources configured")
