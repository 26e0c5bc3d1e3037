package mediastore

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	dbutil "github.com/llehouerou/shoal/internal/db"
	"github.com/llehouerou/shoal/internal/tags"
)

// processed is the result of reading one file.
type processed struct {
	file fileInfo
	info *tags.FileInfo
}

// processFiles reads tags with a bounded worker pool, then writes every result
// in a single transaction (sqlite serializes writers anyway).
func (s *Scanner) processFiles(
	ctx context.Context,
	files []fileInfo,
	isNew map[string]bool,
	stats *ScanStats,
	report func(ScanProgress),
) error {
	total := len(files)
	var done atomic.Int64
	results := make([]processed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				report(ScanProgress{Phase: PhaseProcessing, Current: int(done.Load()), Total: total})
			case <-stop:
				return
			}
		}
	}()

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processed{file: f, info: s.read(f.path)}
			done.Add(1)
			return nil
		})
	}
	err := g.Wait()
	close(stop)
	if err != nil {
		return err
	}
	report(ScanProgress{Phase: PhaseProcessing, Current: total, Total: total})

	return dbutil.WithTx(ctx, s.store.db, func(tx *sql.Tx) error {
		for _, r := range results {
			if _, err := Upsert(ctx, tx, entryFrom(r)); err != nil {
				return err
			}
			src := stats.BySource[r.file.source]
			if src == nil {
				continue
			}
			rel := relativePath(r.file.source, r.file.path)
			if isNew[r.file.path] {
				src.Added = append(src.Added, rel)
			} else {
				src.Updated = append(src.Updated, rel)
			}
		}
		return nil
	})
}

func entryFrom(r processed) Entry {
	info := r.info
	if info == nil {
		info = &tags.FileInfo{}
	}
	return Entry{
		Path:        r.file.path,
		Mtime:       r.file.mtime,
		Title:       info.Title,
		Artist:      info.Artist,
		AlbumArtist: info.AlbumArtist,
		Album:       info.Album,
		Genre:       info.Genre,
		Track:       info.TrackNumber,
		Year:        info.Year(),
		Duration:    info.Duration,
		IsMusic:     IsMusicPath(r.file.path),
	}
}
