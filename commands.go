package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/shoal/internal/errmsg"
	"github.com/llehouerou/shoal/internal/mediastore"
	"github.com/llehouerou/shoal/internal/metrics"
	"github.com/llehouerou/shoal/internal/music"
	"github.com/llehouerou/shoal/internal/state"
	"github.com/llehouerou/shoal/internal/watch"
)

func (a *app) scanCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	full := fs.Bool("full", false, "Re-read every file, ignoring modification times")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := a.refresh(ctx, *full)
	if err != nil {
		return err
	}
	fmt.Println(renderScan(stats))
	return nil
}

// refresh brings the media index in sync with the library sources.
func (a *app) refresh(ctx context.Context, full bool) (*mediastore.ScanStats, error) {
	if len(a.cfg.LibrarySources) == 0 {
		return nil, fail(errmsg.OpIndexScan, mediastore.ErrNoSources)
	}
	scanner, err := a.scanner()
	if err != nil {
		return nil, err
	}

	progress := make(chan mediastore.ScanProgress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			log.Debug().Str("phase", p.Phase).Int("current", p.Current).Int("total", p.Total).Msg("scan progress")
		}
	}()

	refresh := scanner.Refresh
	if full {
		refresh = scanner.FullRefresh
	}
	stats, err := refresh(ctx, a.cfg.LibrarySources, progress)
	<-done
	if err != nil {
		return nil, fail(errmsg.OpIndexScan, err)
	}

	metrics.IndexScansTotal.Inc()
	for _, src := range stats.BySource {
		metrics.IndexFilesChanged.WithLabelValues("added").Add(float64(len(src.Added)))
		metrics.IndexFilesChanged.WithLabelValues("updated").Add(float64(len(src.Updated)))
		metrics.IndexFilesChanged.WithLabelValues("removed").Add(float64(len(src.Removed)))
	}
	return stats, nil
}

func (a *app) loadCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	showArtists := fs.Bool("artists", false, "List artists and their albums")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loader, err := a.loader()
	if err != nil {
		return err
	}
	res, err := loader.Load(ctx)
	if err != nil {
		return fail(errmsg.OpLibraryLoad, err)
	}
	if res.Empty() {
		fmt.Println(renderEmpty(res.Stats))
		return nil
	}

	var indexSize int64
	if path, err := a.cfg.GetIndexPath(); err == nil {
		if info, err := os.Stat(path); err == nil {
			indexSize = info.Size()
		}
	}
	fmt.Println(renderLibrary(res, indexSize))

	if st, err := a.openState(); err == nil {
		if resume := resumePoint(res.Library, st); resume != "" {
			fmt.Println(resume)
		}
	}
	if *showArtists {
		fmt.Println(renderArtists(res.Library))
	}
	return nil
}

// resumePoint describes where playback would resume, if the song still exists.
func resumePoint(lib *music.Library, st state.Interface) string {
	pb, err := st.GetPlayback()
	if err != nil || pb == nil {
		return ""
	}
	song, ok := lib.Song(pb.SongID)
	if !ok {
		log.Debug().Int64("song_id", pb.SongID).Msg("saved playback song is no longer in the library")
		return ""
	}
	return renderResume(song, lib.AlbumOf(song), pb.Position, pb.UpdatedAt)
}

func (a *app) excludeCmd(ctx context.Context, args []string) error {
	store, err := a.exclusions()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		paths, err := store.Paths(ctx)
		if err != nil {
			return fail(errmsg.OpExcludeList, err)
		}
		fmt.Println(renderExcluded(paths))
	case "add":
		if len(args) != 2 {
			return errors.New("usage: shoal exclude add <path>")
		}
		if err := store.Add(ctx, args[1]); err != nil {
			return failWith(errmsg.OpExcludeAdd, args[1], err)
		}
		log.Info().Str("path", args[1]).Msg("path excluded")
	case "remove":
		if len(args) != 2 {
			return errors.New("usage: shoal exclude remove <path>")
		}
		removed, err := store.Remove(ctx, args[1])
		if err != nil {
			return failWith(errmsg.OpExcludeRemove, args[1], err)
		}
		if !removed {
			log.Warn().Str("path", args[1]).Msg("path was not excluded")
		}
	default:
		return fmt.Errorf("unknown exclude command %q", args[0])
	}
	return nil
}

func (a *app) watchCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(a.cfg.LibrarySources) == 0 {
		return fail(errmsg.OpWatchStart, mediastore.ErrNoSources)
	}

	loader, err := a.loader()
	if err != nil {
		return err
	}
	catalog := music.NewCatalog(loader)

	// Debounced callbacks may overlap with a slow rescan
	var mu sync.Mutex
	update := func() {
		mu.Lock()
		defer mu.Unlock()

		if _, err := a.refresh(ctx, false); err != nil {
			log.Error().Err(err).Msg("rescan failed")
			return
		}
		res, err := catalog.Reload(ctx)
		if err != nil {
			log.Error().Err(err).Msg(errmsg.Format(errmsg.OpLibraryReload, err))
			return
		}
		log.Info().
			Int("songs", res.Stats.Songs).
			Int("albums", res.Stats.Albums).
			Int("artists", res.Stats.Artists).
			Int("genres", res.Stats.Genres).
			Msg("library reloaded")
	}

	w, err := watch.New(a.cfg.GetDebounce(), update)
	if err != nil {
		return fail(errmsg.OpWatchStart, err)
	}
	defer w.Close()
	for _, src := range a.cfg.LibrarySources {
		if err := w.Add(src); err != nil {
			return failWith(errmsg.OpWatchStart, src, err)
		}
	}

	if *metricsAddr != "" {
		srv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info().Str("addr", *metricsAddr).Msg("serving metrics")
	}

	update()
	log.Info().Strs("sources", a.cfg.LibrarySources).Msg("watching library sources")
	return w.Run(ctx)
}
