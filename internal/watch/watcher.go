// Package watch reports changes under the library sources so the media index
// can be refreshed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/shoal/internal/tags"
)

// DefaultDebounce is the quiet window used when none is configured.
const DefaultDebounce = 2 * time.Second

// Watcher watches directory trees and calls onChange once per burst of
// relevant changes.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
}

// New creates a watcher. debounce <= 0 selects DefaultDebounce.
func New(debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{fs: fs, debouncer: NewDebouncer(debounce, onChange)}, nil
}

// Add watches root and every directory below it.
func (w *Watcher) Add(root string) error {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return w.addTree(root)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Str("path", p).Err(err).Msg("failed to access path")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(p); err != nil {
			log.Error().Str("path", p).Err(err).Msg("failed to add watch")
			return nil
		}
		log.Debug().Str("path", p).Msg("added watch")
		return nil
	})
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost, so assume something changed
				w.debouncer.Trigger()
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// New folders may already hold files copied in with them
			if err := w.addTree(event.Name); err != nil {
				log.Warn().Str("path", event.Name).Err(err).Msg("failed to watch new directory")
			}
			w.debouncer.Trigger()
			return
		}
	}

	// Removed or renamed entries may be directories, which have no extension
	if tags.IsMusicFile(event.Name) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("library change")
		w.debouncer.Trigger()
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fs.Close()
}
