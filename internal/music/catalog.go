package music

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Provider gives consumers such as playback the current library.
type Provider interface {
	// Library returns the current snapshot, or nil when nothing is loaded.
	Library() *Library
}

// LibraryLoader produces a library. *Loader implements it.
type LibraryLoader interface {
	Load(ctx context.Context) (Result, error)
}

// Catalog holds the current library and serializes reloads.
type Catalog struct {
	loader  LibraryLoader
	current atomic.Pointer[Library]
	group   singleflight.Group
}

var _ Provider = (*Catalog)(nil)

// NewCatalog creates an empty catalog.
func NewCatalog(loader LibraryLoader) *Catalog {
	return &Catalog{loader: loader}
}

// Library returns the current snapshot, or nil.
func (c *Catalog) Library() *Library {
	return c.current.Load()
}

// Reload runs the loader and publishes its library. Concurrent calls share one
// load, which runs with the context of the first caller. A failed load keeps
// the previous library; an empty index clears it.
func (c *Catalog) Reload(ctx context.Context) (Result, error) {
	v, err, _ := c.group.Do("load", func() (any, error) {
		res, err := c.loader.Load(ctx)
		if err != nil {
			return res, err
		}
		c.current.Store(res.Library)
		return res, nil
	})
	res, _ := v.(Result)
	return res, err
}
