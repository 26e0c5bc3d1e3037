package main

import (
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/shoal/internal/config"
	"github.com/llehouerou/shoal/internal/errmsg"
	"github.com/llehouerou/shoal/internal/excluded"
	"github.com/llehouerou/shoal/internal/i18n"
	"github.com/llehouerou/shoal/internal/mediastore"
	"github.com/llehouerou/shoal/internal/music"
	"github.com/llehouerou/shoal/internal/state"
)

// app opens the databases a command needs on first use.
type app struct {
	cfg   *config.Config
	index *mediastore.Store
	state *state.Manager
}

func newApp(cfg *config.Config) *app {
	return &app{cfg: cfg}
}

func (a *app) openIndex() (*mediastore.Store, error) {
	if a.index != nil {
		return a.index, nil
	}
	path, err := a.cfg.GetIndexPath()
	if err != nil {
		return nil, fail(errmsg.OpIndexOpen, err)
	}
	store, err := mediastore.Open(path)
	if err != nil {
		return nil, failWith(errmsg.OpIndexOpen, path, err)
	}
	log.Debug().Str("path", path).Msg("opened media index")
	a.index = store
	return store, nil
}

func (a *app) openState() (*state.Manager, error) {
	if a.state != nil {
		return a.state, nil
	}
	m, err := state.Open(a.cfg.StatePath)
	if err != nil {
		return nil, fail(errmsg.OpStateOpen, err)
	}
	a.state = m
	return m, nil
}

func (a *app) exclusions() (*excluded.Store, error) {
	m, err := a.openState()
	if err != nil {
		return nil, err
	}
	return excluded.New(m.DB()), nil
}

func (a *app) loader() (*music.Loader, error) {
	index, err := a.openIndex()
	if err != nil {
		return nil, err
	}
	excl, err := a.exclusions()
	if err != nil {
		return nil, err
	}
	names := i18n.New(a.cfg.GetLanguage())
	return music.NewLoader(music.NewRowSource(index.DB()), excl, names).
		WithArtURIBase(a.cfg.GetArtURIBase()), nil
}

func (a *app) scanner() (*mediastore.Scanner, error) {
	index, err := a.openIndex()
	if err != nil {
		return nil, err
	}
	return mediastore.NewScanner(index, a.cfg.GetScannerConfig().Workers), nil
}

func (a *app) close() {
	if a.index != nil {
		if err := a.index.Close(); err != nil {
			log.Warn().Err(err).Msg("close media index")
		}
	}
	if a.state != nil {
		if err := a.state.Close(); err != nil {
			log.Warn().Err(err).Msg("close state")
		}
	}
}
