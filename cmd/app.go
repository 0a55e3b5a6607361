package cmd

import (
	"context"
	"log"

	"github.com/jsphweid/diatonicpad/config"
	"github.com/jsphweid/diatonicpad/library"
	"github.com/jsphweid/diatonicpad/playback"
	"github.com/jsphweid/diatonicpad/session"
	"github.com/jsphweid/diatonicpad/store"
	"github.com/jsphweid/diatonicpad/voice"
)

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store.Kind != config.StoreDynamoDB {
		return store.NewFile(cfg.DataFile), nil
	}
	d, err := store.NewDynamo(cfg.Store.DynamoEndpoint, cfg.Store.DynamoRegion, cfg.Store.DynamoTable)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureTable(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// newPlayer falls back to silent playback when no audio device is usable.
func newPlayer(cfg *config.Config, lib *library.Library) (voice.Player, func()) {
	if cfg.Playback == config.PlaybackSpeaker {
		sp, err := playback.NewSpeaker(lib)
		if err == nil {
			return sp, sp.Close
		}
		log.Printf("Warning: %v, continuing without sound", err)
	}
	return playback.NewNull(lib), func() {}
}

// App is a session wired to the configured library, player and store.
type App struct {
	Library *library.Library
	Session *session.Session
	close   func()
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	lib := library.New(cfg.AssetsDir)
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	player, closePlayer := newPlayer(cfg, lib)
	s := session.New(voice.NewPool(player, lib), lib, session.Options{
		Store:     st,
		ExportDir: cfg.ExportDir,
		Autosave:  cfg.Autosave(),
	})
	go s.Run(ctx)

	return &App{
		Library: lib,
		Session: s,
		close: func() {
			s.Close()
			closePlayer()
		},
	}, nil
}

func (a *App) Close() {
	a.close()
}
