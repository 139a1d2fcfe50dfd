package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/blockpalettes/internal/collection"
	"github.com/samvad-hq/blockpalettes/internal/config"
	"github.com/samvad-hq/blockpalettes/internal/logger"
	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
	"github.com/samvad-hq/blockpalettes/pkg/httpclient"
)

// App bundles what the CLI commands need: the site client and the local palette collection.
type App struct {
	Config *config.Config
	Client *blockpalettes.Client
	Log    logger.Logger

	store      collection.Store
	openStore  func() (collection.Store, error)
	storeError error
}

// New wires an App from config. transport may be nil to use a resty client with the configured timeout.
func New(cfg *config.Config, log logger.Logger, transport httpclient.Client) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.HTTPTimeout)
	}

	client := blockpalettes.New(transport,
		blockpalettes.WithBaseURL(cfg.BaseURL),
		blockpalettes.WithHeaders(cfg.Headers()),
		blockpalettes.WithLogger(log),
	)
	log.DebugObj("client initialized", "client_config", map[string]any{
		"base_url":        cfg.BaseURL,
		"timeout_seconds": int(cfg.HTTPTimeout.Seconds()),
	})

	return &App{
		Config: cfg,
		Client: client,
		Log:    log,
		openStore: func() (collection.Store, error) {
			return collection.NewStore(cfg.CollectionType, cfg.CollectionPath)
		},
	}, nil
}

// Collection opens the palette collection on first use; commands that never touch it never create the file.
func (a *App) Collection() (collection.Store, error) {
	if a.store != nil || a.storeError != nil {
		return a.store, a.storeError
	}
	a.store, a.storeError = a.openStore()
	if a.storeError != nil {
		a.storeError = fmt.Errorf("open collection: %w", a.storeError)
		return nil, a.storeError
	}
	a.Log.DebugObj("collection opened", "collection_config", map[string]any{
		"type": a.Config.CollectionType,
		"path": a.Config.CollectionPath,
	})
	return a.store, nil
}

// SavePalette fetches id from the site and stores it in the collection.
func (a *App) SavePalette(ctx context.Context, id uint64) (collection.Entry, error) {
	store, err := a.Collection()
	if err != nil {
		return collection.Entry{}, err
	}
	details, err := a.Client.GetPalette(ctx, id)
	if err != nil {
		return collection.Entry{}, err
	}
	entry, err := store.Save(details)
	if err != nil {
		return collection.Entry{}, fmt.Errorf("save palette %d: %w", id, err)
	}
	a.Log.InfoObj("palette saved", "palette_saved", map[string]any{
		"palette_id": id,
		"blocks":     details.Blocks,
	})
	return entry, nil
}

// Close releases the collection, logging any errors encountered.
func (a *App) Close() {
	if a == nil || a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.Log.ErrorObj("collection close failed", "error", err)
	}
	a.store = nil
}
