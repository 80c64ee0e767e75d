// Package app assembles the catalog service from configuration. It is shared
// by the HTTP server and the command line tool so both serve the same
// snapshot for the same settings.
package app

import (
	"context"
	"errors"
	"io/fs"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/config"
	"github.com/tbourn/go-taxcode-search/internal/observability"
	"github.com/tbourn/go-taxcode-search/internal/repo"
	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
)

// App is a loaded catalog ready to serve.
type App struct {
	Service *services.CatalogService
	// DB is the catalog store; nil with the memory store.
	DB *gorm.DB
}

// Open loads the catalog document (when present), bootstraps the configured
// store and builds the catalog service. With the sqlite store a missing
// document is not an error as long as a catalog was imported before.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	doc, err := loadDocument(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	if cfg.Catalog.Store == services.StoreSQLite {
		if db, err = repo.OpenCatalogStore(cfg.DBPath); err != nil {
			return nil, err
		}
	}

	snap, err := services.Bootstrap(ctx, doc, services.BootstrapOptions{Store: cfg.Catalog.Store, DB: db})
	if err != nil {
		_ = repo.Close(db)
		return nil, err
	}

	svc := services.NewCatalogService(search.New(cfg.Search.EngineOptions()...), snap)
	svc.MaxQueryRunes = cfg.Search.MaxQueryRunes
	svc.HighlightColor = cfg.Search.HighlightColor

	observability.SetCatalogInfo(svc.Version(), len(snap.Items))
	log.Info().
		Str("store", cfg.Catalog.Store).
		Str("version", svc.Version()).
		Int("items", len(snap.Items)).
		Bool("imported", snap.Imported).
		Msg("catalog loaded")

	return &App{Service: svc, DB: db}, nil
}

// Close releases the catalog store.
func (a *App) Close() {
	if err := repo.Close(a.DB); err != nil {
		log.Warn().Err(err).Msg("close catalog store")
	}
}

func loadDocument(cfg config.CatalogConfig) (*catalog.Document, error) {
	doc, err := catalog.LoadFile(cfg.Path)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, fs.ErrNotExist) && cfg.Store == services.StoreSQLite:
		log.Warn().Str("path", cfg.Path).Msg("catalog document not found; serving stored catalog")
		return nil, nil
	default:
		return nil, err
	}
}
