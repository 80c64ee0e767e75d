// Package services – catalog bootstrap
//
// Bootstrap turns a decoded catalog document and/or the SQLite store into the
// immutable Snapshot served by CatalogService. With the sqlite store the
// document is imported only when its checksum differs from the stored one, and
// items are always read back from the database; with the memory store the
// decoded document is served as is.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/domain"
	"github.com/tbourn/go-taxcode-search/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Catalog stores accepted by Bootstrap.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// CatalogRepo defines the repository contract required by Bootstrap.
type CatalogRepo interface {
	// ReplaceCatalog swaps the stored catalog for items in one transaction.
	ReplaceCatalog(ctx context.Context, db *gorm.DB, meta domain.CatalogMeta, items []domain.ServiceItem) (*domain.CatalogMeta, error)

	// LoadCatalog returns all stored items with nested rows in source order.
	LoadCatalog(ctx context.Context, db *gorm.DB) ([]domain.ServiceItem, error)

	// GetCatalogMeta returns the stored provenance row or repo.ErrNotFound.
	GetCatalogMeta(ctx context.Context, db *gorm.DB) (*domain.CatalogMeta, error)
}

// GormCatalogRepo adapts the repo package functions to CatalogRepo.
type GormCatalogRepo struct{}

func (GormCatalogRepo) ReplaceCatalog(ctx context.Context, db *gorm.DB, meta domain.CatalogMeta, items []domain.ServiceItem) (*domain.CatalogMeta, error) {
	return repo.ReplaceCatalog(ctx, db, meta, items)
}

func (GormCatalogRepo) LoadCatalog(ctx context.Context, db *gorm.DB) ([]domain.ServiceItem, error) {
	return repo.LoadCatalog(ctx, db)
}

func (GormCatalogRepo) GetCatalogMeta(ctx context.Context, db *gorm.DB) (*domain.CatalogMeta, error) {
	return repo.GetCatalogMeta(ctx, db)
}

// Snapshot is a loaded catalog. It must not be modified once handed to a
// CatalogService.
type Snapshot struct {
	Items []domain.ServiceItem
	Meta  domain.CatalogMeta
	// Imported reports whether Bootstrap wrote the document to the store.
	Imported bool
}

// BootstrapOptions selects where the catalog is served from.
type BootstrapOptions struct {
	Store string // StoreSQLite (default) or StoreMemory
	DB    *gorm.DB
	Repo  CatalogRepo // defaults to GormCatalogRepo
}

// Bootstrap builds the Snapshot for doc. doc may be nil with the sqlite store,
// in which case the previously imported catalog is served.
func Bootstrap(ctx context.Context, doc *catalog.Document, opt BootstrapOptions) (*Snapshot, error) {
	tr := otel.Tracer("services/Bootstrap")
	ctx, span := tr.Start(ctx, "Bootstrap",
		trace.WithAttributes(attribute.String("catalog.store", opt.Store)),
	)
	defer span.End()

	switch opt.Store {
	case StoreMemory:
		if doc == nil {
			return nil, ErrNoCatalog
		}
		meta := doc.Meta()
		meta.ImportedAt = time.Now().UTC()
		return &Snapshot{Items: doc.Items, Meta: meta}, nil
	case StoreSQLite, "":
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStore, opt.Store)
	}

	if opt.DB == nil {
		return nil, errors.New("sqlite store requires a database handle")
	}
	r := opt.Repo
	if r == nil {
		r = GormCatalogRepo{}
	}

	imported := false
	if doc != nil {
		var err error
		imported, err = SyncCatalog(ctx, opt.DB, r, doc)
		if err != nil {
			return nil, err
		}
	}

	meta, err := r.GetCatalogMeta(ctx, opt.DB)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog meta: %w", err)
	}
	items, err := r.LoadCatalog(ctx, opt.DB)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoCatalog
	}
	span.SetAttributes(attribute.Int("catalog.items", len(items)), attribute.Bool("catalog.imported", imported))
	return &Snapshot{Items: items, Meta: *meta, Imported: imported}, nil
}

// SyncCatalog imports doc when the store holds no catalog or one with a
// different checksum. It reports whether an import ran.
func SyncCatalog(ctx context.Context, db *gorm.DB, r CatalogRepo, doc *catalog.Document) (bool, error) {
	stored, err := r.GetCatalogMeta(ctx, db)
	switch {
	case err == nil && stored.Checksum == doc.Checksum:
		return false, nil
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return false, fmt.Errorf("read catalog meta: %w", err)
	}
	if _, err := r.ReplaceCatalog(ctx, db, doc.Meta(), doc.Items); err != nil {
		return false, fmt.Errorf("import catalog: %w", err)
	}
	return true, nil
}
