// Package repo implements the data persistence layer for the catalog,
// backed by GORM. This file provides the catalog import and load functions.
//
// The catalog is written once per import and read once at startup; there are
// no row-level updates. All functions accept a *gorm.DB handle so they can run
// inside a caller's transaction.
//
// Error semantics:
//   - GetCatalogMeta returns ErrNotFound when nothing was imported yet.
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// importBatchSize bounds the number of items per INSERT; nested rows are
// inserted per batch as well.
const importBatchSize = 100

// ReplaceCatalog removes any stored catalog and inserts items and the meta row
// in a single transaction. The meta row gets a fresh ImportID, the item count
// and an UTC import timestamp; the stored row is returned.
//
// GORM assigns the primary keys of the nested entries and classifications in
// place, so items is modified.
func ReplaceCatalog(ctx context.Context, db *gorm.DB, meta domain.CatalogMeta, items []domain.ServiceItem) (*domain.CatalogMeta, error) {
	meta.ID = 1
	meta.ImportID = uuid.NewString()
	meta.ItemCount = len(items)
	meta.ImportedAt = time.Now().UTC()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		// children first so the wipe does not depend on FK cascades being on
		for _, model := range []any{
			&domain.TaxClassification{},
			&domain.HarmonizedEntry{},
			&domain.ServiceItem{},
			&domain.CatalogMeta{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(items, importBatchSize).Error; err != nil {
				return err
			}
		}
		return tx.Create(&meta).Error
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadCatalog returns every stored item in import order, with harmonized
// entries and their classifications preloaded in source order.
func LoadCatalog(ctx context.Context, db *gorm.DB) ([]domain.ServiceItem, error) {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

	var items []domain.ServiceItem
	err := db.WithContext(ctx).
		Preload("HarmonizedEntries", byPosition).
		Preload("HarmonizedEntries.TaxClassifications", byPosition).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetCatalogMeta returns the provenance of the stored catalog or ErrNotFound.
func GetCatalogMeta(ctx context.Context, db *gorm.DB) (*domain.CatalogMeta, error) {
	var m domain.CatalogMeta
	err := db.WithContext(ctx).First(&m, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
