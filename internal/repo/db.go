// Package repo persists the catalog snapshot through GORM on SQLite and
// reads it back for serving.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

// pragmas are applied to every connection handle in order.
var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA foreign_keys=ON;",
	"PRAGMA busy_timeout=5000;",
}

// OpenSQLite opens (or creates) the SQLite database at path, applies the
// connection PRAGMAs and registers the OpenTelemetry plugin so queries join
// the request trace. DSNs starting with "file:" are passed through untouched.
func OpenSQLite(path string) (*gorm.DB, error) {
	// A missing parent directory surfaces as an obscure driver error otherwise.
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin()); err != nil {
		_ = Close(db)
		return nil, err
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("%s: %w", strings.TrimSuffix(p, ";"), err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// AutoMigrate creates or updates the catalog tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ServiceItem{},
		&domain.HarmonizedEntry{},
		&domain.TaxClassification{},
		&domain.CatalogMeta{},
	)
}

// OpenCatalogStore opens the database at path and migrates the catalog
// schema. The handle is closed again when migration fails.
func OpenCatalogStore(path string) (*gorm.DB, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close releases the connection pool behind db. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
