package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/domain"
	"github.com/tbourn/go-taxcode-search/internal/repo"
)

// ---------- test helpers ----------

func newCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catsvc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

func testDoc(checksum string) *catalog.Document {
	return &catalog.Document{Source: "Anexo VIII", Sheet: "Correlação", Checksum: checksum, Items: testItems()}
}

type fakeRepo struct {
	meta      *domain.CatalogMeta
	items     []domain.ServiceItem
	metaErr   error
	loadErr   error
	replaced  int
	replaceFn func() error
}

func (f *fakeRepo) ReplaceCatalog(_ context.Context, _ *gorm.DB, meta domain.CatalogMeta, items []domain.ServiceItem) (*domain.CatalogMeta, error) {
	if f.replaceFn != nil {
		if err := f.replaceFn(); err != nil {
			return nil, err
		}
	}
	f.replaced++
	f.meta, f.items = &meta, items
	return &meta, nil
}

func (f *fakeRepo) LoadCatalog(context.Context, *gorm.DB) ([]domain.ServiceItem, error) {
	return f.items, f.loadErr
}

func (f *fakeRepo) GetCatalogMeta(context.Context, *gorm.DB) (*domain.CatalogMeta, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	if f.meta == nil {
		return nil, repo.ErrNotFound
	}
	return f.meta, nil
}

// ---------- Bootstrap() ----------

func TestBootstrap_MemoryStore(t *testing.T) {
	snap, err := Bootstrap(context.Background(), testDoc("c1"), BootstrapOptions{Store: StoreMemory})
	require.NoError(t, err)
	assert.Len(t, snap.Items, 4)
	assert.Equal(t, "c1", snap.Meta.Checksum)
	assert.False(t, snap.Meta.ImportedAt.IsZero())
	assert.False(t, snap.Imported)

	_, err = Bootstrap(context.Background(), nil, BootstrapOptions{Store: StoreMemory})
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestBootstrap_UnknownStore(t *testing.T) {
	_, err := Bootstrap(context.Background(), testDoc("c1"), BootstrapOptions{Store: "redis"})
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestBootstrap_SQLiteNeedsDB(t *testing.T) {
	_, err := Bootstrap(context.Background(), testDoc("c1"), BootstrapOptions{Store: StoreSQLite})
	assert.Error(t, err)
}

func TestBootstrap_SQLite_ImportsOnceByChecksum(t *testing.T) {
	db := newCatalogDB(t)
	ctx := context.Background()

	snap, err := Bootstrap(ctx, testDoc("c1"), BootstrapOptions{Store: StoreSQLite, DB: db})
	require.NoError(t, err)
	assert.True(t, snap.Imported)
	require.Len(t, snap.Items, 4)
	assert.Equal(t, "1.01", snap.Items[0].Code)
	assert.Equal(t, "10.01", snap.Items[3].Code, "import order is kept")
	assert.Equal(t, "000001", snap.Items[0].HarmonizedEntries[0].TaxClassifications[0].Code)
	first := snap.Meta.ImportID

	snap, err = Bootstrap(ctx, testDoc("c1"), BootstrapOptions{DB: db})
	require.NoError(t, err)
	assert.False(t, snap.Imported, "same checksum must not re-import")
	assert.Equal(t, first, snap.Meta.ImportID)

	snap, err = Bootstrap(ctx, testDoc("c2"), BootstrapOptions{DB: db})
	require.NoError(t, err)
	assert.True(t, snap.Imported)
	assert.NotEqual(t, first, snap.Meta.ImportID)

	// no document: serve what is stored
	snap, err = Bootstrap(ctx, nil, BootstrapOptions{DB: db})
	require.NoError(t, err)
	assert.Equal(t, "c2", snap.Meta.Checksum)
}

func TestBootstrap_SQLite_EmptyStoreWithoutDocument(t *testing.T) {
	_, err := Bootstrap(context.Background(), nil, BootstrapOptions{DB: newCatalogDB(t)})
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestBootstrap_FakeRepoErrors(t *testing.T) {
	ctx := context.Background()
	db := &gorm.DB{}
	boom := errors.New("boom")

	r := &fakeRepo{metaErr: boom}
	_, err := Bootstrap(ctx, testDoc("c1"), BootstrapOptions{DB: db, Repo: r})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, r.replaced)

	r = &fakeRepo{replaceFn: func() error { return boom }}
	_, err = Bootstrap(ctx, testDoc("c1"), BootstrapOptions{DB: db, Repo: r})
	assert.ErrorIs(t, err, boom)

	r = &fakeRepo{loadErr: boom}
	_, err = Bootstrap(ctx, testDoc("c1"), BootstrapOptions{DB: db, Repo: r})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, r.replaced)
}

func TestSyncCatalog(t *testing.T) {
	ctx := context.Background()
	r := &fakeRepo{}

	imported, err := SyncCatalog(ctx, nil, r, testDoc("c1"))
	require.NoError(t, err)
	assert.True(t, imported)

	imported, err = SyncCatalog(ctx, nil, r, testDoc("c1"))
	require.NoError(t, err)
	assert.False(t, imported)
	assert.Equal(t, 1, r.replaced)
}
