package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-taxcode-search/internal/config"
	"github.com/tbourn/go-taxcode-search/internal/services"
)

const sampleDoc = `{
  "fonte": "Anexo VIII",
  "sheet": "Correlação",
  "itens": [
    {
      "item_lc116": "1.01",
      "descricao_item": "Análise e desenvolvimento de sistemas.",
      "filtro_principal": "5. TECNOLOGIA DA INFORMAÇÃO",
      "subcategoria": "Desenvolvimento",
      "nbs_entries": [
        {
          "nbs_code": "1.1501.10.00",
          "descricao_nbs": "Serviços de desenvolvimento de software",
          "ps_onerosa": "S",
          "adq_exterior": "N",
          "local_incidencia_ibs": "Local do prestador",
          "cclasstrib": [{"codigo": "000001", "nome": "Integral"}]
        }
      ]
    },
    {
      "item_lc116": "4.01",
      "descricao_item": "Medicina e biomedicina.",
      "filtro_principal": "2. SERVIÇOS DE SAÚDE HUMANA",
      "nbs_entries": []
    }
  ]
}`

func testConfig(t *testing.T, store string, withDoc bool) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if withDoc {
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))
	}
	return config.Config{
		DBPath:  filepath.Join(dir, "taxsearch.db"),
		Catalog: config.CatalogConfig{Path: path, Store: store},
		Search: config.SearchConfig{
			MinSearchLength: 2,
			FuzzyThreshold:  65,
			MaxAutocomplete: 8,
			MaxQueryRunes:   50,
			HighlightColor:  "#ABCDEF",
		},
	}
}

func TestOpen_MemoryStore(t *testing.T) {
	a, err := Open(context.Background(), testConfig(t, services.StoreMemory, true))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Equal(t, 50, a.Service.MaxQueryRunes)
	assert.Equal(t, "#ABCDEF", a.Service.HighlightColor)
	assert.Len(t, a.Service.Items(), 2)
}

func TestOpen_MemoryStoreNeedsDocument(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, services.StoreMemory, false))
	assert.Error(t, err)
}

func TestOpen_SQLiteStore_ImportsThenServesStored(t *testing.T) {
	cfg := testConfig(t, services.StoreSQLite, true)

	a, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.DB)
	version := a.Service.Version()
	a.Close()

	// the document is gone; the stored copy is served
	require.NoError(t, os.Remove(cfg.Catalog.Path))
	a, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, version, a.Service.Version())
	assert.Len(t, a.Service.Items(), 2)
}

func TestOpen_SQLiteStore_Empty(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, services.StoreSQLite, false))
	assert.ErrorIs(t, err, services.ErrNoCatalog)
}
