package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-taxcode-search/internal/domain"
)

const sampleDoc = `{
  "fonte": "Anexo VIII",
  "sheet": "Correlação",
  "itens": [
    {
      "item_lc116": " 1.01 ",
      "descricao_item": "Análise e desenvolvimento de sistemas.",
      "filtro_principal": "5. TECNOLOGIA DA INFORMAÇÃO",
      "subcategoria": "Desenvolvimento",
      "nbs_entries": [
        {
          "nbs_code": "1.1501.10.00",
          "descricao_nbs": "Serviços de desenvolvimento de software",
          "ps_onerosa": "s",
          "adq_exterior": "N",
          "indop": "010101",
          "local_incidencia_ibs": "Local do prestador",
          "cclasstrib": [
            {"codigo": "000001", "nome": "Tributação integral"},
            {"codigo": "200029", "nome": "Redução de alíquota"}
          ]
        },
        {"nbs_code": "1.1502.10.00", "descricao_nbs": "Licenciamento"}
      ]
    },
    {
      "item_lc116": "4.01",
      "descricao_item": "Medicina e biomedicina.",
      "filtro_principal": "2. SERVIÇOS DE SAÚDE HUMANA",
      "subcategoria": "",
      "nbs_entries": []
    }
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(sampleDoc))
	assert.Equal(t, hex.EncodeToString(sum[:]), doc.Checksum)
	assert.Equal(t, "Anexo VIII", doc.Source)
	assert.Equal(t, "Correlação", doc.Sheet)
	require.Len(t, doc.Items, 2)

	it := doc.Items[0]
	assert.Equal(t, "1.01", it.Code)
	assert.Equal(t, 0, it.Position)
	require.Len(t, it.HarmonizedEntries, 2)

	e := it.HarmonizedEntries[0]
	assert.Equal(t, "1.01", e.ServiceCode)
	assert.Equal(t, domain.FlagYes, e.IsOnerousProvision, "flags are upper-cased")
	assert.Equal(t, "010101", e.OperationIndicator)
	require.Len(t, e.TaxClassifications, 2)
	assert.Equal(t, "200029", e.TaxClassifications[1].Code)
	assert.Equal(t, 1, e.TaxClassifications[1].Position)
	assert.Equal(t, 1, it.HarmonizedEntries[1].Position)

	assert.Equal(t, 1, doc.Items[1].Position)
	assert.Empty(t, doc.Items[1].HarmonizedEntries)

	meta := doc.Meta()
	assert.Equal(t, uint(1), meta.ID)
	assert.Equal(t, 2, meta.ItemCount)
	assert.Equal(t, doc.Checksum, meta.Checksum)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", `{"fonte":"x","itens":[]}`, ErrEmptyCatalog},
		{"missing items", `{}`, ErrEmptyCatalog},
		{"duplicate", `{"itens":[{"item_lc116":"1.01"},{"item_lc116":"1.01 "}]}`, ErrDuplicateCode},
		{"blank code", `{"itens":[{"item_lc116":"  "}]}`, ErrMissingCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Decode(strings.NewReader(`{"itens": [`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Items, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestExtractFilterOptions(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	opts := ExtractFilterOptions(doc.Items)
	assert.Equal(t, []string{"2. SERVIÇOS DE SAÚDE HUMANA", "5. TECNOLOGIA DA INFORMAÇÃO"}, opts.PrimaryCategories)
	assert.Equal(t, []string{"Desenvolvimento"}, opts.SubCategories)
	assert.Equal(t, []string{"1.1501.10.00", "1.1502.10.00"}, opts.HarmonizedCodes)
	assert.Equal(t, []string{"Local do prestador"}, opts.TaxIncidencePlaces)
	assert.Equal(t, []string{"000001 - Tributação integral", "200029 - Redução de alíquota"}, opts.TaxClassifications)

	empty := ExtractFilterOptions(nil)
	assert.Empty(t, empty.PrimaryCategories)
	assert.NotNil(t, empty.HarmonizedCodes)
}

func TestExtractFilterOptions_UnnamedClassification(t *testing.T) {
	items := []domain.ServiceItem{{
		Code: "1.01",
		HarmonizedEntries: []domain.HarmonizedEntry{{
			NBSCode: "1.1501.10.00",
			TaxClassifications: []domain.TaxClassification{
				{Code: "410001"},
				{Code: "000001", Name: "Tributação integral"},
				{Name: "sem código"},
			},
		}},
	}}

	opts := ExtractFilterOptions(items)
	assert.Equal(t, []string{"000001 - Tributação integral", "410001"}, opts.TaxClassifications)
}

func TestSummarize(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Items:              2,
		HarmonizedEntries:  2,
		TaxClassifications: 2,
		PrimaryCategories:  2,
		SubCategories:      1,
	}, Summarize(doc.Items))
}

func TestCategories(t *testing.T) {
	items := []domain.ServiceItem{
		{Code: "1.01", PrimaryCategory: "5. TECNOLOGIA DA INFORMAÇÃO", HarmonizedEntries: make([]domain.HarmonizedEntry, 3)},
		{Code: "1.02", PrimaryCategory: "5. TECNOLOGIA DA INFORMAÇÃO", HarmonizedEntries: make([]domain.HarmonizedEntry, 1)},
		{Code: "40.01", PrimaryCategory: "OBRAS DE ARTE"},
		{Code: "99.01"},
	}
	cats := Categories(items)
	require.Len(t, cats, 17)

	assert.Equal(t, "OBRAS DE ARTE", cats[0].Key, "unnumbered categories sort first")
	assert.Equal(t, "Obras de Arte", cats[0].Name)
	assert.Equal(t, fallbackCategoryIcon, cats[0].Icon)
	assert.Equal(t, 1, cats[0].Items)

	assert.Equal(t, 1, cats[1].Number)
	assert.Equal(t, OtherCategory, cats[len(cats)-1].Key)
	assert.Equal(t, "Outros Serviços", cats[len(cats)-1].Name)

	var it Category
	for _, c := range cats {
		if c.Number == 5 {
			it = c
		}
	}
	assert.Equal(t, "Tecnologia da Informação", it.Name)
	assert.Equal(t, "💻", it.Icon)
	assert.Equal(t, 2, it.Items)
	assert.Equal(t, 4, it.Entries)
}

func TestSubCategoryCounts(t *testing.T) {
	items := []domain.ServiceItem{
		{PrimaryCategory: "A", SubCategory: "x", HarmonizedEntries: make([]domain.HarmonizedEntry, 2)},
		{PrimaryCategory: "A", SubCategory: "x", HarmonizedEntries: make([]domain.HarmonizedEntry, 1)},
		{PrimaryCategory: "A", SubCategory: ""},
		{PrimaryCategory: "B", SubCategory: "y"},
	}
	assert.Equal(t, map[string]int{"x": 3}, SubCategoryCounts(items, "A"))
	assert.Empty(t, SubCategoryCounts(items, "C"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Comunicação, Publicidade e Eventos", DisplayName("COMUNICAÇÃO, PUBLICIDADE E EVENTOS"))
	assert.Equal(t, "A Casa", DisplayName("A CASA"))
	assert.Equal(t, "", DisplayName(""))
}
