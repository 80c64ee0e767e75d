package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const sampleDoc = `{
  "fonte": "Anexo VIII",
  "sheet": "Correlação",
  "itens": [
    {
      "item_lc116": "1.01",
      "descricao_item": "Análise e desenvolvimento de sistemas.",
      "filtro_principal": "5. TECNOLOGIA DA INFORMAÇÃO",
      "nbs_entries": [
        {
          "nbs_code": "1.1501.10.00",
          "descricao_nbs": "Serviços de desenvolvimento de software",
          "cclasstrib": [{"codigo": "000001", "nome": "Integral"}]
        }
      ]
    },
    {
      "item_lc116": "4.01",
      "descricao_item": "Medicina e biomedicina.",
      "filtro_principal": "2. SERVIÇOS DE SAÚDE HUMANA"
    }
  ]
}`

// run executes the CLI against a temporary catalog and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	doc := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(doc, []byte(sampleDoc), 0o600))

	t.Setenv("CATALOG_PATH", doc)
	t.Setenv("CATALOG_STORE", "memory")
	t.Setenv("DB_PATH", filepath.Join(dir, "taxsearch.db"))

	var out bytes.Buffer
	a := newApp()
	a.Writer = &out
	a.ErrWriter = &out
	a.ExitErrHandler = func(*cli.Context, error) {}

	err := a.Run(append([]string{"taxsearch"}, args...))
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search", "medicina")
	require.NoError(t, err)
	assert.Contains(t, out, "4.01")
	assert.Contains(t, out, "1 of 1 results")

	out, err = run(t, "search", "--json", "1.01")
	require.NoError(t, err)
	var res struct {
		Plan struct {
			IsCode bool `json:"is_code"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Plan.IsCode)
}

func TestSearchCommand_Errors(t *testing.T) {
	_, err := run(t, "search")
	require.Error(t, err)
	var ec cli.ExitCoder
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, 2, ec.ExitCode())

	_, err = run(t, "search", "--mode", "soundex", "abc")
	assert.Error(t, err)
}

func TestSuggestAndItemCommands(t *testing.T) {
	out, err := run(t, "suggest", "1.0")
	require.NoError(t, err)
	assert.Contains(t, out, "1.01")

	out, err = run(t, "item", "1.01")
	require.NoError(t, err)
	assert.Contains(t, out, "1.1501.10.00")

	_, err = run(t, "item", "99.99")
	assert.Error(t, err)
}

func TestDescribeAndFamiliesCommands(t *testing.T) {
	out, err := run(t, "describe", "000001")
	require.NoError(t, err)
	assert.Contains(t, out, "000001")

	out, err = run(t, "families")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"items": 2`)
}

func TestImportCommand(t *testing.T) {
	_, err := run(t, "import")
	assert.Error(t, err, "memory store cannot import")

	out, err := run(t, "--store", "sqlite", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 items")
}
