// Command taxsearch queries the tax classification catalog from the command
// line and serves it to MCP clients over stdio.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tbourn/go-taxcode-search/internal/app"
	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/config"
	"github.com/tbourn/go-taxcode-search/internal/mcp"
	"github.com/tbourn/go-taxcode-search/internal/repo"
	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
	"github.com/tbourn/go-taxcode-search/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cliState carries the resolved configuration from Before to the actions.
type cliState struct {
	cfg config.Config
}

func newApp() *cli.App {
	st := &cliState{}
	return &cli.App{
		Name:  "taxsearch",
		Usage: "Search LC 116 service codes, NBS entries and cClassTrib classifications",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Path to the catalog JSON document",
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Catalog store (sqlite, memory)",
				EnvVars: []string{"CATALOG_STORE"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite database path",
				EnvVars: []string{"DB_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: st.setup,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the catalog",
				ArgsUsage: "<query>",
				Action:    st.searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Match mode (contains, exact, fuzzy, pattern)"},
					&cli.StringFlag{Name: "sort", Usage: "Ordering (relevance, legal_code, harmonized_code)"},
					&cli.StringFlag{Name: "category", Usage: "Primary category filter"},
					&cli.StringFlag{Name: "family", Usage: "Tax treatment family filter"},
					&cli.StringFlag{Name: "group", Usage: "Legal code group filter"},
					&cli.BoolFlag{Name: "no-synonyms", Usage: "Do not expand the query with synonyms"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of rows", Value: 20},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Autocomplete a partial input",
				ArgsUsage: "<partial>",
				Action:    st.suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of suggestions"},
				},
			},
			{
				Name:      "item",
				Usage:     "Show one legal code with its NBS entries",
				ArgsUsage: "<code>",
				Action:    st.itemCommand,
			},
			{
				Name:      "describe",
				Usage:     "Describe a cClassTrib classification code",
				ArgsUsage: "<code>",
				Action:    st.describeCommand,
			},
			{
				Name:   "families",
				Usage:  "List tax treatment families",
				Action: st.familiesCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show catalog totals and provenance",
				Action: st.statsCommand,
			},
			{
				Name:   "import",
				Usage:  "Import the catalog document into the SQLite store",
				Action: st.importCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the catalog to MCP clients over stdio",
				Action: st.mcpCommand,
			},
		},
	}
}

// setup resolves configuration from the environment, then applies flags.
func (st *cliState) setup(c *cli.Context) error {
	sysutil.NewLogger(os.Stderr, c.String("log-level"), false)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Catalog.Path = sysutil.FirstNonEmpty(c.String("catalog"), cfg.Catalog.Path)
	cfg.Catalog.Store = strings.ToLower(sysutil.FirstNonEmpty(c.String("store"), cfg.Catalog.Store))
	cfg.DBPath = sysutil.FirstNonEmpty(c.String("db"), cfg.DBPath)
	st.cfg = cfg
	return nil
}

func (st *cliState) open(c *cli.Context) (*app.App, error) {
	return app.Open(c.Context, st.cfg)
}

func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if v == "" {
		return "", cli.Exit(name+" is required", 2)
	}
	return v, nil
}

func (st *cliState) searchCommand(c *cli.Context) error {
	query, err := requireArg(c, "query")
	if err != nil {
		return err
	}
	a, err := st.open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Service.Query(c.Context, services.QueryRequest{
		Query:       query,
		Mode:        c.String("mode"),
		UseSynonyms: !c.Bool("no-synonyms"),
		Filters: search.Criteria{
			PrimaryCategory:    c.String("category"),
			TaxTreatmentFamily: c.String("family"),
			LegalCodeGroup:     c.String("group"),
		},
		Sort:     c.String("sort"),
		Page:     1,
		PageSize: c.Int("limit"),
	})
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, res)
	}
	return printResults(c.App.Writer, res)
}

func (st *cliState) suggestCommand(c *cli.Context) error {
	partial, err := requireArg(c, "partial input")
	if err != nil {
		return err
	}
	a, err := st.open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	got, err := a.Service.Suggest(c.Context, partial, c.Int("limit"))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, s := range got {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Kind, s.Code, s.Text)
	}
	return tw.Flush()
}

func (st *cliState) itemCommand(c *cli.Context) error {
	code, err := requireArg(c, "code")
	if err != nil {
		return err
	}
	a, err := st.open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	row, err := a.Service.GetItem(c.Context, code)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, row)
}

func (st *cliState) describeCommand(c *cli.Context) error {
	code, err := requireArg(c, "code")
	if err != nil {
		return err
	}
	// Classification lookups need no catalog.
	cl := search.NewAdvisor(search.DefaultClassificationTable()).Describe(code)
	fmt.Fprintf(c.App.Writer, "%s  %s\n%s\n", cl.Code, cl.Category, cl.Description)
	return nil
}

func (st *cliState) familiesCommand(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, f := range search.NewAdvisor(search.DefaultClassificationTable()).Families() {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Description)
	}
	return tw.Flush()
}

func (st *cliState) statsCommand(c *cli.Context) error {
	a, err := st.open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	out := map[string]any{"catalog": a.Service.Summary(c.Context)}
	if a.DB != nil {
		count, updated, err := repo.CatalogStats(c.Context, a.DB)
		if err != nil {
			return err
		}
		out["store"] = map[string]any{"items": count, "updated_at": updated}
	}
	return writeJSON(c.App.Writer, out)
}

func (st *cliState) importCommand(c *cli.Context) error {
	if st.cfg.Catalog.Store != services.StoreSQLite {
		return cli.Exit("import requires the sqlite store", 2)
	}
	doc, err := catalog.LoadFile(st.cfg.Catalog.Path)
	if err != nil {
		return err
	}
	db, err := repo.OpenCatalogStore(st.cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close(db)

	imported, err := services.SyncCatalog(c.Context, db, services.GormCatalogRepo{}, doc)
	if err != nil {
		return err
	}
	if imported {
		fmt.Fprintf(c.App.Writer, "imported %d items (checksum %s)\n", len(doc.Items), doc.Checksum)
	} else {
		fmt.Fprintf(c.App.Writer, "catalog unchanged (checksum %s)\n", doc.Checksum)
	}
	return nil
}

func (st *cliState) mcpCommand(c *cli.Context) error {
	a, err := st.open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info().Str("version", a.Service.Version()).Msg("mcp server on stdio")
	return mcp.NewServer(a.Service).Serve(c.Context, os.Stdin, c.App.Writer)
}

func printResults(w io.Writer, res *services.QueryResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range res.Items {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\n", it.Code, it.Score, it.Description)
		for _, e := range it.Entries {
			class := ""
			if e.Primary != nil {
				class = e.Primary.Code + " " + e.Primary.Category
			}
			fmt.Fprintf(tw, "\t\t  %s  %s\t%s\n", e.NBSCode, e.Description, class)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d results\n", len(res.Items), res.Page.Total)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
