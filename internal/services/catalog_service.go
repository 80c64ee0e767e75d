// Package services – CatalogService
//
// CatalogService serves a loaded, immutable catalog through the search
// engine. It validates request parameters, runs filter → search → sort →
// paginate, and decorates the rows with classification details and optional
// highlighting. Lookup tables (filter options, categories, totals) are
// computed once at construction.
//
// Observability: all public methods are OpenTelemetry-instrumented; searches
// also feed the Prometheus search metrics.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/domain"
	"github.com/tbourn/go-taxcode-search/internal/observability"
	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/utils"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// CatalogService answers catalog queries. It is safe for concurrent use.
type CatalogService struct {
	Engine *search.Engine

	// MaxQueryRunes caps query and autocomplete input; 0 disables the cap.
	MaxQueryRunes int
	// HighlightColor is the marker background used when a request does not
	// pick one.
	HighlightColor string

	items   []domain.ServiceItem
	byCode  map[string]int
	meta    domain.CatalogMeta
	options catalog.FilterOptions
	cats    []catalog.Category
	summary catalog.Summary
	groups  []search.LegalCodeGroup
}

// NewCatalogService indexes snap for lookups. A nil engine gets the default
// engine configuration.
func NewCatalogService(engine *search.Engine, snap *Snapshot) *CatalogService {
	if engine == nil {
		engine = search.New()
	}
	s := &CatalogService{
		Engine:         engine,
		MaxQueryRunes:  200,
		HighlightColor: search.DefaultHighlightColor,
		items:          snap.Items,
		byCode:         make(map[string]int, len(snap.Items)),
		meta:           snap.Meta,
		options:        catalog.ExtractFilterOptions(snap.Items),
		cats:           catalog.Categories(snap.Items),
		summary:        catalog.Summarize(snap.Items),
		groups:         search.AvailableLegalCodeGroups(snap.Items),
	}
	for i := range snap.Items {
		s.byCode[snap.Items[i].Code] = i
	}
	return s
}

// QueryRequest is a combined search, filter, sort and paging request.
type QueryRequest struct {
	Query       string
	Mode        string // contains (default), exact, fuzzy, pattern
	UseSynonyms bool
	Filters     search.Criteria
	Sort        string // relevance (default), legal_code, harmonized_code
	Page        int
	PageSize    int
	Highlight   bool
	// HighlightColor overrides the service default when set.
	HighlightColor string
}

// EntryView is a harmonized entry decorated with its primary classification.
type EntryView struct {
	domain.HarmonizedEntry
	Primary                *search.Classification `json:"primary_classification,omitempty"`
	HighlightedDescription string                 `json:"highlighted_description,omitempty"`
}

// ResultItem is one row of a query result.
type ResultItem struct {
	Code                   string      `json:"code"`
	Description            string      `json:"description"`
	PrimaryCategory        string      `json:"primary_category"`
	SubCategory            string      `json:"sub_category"`
	Group                  string      `json:"group"`
	Score                  float64     `json:"score"`
	HighlightedDescription string      `json:"highlighted_description,omitempty"`
	Entries                []EntryView `json:"harmonized_entries"`
}

// QueryResult is a page of ranked rows plus how the query was interpreted.
type QueryResult struct {
	Plan  search.QueryPlan `json:"plan"`
	Items []ResultItem     `json:"items"`
	Page  utils.Page       `json:"page"`
}

// Query validates req and runs it against the catalog.
func (s *CatalogService) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	tr := otel.Tracer("services/CatalogService")
	_, span := tr.Start(ctx, "Query",
		trace.WithAttributes(
			attribute.String("search.mode", req.Mode),
			attribute.Bool("search.synonyms", req.UseSynonyms),
			attribute.Int("page", req.Page),
			attribute.Int("page_size", req.PageSize),
		),
	)
	defer span.End()

	q := strings.TrimSpace(req.Query)
	if err := s.checkLength(q); err != nil {
		return nil, err
	}
	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	key, err := search.ParseSortKey(req.Sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSort, err)
	}

	start := time.Now()
	plan := s.Engine.Analyze(q, mode, req.UseSynonyms)
	candidates := s.items
	if !req.Filters.IsZero() {
		candidates = s.Engine.Filter(candidates, req.Filters)
	}
	hits := s.Engine.SearchHits(candidates, q, mode, req.UseSynonyms)
	search.SortHits(hits, key)

	path := observability.PathText
	if plan.IsCode {
		path = observability.PathCode
	}
	observability.ObserveQuery(path, string(mode), len(hits), time.Since(start))
	span.SetAttributes(
		attribute.String("search.path", path),
		attribute.Int("search.results", len(hits)),
	)

	window, page := utils.Paginate(hits, req.Page, req.PageSize, defaultPageSize, maxPageSize)

	color := ""
	if req.Highlight && !plan.Skipped && !plan.IsCode {
		color = s.color(req.HighlightColor)
	}
	rows := make([]ResultItem, len(window))
	for i := range window {
		rows[i] = s.view(&window[i].Item, window[i].Score, q, color)
	}
	return &QueryResult{Plan: plan, Items: rows, Page: page}, nil
}

// Suggest proposes completions for a partial query. limit <= 0 uses the
// engine default.
func (s *CatalogService) Suggest(ctx context.Context, partial string, limit int) ([]search.Suggestion, error) {
	tr := otel.Tracer("services/CatalogService")
	_, span := tr.Start(ctx, "Suggest", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	partial = strings.TrimSpace(partial)
	if err := s.checkLength(partial); err != nil {
		return nil, err
	}
	out := s.Engine.Suggest(s.items, partial, limit)
	if out == nil {
		out = []search.Suggestion{}
	}
	observability.ObserveSuggest(len(out))
	return out, nil
}

// Describe explains a tax classification code.
func (s *CatalogService) Describe(ctx context.Context, code string) search.Classification {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Describe",
		trace.WithAttributes(attribute.String("classification.code", code)))
	defer span.End()
	return s.Engine.Advisor().Describe(strings.TrimSpace(code))
}

// Families lists the tax-treatment families.
func (s *CatalogService) Families(ctx context.Context) []search.Family {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Families")
	defer span.End()
	return s.Engine.Advisor().Families()
}

// Groups lists the legal-code groups present in the catalog.
func (s *CatalogService) Groups(ctx context.Context) []search.LegalCodeGroup {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Groups")
	defer span.End()
	return s.groups
}

// SubCategory is a sub-category with the number of harmonized entries under it.
type SubCategory struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}

// SubCategories lists the sub-categories of a primary category, sorted.
func (s *CatalogService) SubCategories(ctx context.Context, category string) []SubCategory {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "SubCategories",
		trace.WithAttributes(attribute.String("category", category)))
	defer span.End()

	names := search.SubCategoriesOf(s.items, category)
	counts := catalog.SubCategoryCounts(s.items, category)
	out := make([]SubCategory, len(names))
	for i, n := range names {
		out[i] = SubCategory{Name: n, Entries: counts[n]}
	}
	return out
}

// Categories returns the category grid.
func (s *CatalogService) Categories(ctx context.Context) []catalog.Category {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Categories")
	defer span.End()
	return s.cats
}

// FilterOptions returns the distinct values offered by the filter pickers.
func (s *CatalogService) FilterOptions(ctx context.Context) catalog.FilterOptions {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "FilterOptions")
	defer span.End()
	return s.options
}

// FacetCounts counts facet values over the items matching c.
func (s *CatalogService) FacetCounts(ctx context.Context, c search.Criteria) search.FacetCounts {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "FacetCounts")
	defer span.End()

	items := s.items
	if !c.IsZero() {
		items = s.Engine.Filter(items, c)
	}
	return s.Engine.FacetCounts(items)
}

// CatalogSummary is the catalog provenance plus totals.
type CatalogSummary struct {
	catalog.Summary
	Meta    domain.CatalogMeta `json:"meta"`
	Version string             `json:"version"`
}

// Summary returns catalog totals and provenance.
func (s *CatalogService) Summary(ctx context.Context) CatalogSummary {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Summary")
	defer span.End()
	return CatalogSummary{Summary: s.summary, Meta: s.meta, Version: s.Version()}
}

// GetItem returns the item with the given legal code, decorated like a
// query row (score 0, no highlighting).
func (s *CatalogService) GetItem(ctx context.Context, code string) (*ResultItem, error) {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "GetItem",
		trace.WithAttributes(attribute.String("item.code", code)))
	defer span.End()

	i, ok := s.byCode[strings.TrimSpace(code)]
	if !ok {
		return nil, ErrItemNotFound
	}
	row := s.view(&s.items[i], 0, "", "")
	return &row, nil
}

// HighlightResult is marked-up text plus the byte spans that were marked.
type HighlightResult struct {
	Text  string        `json:"text"`
	Spans []search.Span `json:"spans"`
}

// Highlight marks every occurrence of query in text. An empty color selects
// the service default.
func (s *CatalogService) Highlight(ctx context.Context, text, query, color string) (*HighlightResult, error) {
	_, span := otel.Tracer("services/CatalogService").Start(ctx, "Highlight")
	defer span.End()

	if err := s.checkLength(query); err != nil {
		return nil, err
	}
	spans := search.HighlightSpans(text, query)
	if spans == nil {
		spans = []search.Span{}
	}
	return &HighlightResult{Text: search.Highlight(text, query, s.color(color)), Spans: spans}, nil
}

// Version identifies the served catalog; it changes whenever a different
// document is loaded and is used to build ETags.
func (s *CatalogService) Version() string {
	sum := s.meta.Checksum
	if len(sum) > 16 {
		sum = sum[:16]
	}
	return sum + "-" + strconv.Itoa(len(s.items))
}

// Items returns the served catalog. Callers must not modify it.
func (s *CatalogService) Items() []domain.ServiceItem { return s.items }

func (s *CatalogService) checkLength(q string) error {
	if s.MaxQueryRunes > 0 && utf8.RuneCountInString(q) > s.MaxQueryRunes {
		return fmt.Errorf("%w: max %d characters", ErrQueryTooLong, s.MaxQueryRunes)
	}
	return nil
}

func (s *CatalogService) color(c string) string {
	if c = strings.TrimSpace(c); c != "" {
		return c
	}
	return s.HighlightColor
}

// view decorates an item. A non-empty color enables highlighting of query.
func (s *CatalogService) view(it *domain.ServiceItem, score float64, query, color string) ResultItem {
	row := ResultItem{
		Code:            it.Code,
		Description:     it.Description,
		PrimaryCategory: it.PrimaryCategory,
		SubCategory:     it.SubCategory,
		Group:           it.Group(),
		Score:           score,
		Entries:         make([]EntryView, len(it.HarmonizedEntries)),
	}
	if color != "" {
		row.HighlightedDescription = search.Highlight(it.Description, query, color)
	}
	advisor := s.Engine.Advisor()
	for i, e := range it.HarmonizedEntries {
		v := EntryView{HarmonizedEntry: e}
		if pc, ok := e.PrimaryClassification(); ok {
			c := advisor.Describe(pc.Code)
			v.Primary = &c
		}
		if color != "" {
			v.HighlightedDescription = search.Highlight(e.Description, query, color)
		}
		row.Entries[i] = v
	}
	return row
}
