// Search HTTP handlers.
//
// This file exposes the read endpoints of the catalog that depend on a
// user query:
//   - GET  /search        (search + filter + sort + paginate)
//   - GET  /autocomplete  (typeahead suggestions)
//   - GET  /items/{code}  (one legal code with its harmonized entries)
//   - POST /highlight     (mark query occurrences in arbitrary text)
//
// Handlers are transport-thin: they parse parameters, call the catalog
// service, and map service errors onto the error envelope.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/http/middleware"
	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
	"github.com/tbourn/go-taxcode-search/internal/utils"
)

//
// Service contract (context-aware)
//

// CatalogService defines the catalog operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use.
type CatalogService interface {
	Query(ctx context.Context, req services.QueryRequest) (*services.QueryResult, error)
	Suggest(ctx context.Context, partial string, limit int) ([]search.Suggestion, error)
	GetItem(ctx context.Context, code string) (*services.ResultItem, error)
	Highlight(ctx context.Context, text, query, color string) (*services.HighlightResult, error)

	Describe(ctx context.Context, code string) search.Classification
	Families(ctx context.Context) []search.Family
	Groups(ctx context.Context) []search.LegalCodeGroup
	Categories(ctx context.Context) []catalog.Category
	SubCategories(ctx context.Context, category string) []services.SubCategory
	FilterOptions(ctx context.Context) catalog.FilterOptions
	FacetCounts(ctx context.Context, c search.Criteria) search.FacetCounts
	Summary(ctx context.Context) services.CatalogSummary

	// Version identifies the served catalog and seeds ETags.
	Version() string
}

//
// Handler wiring
//

// Handlers groups the catalog HTTP endpoints.
type Handlers struct {
	svc CatalogService
	// db is the catalog store; nil when the catalog is served from memory.
	db *gorm.DB
}

// New constructs Handlers bound to svc. db may be nil.
func New(svc CatalogService, db *gorm.DB) *Handlers {
	return &Handlers{svc: svc, db: db}
}

//
// DTOs
//

// SearchResponse is a page of ranked catalog rows.
type SearchResponse struct {
	Plan       search.QueryPlan      `json:"plan"`
	Items      []services.ResultItem `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

func paginationFrom(p utils.Page) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.Pages,
		HasNext:    p.Page < p.Pages,
	}
}

// AutocompleteResponse lists typeahead suggestions.
type AutocompleteResponse struct {
	Suggestions []search.Suggestion `json:"suggestions"`
}

// HighlightRequest is the JSON payload for POST /highlight.
type HighlightRequest struct {
	Text  string `json:"text" binding:"required" example:"Análise e desenvolvimento de sistemas."`
	Query string `json:"query" example:"analise"`
	Color string `json:"color,omitempty" example:"#FFEB3B"`
}

//
// Helpers
//

// criteriaFrom reads the filter query parameters shared by /search and
// /filters/counts.
func criteriaFrom(c *gin.Context) search.Criteria {
	q := func(k string) string { return strings.TrimSpace(c.Query(k)) }
	return search.Criteria{
		PrimaryCategory:       q("category"),
		SubCategory:           q("subcategory"),
		IsOnerousProvision:    strings.ToUpper(q("onerous")),
		IsForeignAcquisition:  strings.ToUpper(q("foreign")),
		TaxIncidencePlace:     q("incidence"),
		TaxClassificationCode: q("classification"),
		TaxTreatmentFamily:    q("family"),
		LegalCodeGroup:        q("group"),
	}
}

// boolQuery parses a boolean query parameter, falling back to def when the
// parameter is absent or malformed.
func boolQuery(c *gin.Context, key string, def bool) bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// failService maps service errors onto status codes and stable error codes.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQueryTooLong):
		fail(c, http.StatusBadRequest, ErrCodeQueryTooLong, err.Error())
	case errors.Is(err, services.ErrInvalidMode):
		fail(c, http.StatusBadRequest, ErrCodeInvalidMode, "mode must be one of: contains, exact, fuzzy, pattern")
	case errors.Is(err, services.ErrInvalidSort):
		fail(c, http.StatusBadRequest, ErrCodeInvalidSort, "sort must be one of: relevance, legal_code, harmonized_code")
	case errors.Is(err, services.ErrItemNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "item not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "request cancelled")
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("catalog service")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// etag builds the weak validator for an endpoint. Query-dependent endpoints
// fold the raw query string in so each distinct request has its own tag.
func (h *Handlers) etag(c *gin.Context, scope string) string {
	v := h.svc.Version()
	if raw := c.Request.URL.RawQuery; raw != "" {
		f := fnv.New32a()
		_, _ = f.Write([]byte(raw))
		v = fmt.Sprintf("%s:%08x", v, f.Sum32())
	}
	return WeakETag(scope, v)
}

//
// Handlers
//

// Search godoc
// @ID          searchServices
// @Summary     Search the service catalog
// @Description Searches legal codes, descriptions and harmonized entries, applies filters, sorts and paginates. Code-like queries (e.g. 1.01, 1.0501.10.00) match codes directly. Supports weak ETag via If-None-Match.
// @Tags        Search
// @Produce     json
//
// @Param       q               query  string  false "Free text or code"                     example(desenvolvimento)
// @Param       mode            query  string  false "Match mode"                            Enums(contains, exact, fuzzy, pattern) default(contains)
// @Param       synonyms        query  bool    false "Expand the query with synonyms"        default(true)
// @Param       category        query  string  false "Primary category"
// @Param       subcategory     query  string  false "Sub-category"
// @Param       onerous         query  string  false "Onerous provision flag"                Enums(S, N)
// @Param       foreign         query  string  false "Foreign acquisition flag"              Enums(S, N)
// @Param       incidence       query  string  false "Tax incidence place"
// @Param       classification  query  string  false "Classification code or 'code - name'"
// @Param       family          query  string  false "Tax treatment family"
// @Param       group           query  string  false "Legal code group number"               example(17)
// @Param       sort            query  string  false "Ordering"                              Enums(relevance, legal_code, harmonized_code) default(relevance)
// @Param       highlight       query  bool    false "Mark matches in descriptions"          default(false)
// @Param       color           query  string  false "Highlight background color"
// @Param       page            query  int     false "Page number"                           minimum(1) default(1)
// @Param       page_size       query  int     false "Items per page"                        minimum(1) maximum(200) default(20)
// @Param       If-None-Match   header string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.SearchResponse
// @Header      200  {string} ETag "Weak ETag for the catalog version and query"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /search [get]
func (h *Handlers) Search(c *gin.Context) {
	if notModified(c, h.etag(c, "search")) {
		return
	}

	req := services.QueryRequest{
		Query:          c.Query("q"),
		Mode:           c.Query("mode"),
		UseSynonyms:    boolQuery(c, "synonyms", true),
		Filters:        criteriaFrom(c),
		Sort:           c.Query("sort"),
		Page:           utils.AtoiDefault(c.Query("page"), 1),
		PageSize:       utils.AtoiDefault(c.Query("page_size"), 0),
		Highlight:      boolQuery(c, "highlight", false),
		HighlightColor: strings.TrimSpace(c.Query("color")),
	}

	start := time.Now()
	res, err := h.svc.Query(c.Request.Context(), req)
	if err != nil {
		failService(c, err)
		return
	}

	lg := middleware.LoggerFrom(c)
	lg.Debug().
		Bool("code_path", res.Plan.IsCode).
		Int("results", res.Page.Total).
		Dur("took", time.Since(start)).
		Msg("search")

	ok(c, http.StatusOK, SearchResponse{
		Plan:       res.Plan,
		Items:      res.Items,
		Pagination: paginationFrom(res.Page),
	})
}

// Autocomplete godoc
// @ID          autocomplete
// @Summary     Typeahead suggestions
// @Description Suggests legal codes, service descriptions and harmonized codes for a partial input.
// @Tags        Search
// @Produce     json
//
// @Param       q      query  string  true  "Partial input"      example(1.0)
// @Param       limit  query  int     false "Max suggestions"    minimum(1)
//
// @Success     200  {object} handlers.AutocompleteResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /autocomplete [get]
func (h *Handlers) Autocomplete(c *gin.Context) {
	if notModified(c, h.etag(c, "autocomplete")) {
		return
	}
	got, err := h.svc.Suggest(c.Request.Context(), c.Query("q"), utils.AtoiDefault(c.Query("limit"), 0))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, AutocompleteResponse{Suggestions: got})
}

// GetItem godoc
// @ID          getItem
// @Summary     Get one legal code
// @Description Returns a legal code with its harmonized entries, each decorated with its primary classification.
// @Tags        Catalog
// @Produce     json
//
// @Param       code  path  string  true  "Legal code"  example(1.01)
//
// @Success     200  {object} services.ResultItem
// @Success     304  {string} string "Not Modified"
// @Failure     404  {object} handlers.ErrorResponse "Item not found"
// @Router      /items/{code} [get]
func (h *Handlers) GetItem(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if notModified(c, WeakETag("item:"+code, h.svc.Version())) {
		return
	}
	row, err := h.svc.GetItem(c.Request.Context(), code)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, row)
}

// Highlight godoc
// @ID          highlight
// @Summary     Highlight query matches
// @Description Wraps every accent- and case-insensitive occurrence of query in text with a <mark> element and returns the marked byte spans.
// @Tags        Search
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.HighlightRequest  true  "Text and query"
//
// @Success     200  {object} services.HighlightResult
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /highlight [post]
func (h *Handlers) Highlight(c *gin.Context) {
	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: text is required")
		return
	}
	res, err := h.svc.Highlight(c.Request.Context(), req.Text, req.Query, strings.TrimSpace(req.Color))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
