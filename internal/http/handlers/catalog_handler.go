// Catalog reference HTTP handlers.
//
// These endpoints expose the static tables derived from the loaded catalog
// (families, groups, categories, filter options, facet counts, statistics)
// and the classification advisor. All of them are pure reads of an immutable
// snapshot, so every response carries a weak ETag derived from the catalog
// version and honours If-None-Match.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-taxcode-search/internal/catalog"
	"github.com/tbourn/go-taxcode-search/internal/http/middleware"
	"github.com/tbourn/go-taxcode-search/internal/repo"
	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
)

//
// DTOs
//

// FamiliesResponse lists the tax treatment families.
type FamiliesResponse struct {
	Families []search.Family `json:"families"`
}

// GroupsResponse lists the legal code groups present in the catalog.
type GroupsResponse struct {
	Groups []search.LegalCodeGroup `json:"groups"`
}

// CategoriesResponse lists the primary categories with display metadata.
type CategoriesResponse struct {
	Categories []catalog.Category `json:"categories"`
}

// SubCategoriesResponse lists the sub-categories of one primary category.
type SubCategoriesResponse struct {
	Category      string                 `json:"category"`
	SubCategories []services.SubCategory `json:"subcategories"`
}

// StoreStats describes the SQLite copy of the catalog.
type StoreStats struct {
	Items     int64      `json:"items"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StatsResponse summarizes the served catalog.
type StatsResponse struct {
	services.CatalogSummary
	Store *StoreStats `json:"store,omitempty"`
}

//
// Handlers
//

// GetClassification godoc
// @ID          getClassification
// @Summary     Describe a tax classification code
// @Description Resolves a classification code to its tax treatment family, description, color and icon. Unknown codes resolve by prefix or to a generic fallback; this endpoint never returns 404.
// @Tags        Classifications
// @Produce     json
//
// @Param       code  path  string  true  "Classification code"  example(000001)
//
// @Success     200  {object} search.Classification
// @Router      /classifications/{code} [get]
func (h *Handlers) GetClassification(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "classification code required")
		return
	}
	ok(c, http.StatusOK, h.svc.Describe(c.Request.Context(), code))
}

// ListFamilies godoc
// @ID          listFamilies
// @Summary     List tax treatment families
// @Tags        Classifications
// @Produce     json
// @Success     200  {object} handlers.FamiliesResponse
// @Router      /families [get]
func (h *Handlers) ListFamilies(c *gin.Context) {
	ok(c, http.StatusOK, FamiliesResponse{Families: h.svc.Families(c.Request.Context())})
}

// ListGroups godoc
// @ID          listGroups
// @Summary     List legal code groups present in the catalog
// @Tags        Catalog
// @Produce     json
// @Success     200  {object} handlers.GroupsResponse
// @Success     304  {string} string "Not Modified"
// @Router      /groups [get]
func (h *Handlers) ListGroups(c *gin.Context) {
	if notModified(c, WeakETag("groups", h.svc.Version())) {
		return
	}
	ok(c, http.StatusOK, GroupsResponse{Groups: h.svc.Groups(c.Request.Context())})
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List primary categories
// @Description Returns the fixed primary categories with display name, icon, color and counts; the catch-all category is last.
// @Tags        Catalog
// @Produce     json
// @Success     200  {object} handlers.CategoriesResponse
// @Success     304  {string} string "Not Modified"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	if notModified(c, WeakETag("categories", h.svc.Version())) {
		return
	}
	ok(c, http.StatusOK, CategoriesResponse{Categories: h.svc.Categories(c.Request.Context())})
}

// ListSubCategories godoc
// @ID          listSubCategories
// @Summary     List sub-categories of a primary category
// @Tags        Catalog
// @Produce     json
// @Param       category  query  string  true  "Primary category"  example(5. TECNOLOGIA DA INFORMAÇÃO)
// @Success     200  {object} handlers.SubCategoriesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /subcategories [get]
func (h *Handlers) ListSubCategories(c *gin.Context) {
	cat := strings.TrimSpace(c.Query("category"))
	if cat == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "category required")
		return
	}
	ok(c, http.StatusOK, SubCategoriesResponse{
		Category:      cat,
		SubCategories: h.svc.SubCategories(c.Request.Context(), cat),
	})
}

// FilterOptions godoc
// @ID          filterOptions
// @Summary     List the values available for each filter
// @Tags        Catalog
// @Produce     json
// @Success     200  {object} catalog.FilterOptions
// @Success     304  {string} string "Not Modified"
// @Router      /filters [get]
func (h *Handlers) FilterOptions(c *gin.Context) {
	if notModified(c, WeakETag("filters", h.svc.Version())) {
		return
	}
	ok(c, http.StatusOK, h.svc.FilterOptions(c.Request.Context()))
}

// FacetCounts godoc
// @ID          facetCounts
// @Summary     Count catalog rows per filter value
// @Description Applies the given filters and counts the remaining rows per family, legal code group, incidence place and S/N flag.
// @Tags        Catalog
// @Produce     json
//
// @Param       category        query  string  false "Primary category"
// @Param       subcategory     query  string  false "Sub-category"
// @Param       onerous         query  string  false "Onerous provision flag"    Enums(S, N)
// @Param       foreign         query  string  false "Foreign acquisition flag"  Enums(S, N)
// @Param       incidence       query  string  false "Tax incidence place"
// @Param       classification  query  string  false "Classification code"
// @Param       family          query  string  false "Tax treatment family"
// @Param       group           query  string  false "Legal code group number"
//
// @Success     200  {object} search.FacetCounts
// @Success     304  {string} string "Not Modified"
// @Router      /filters/counts [get]
func (h *Handlers) FacetCounts(c *gin.Context) {
	if notModified(c, h.etag(c, "counts")) {
		return
	}
	ok(c, http.StatusOK, h.svc.FacetCounts(c.Request.Context(), criteriaFrom(c)))
}

// Stats godoc
// @ID          catalogStats
// @Summary     Catalog statistics and provenance
// @Description Totals of the served catalog, its source document and checksum, and, with the SQLite store, the stored row count and last update.
// @Tags        Catalog
// @Produce     json
// @Success     200  {object} handlers.StatsResponse
// @Success     304  {string} string "Not Modified"
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	if notModified(c, WeakETag("stats", h.svc.Version())) {
		return
	}
	ctx := c.Request.Context()
	resp := StatsResponse{CatalogSummary: h.svc.Summary(ctx)}

	if h.db != nil {
		count, updated, err := repo.CatalogStats(ctx, h.db)
		if err != nil {
			// The served snapshot is authoritative; the store block is informative.
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(err).Msg("catalog store stats unavailable")
		} else {
			resp.Store = &StoreStats{Items: count, UpdatedAt: updated}
		}
	}
	ok(c, http.StatusOK, resp)
}
