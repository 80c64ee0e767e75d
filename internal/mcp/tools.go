package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
)

// maxSearchRows caps search_services output; tool results end up in a
// model context window.
const maxSearchRows = 50

// searchRow is the compact row returned by search_services.
type searchRow struct {
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Score          float64  `json:"score"`
	NBS            []string `json:"nbs,omitempty"`
	Classification string   `json:"classification,omitempty"`
	Family         string   `json:"family,omitempty"`
}

func (s *Server) handleSearchServices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required and cannot be empty"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit < 1 || limit > maxSearchRows {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxSearchRows)), nil
	}

	res, err := s.catalog.Query(ctx, services.QueryRequest{
		Query:       query,
		Mode:        request.GetString("mode", ""),
		UseSynonyms: true,
		Filters: search.Criteria{
			PrimaryCategory:    request.GetString("category", ""),
			TaxTreatmentFamily: request.GetString("family", ""),
			LegalCodeGroup:     request.GetString("group", ""),
		},
		Sort:     request.GetString("sort", ""),
		Page:     1,
		PageSize: limit,
	})
	if err != nil {
		return toolError(err), nil
	}

	rows := make([]searchRow, 0, len(res.Items))
	for _, it := range res.Items {
		row := searchRow{
			Code:        it.Code,
			Description: it.Description,
			Category:    it.PrimaryCategory,
			Score:       it.Score,
		}
		for _, e := range it.Entries {
			row.NBS = append(row.NBS, e.NBSCode)
			if row.Classification == "" && e.Primary != nil {
				row.Classification = e.Primary.Code
				row.Family = e.Primary.Category
			}
		}
		rows = append(rows, row)
	}

	return mcp.NewToolResultText(formatJSON(map[string]any{
		"query":   res.Plan.Query,
		"is_code": res.Plan.IsCode,
		"total":   res.Page.Total,
		"results": rows,
	})), nil
}

func (s *Server) handleAutocomplete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partial, err := request.RequireString("partial")
	if err != nil {
		return mcp.NewToolResultError("partial parameter is required"), nil
	}
	got, err := s.catalog.Suggest(ctx, partial, request.GetInt("limit", 0))
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(map[string]any{"suggestions": got})), nil
}

func (s *Server) handleGetItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("code parameter is required"), nil
	}
	row, err := s.catalog.GetItem(ctx, code)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(row)), nil
}

func (s *Server) handleDescribeClassification(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil || strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("code parameter is required"), nil
	}
	return mcp.NewToolResultText(formatJSON(s.catalog.Describe(ctx, code))), nil
}

func (s *Server) handleListFamilies(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(map[string]any{"families": s.catalog.Families(ctx)})), nil
}

func (s *Server) handleCatalogSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.catalog.Summary(ctx))), nil
}

// toolError turns service errors into tool-level errors the client can show.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return mcp.NewToolResultError("item not found")
	case errors.Is(err, services.ErrInvalidMode),
		errors.Is(err, services.ErrInvalidSort),
		errors.Is(err, services.ErrQueryTooLong):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError("internal error: " + err.Error())
	}
}

// formatJSON formats v as indented JSON
func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
