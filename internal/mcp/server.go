// Package mcp exposes the catalog to Model Context Protocol clients over
// stdio. Each tool is a thin adapter over the same catalog service the HTTP
// API uses, so both surfaces return identical rankings.
package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/services"
)

const (
	// ServerName is the MCP server name
	ServerName = "taxcode-search"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Catalog is the subset of the catalog service the tools call.
type Catalog interface {
	Query(ctx context.Context, req services.QueryRequest) (*services.QueryResult, error)
	Suggest(ctx context.Context, partial string, limit int) ([]search.Suggestion, error)
	GetItem(ctx context.Context, code string) (*services.ResultItem, error)
	Describe(ctx context.Context, code string) search.Classification
	Families(ctx context.Context) []search.Family
	Summary(ctx context.Context) services.CatalogSummary
}

// Server wraps the MCP server with the catalog it serves.
type Server struct {
	mcp     *server.MCPServer
	catalog Catalog
}

// NewServer creates an MCP server with every catalog tool registered.
func NewServer(catalog Catalog) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		catalog: catalog,
	}
	s.registerTools()
	return s
}

// Serve runs the server on the given streams until ctx is cancelled or
// the input is closed. Nothing else may write to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchServicesTool(), s.handleSearchServices)
	s.mcp.AddTool(autocompleteTool(), s.handleAutocomplete)
	s.mcp.AddTool(getItemTool(), s.handleGetItem)
	s.mcp.AddTool(describeClassificationTool(), s.handleDescribeClassification)
	s.mcp.AddTool(listFamiliesTool(), s.handleListFamilies)
	s.mcp.AddTool(catalogSummaryTool(), s.handleCatalogSummary)
}

func searchServicesTool() mcp.Tool {
	return mcp.NewTool("search_services",
		mcp.WithDescription("Search LC 116 service codes, their descriptions and NBS entries. Code-like queries such as 1.01 or 1.0501.10.00 match codes directly."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Free text or code")),
		mcp.WithString("mode", mcp.Description("Match mode"), mcp.Enum("contains", "exact", "fuzzy", "pattern")),
		mcp.WithString("category", mcp.Description("Primary category filter")),
		mcp.WithString("family", mcp.Description("Tax treatment family filter")),
		mcp.WithString("group", mcp.Description("Legal code group number filter")),
		mcp.WithString("sort", mcp.Description("Ordering"), mcp.Enum("relevance", "legal_code", "harmonized_code")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of rows (1-50)"), mcp.Min(1), mcp.Max(50)),
	)
}

func autocompleteTool() mcp.Tool {
	return mcp.NewTool("autocomplete",
		mcp.WithDescription("Suggest legal codes, descriptions and NBS codes for a partial input"),
		mcp.WithString("partial", mcp.Required(), mcp.Description("Partial input")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of suggestions"), mcp.Min(1)),
	)
}

func getItemTool() mcp.Tool {
	return mcp.NewTool("get_item",
		mcp.WithDescription("Get one legal code with its NBS entries and their classifications"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Legal code, e.g. 1.01")),
	)
}

func describeClassificationTool() mcp.Tool {
	return mcp.NewTool("describe_classification",
		mcp.WithDescription("Resolve a cClassTrib code to its tax treatment family"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Classification code, e.g. 000001")),
	)
}

func listFamiliesTool() mcp.Tool {
	return mcp.NewTool("list_families",
		mcp.WithDescription("List the tax treatment families"),
	)
}

func catalogSummaryTool() mcp.Tool {
	return mcp.NewTool("catalog_summary",
		mcp.WithDescription("Totals, provenance and version of the served catalog"),
	)
}
