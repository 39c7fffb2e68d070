package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// defaultLimit caps search results when the caller gives no limit.
const defaultLimit = 50

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to find in document, site, or region names; empty lists everything"`
	Sort  string `json:"sort,omitempty" jsonschema:"optional sort column: region, site, or document"`
	Desc  bool   `json:"desc,omitempty" jsonschema:"sort in descending order"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []domain.DocumentRecord `json:"results"`
	Count   int                     `json:"count"`
	// Total is the number of matches before the limit was applied.
	Total int `json:"total"`
}

// ReindexInput is the input schema for the reindex tool.
type ReindexInput struct {
	Root string `json:"root,omitempty" jsonschema:"directory to index; defaults to the configured root"`
}

// ReindexOutput is the output schema for the reindex tool.
type ReindexOutput struct {
	RunID      string `json:"run_id"`
	Root       string `json:"root"`
	Documents  int    `json:"documents"`
	Skipped    int    `json:"skipped"`
	DurationMS int64  `json:"duration_ms"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed documents by document, site, or region name (case-insensitive substring)",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reindex",
		Description: "Rebuild the document index from a directory tree",
	}, s.handleReindex)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := s.ports.Search.Run(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if input.Sort != "" {
		results, err = s.sort(results, input.Sort, input.Desc)
		if err != nil {
			return nil, SearchOutput{}, err
		}
	}

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = domain.ResultSet{}
	}

	return nil, SearchOutput{
		Results: results,
		Count:   len(results),
		Total:   total,
	}, nil
}

// sort orders rs by the named column.
func (s *Server) sort(rs domain.ResultSet, name string, desc bool) (domain.ResultSet, error) {
	if s.ports.Sorter == nil {
		return nil, fmt.Errorf("%w: sorting is not available", domain.ErrInvalidInput)
	}
	col, err := domain.ParseSortColumn(name)
	if err != nil {
		return nil, err
	}

	rs, state, err := s.ports.Sorter.Sort(rs, col, domain.NewSortState())
	if err != nil {
		return nil, err
	}
	if desc {
		rs, _, err = s.ports.Sorter.Sort(rs, col, state)
	}
	return rs, err
}

// handleReindex handles the reindex tool invocation. It blocks until the
// run finishes.
func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReindexInput,
) (*mcp.CallToolResult, ReindexOutput, error) {
	if s.ports.Index == nil {
		return nil, ReindexOutput{}, ErrReindexUnavailable
	}

	root := input.Root
	if root == "" && s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, ReindexOutput{}, err
		}
		root = settings.Index.Root
	}
	if root == "" {
		return nil, ReindexOutput{}, domain.ErrRootNotSet
	}

	summary, err := s.ports.Index.Reindex(ctx, root, nil)
	if err != nil {
		return nil, ReindexOutput{}, err
	}

	return nil, ReindexOutput{
		RunID:      summary.RunID,
		Root:       summary.Root,
		Documents:  summary.Documents,
		Skipped:    summary.Skipped,
		DurationMS: summary.Duration.Milliseconds(),
	}, nil
}
