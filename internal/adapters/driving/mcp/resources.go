package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inah-tools/archivo/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for archivo resources.
	uriScheme = "archivo://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the index.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Indexed document count and index settings",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	// Template for the documents of one region.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "regions/{region}",
		Name:        "region-documents",
		Description: "Documents filed under a specific region",
		MIMEType:    "application/json",
	}, s.handleRegionResource)
}

// indexInfo is the body of the index resource.
type indexInfo struct {
	Documents  int      `json:"documents"`
	Root       string   `json:"root,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
}

// handleIndexResource reports the document count and settings.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	count, err := s.ports.Search.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}

	info := indexInfo{Documents: count}
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		info.Root = settings.Index.Root
		info.Extensions = settings.Index.Extensions
	}

	return jsonResource(req.Params.URI, info)
}

// handleRegionResource returns every document whose region matches the
// URI's region, ignoring case.
func (s *Server) handleRegionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	region := extractRegion(req.Params.URI)
	if region == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Search.Run(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("searching region: %w", err)
	}

	want := domain.FoldCase(region)
	docs := make([]domain.DocumentRecord, 0, len(results))
	for i := range results {
		if domain.FoldCase(results[i].RegionName) == want {
			docs = append(docs, results[i])
		}
	}
	if len(docs) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, docs)
}

// jsonResource wraps v as a single JSON resource content.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRegion extracts the region from a URI like archivo://regions/{region}.
// The region may be percent-encoded.
func extractRegion(uri string) string {
	const prefix = uriScheme + "regions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	region := strings.TrimPrefix(uri, prefix)
	if region == "" || strings.Contains(region, "/") {
		return ""
	}
	decoded, err := url.PathUnescape(region)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(decoded)
}
