package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/core/domain"
)

func TestExtractRegion(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "plain region",
			uri:      "archivo://regions/CDMX",
			expected: "CDMX",
		},
		{
			name:     "percent-encoded region",
			uri:      "archivo://regions/Estado%20de%20M%C3%A9xico",
			expected: "Estado de México",
		},
		{
			name:     "invalid prefix",
			uri:      "file://regions/CDMX",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "archivo://regions/CDMX/Templo",
			expected: "",
		},
		{
			name:     "missing region",
			uri:      "archivo://regions/",
			expected: "",
		},
		{
			name:     "bad escape",
			uri:      "archivo://regions/%zz",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractRegion(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleIndexResource(t *testing.T) {
	ctx := context.Background()

	t.Run("count only without settings", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{count: 7}})
		require.NoError(t, err)

		result, err := server.handleIndexResource(ctx, makeReadResourceRequest("archivo://index"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `{"documents": 7}`, result.Contents[0].Text)
	})

	t.Run("includes settings", func(t *testing.T) {
		settings := &mockSettingsService{settings: &domain.AppSettings{
			Index: domain.IndexSettings{Root: "/archivo", Extensions: []string{".pdf"}},
		}}
		server, err := NewServer(&Ports{Search: &mockSearchService{count: 3}, Settings: settings})
		require.NoError(t, err)

		result, err := server.handleIndexResource(ctx, makeReadResourceRequest("archivo://index"))

		require.NoError(t, err)
		assert.JSONEq(t, `{"documents": 3, "root": "/archivo", "extensions": [".pdf"]}`, result.Contents[0].Text)
	})

	t.Run("count failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrQueryFailed}})
		require.NoError(t, err)

		_, err = server.handleIndexResource(ctx, makeReadResourceRequest("archivo://index"))
		assert.ErrorIs(t, err, domain.ErrQueryFailed)
	})

	t.Run("settings failure", func(t *testing.T) {
		settings := &mockSettingsService{err: errors.New("bad config")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Settings: settings})
		require.NoError(t, err)

		_, err = server.handleIndexResource(ctx, makeReadResourceRequest("archivo://index"))
		assert.ErrorContains(t, err, "bad config")
	})
}

func TestServer_handleRegionResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns documents of the region ignoring case", func(t *testing.T) {
		results := append(sampleResults(), domain.DocumentRecord{
			// Matches the query through its site, not its region.
			DocumentName: "nota.pdf", SiteName: "Casa CDMX", RegionName: "Puebla", FullPath: "/a/Puebla/Casa CDMX/nota.pdf",
		})
		search := &mockSearchService{results: results}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		result, err := server.handleRegionResource(ctx, makeReadResourceRequest("archivo://regions/cdmx"))

		require.NoError(t, err)
		assert.Equal(t, "cdmx", search.lastQuery)

		var docs []domain.DocumentRecord
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "acta.pdf", docs[0].DocumentName)
	})

	t.Run("unknown region is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{results: sampleResults()}})
		require.NoError(t, err)

		_, err = server.handleRegionResource(ctx, makeReadResourceRequest("archivo://regions/Oaxaca"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleRegionResource(ctx, makeReadResourceRequest("archivo://regions/"))
		assert.Error(t, err)
	})

	t.Run("search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrQueryFailed}})
		require.NoError(t, err)

		_, err = server.handleRegionResource(ctx, makeReadResourceRequest("archivo://regions/CDMX"))
		assert.ErrorIs(t, err, domain.ErrQueryFailed)
	})
}
