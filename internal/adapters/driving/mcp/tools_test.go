package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/services"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{results: sampleResults()}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "  templo "})

		require.NoError(t, err)
		assert.Equal(t, "  templo ", mockSearch.lastQuery)
		assert.Equal(t, 3, output.Count)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, "acta.pdf", output.Results[0].DocumentName)
		assert.Equal(t, "Templo Mayor", output.Results[0].SiteName)
		assert.Equal(t, "CDMX", output.Results[0].RegionName)
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "xyz"})

		require.NoError(t, err)
		assert.NotNil(t, output.Results)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("limit truncates but reports total", func(t *testing.T) {
		records := make(domain.ResultSet, 0, 60)
		for i := range 60 {
			records = append(records, domain.DocumentRecord{
				DocumentName: fmt.Sprintf("doc-%02d.pdf", i),
				FullPath:     fmt.Sprintf("/a/doc-%02d.pdf", i),
			})
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{results: records}})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, defaultLimit, output.Count)
		assert.Equal(t, 60, output.Total)

		_, output, err = server.handleSearch(ctx, nil, SearchInput{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, output.Count)
	})

	t.Run("sorts by column", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{results: sampleResults()},
			Sorter: services.NewResultSorter(),
		})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Sort: "document"})
		require.NoError(t, err)
		assert.Equal(t, []string{"acta.pdf", "informe.pdf", "plano.pdf"}, names(output.Results))

		_, output, err = server.handleSearch(ctx, nil, SearchInput{Sort: "document", Desc: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"plano.pdf", "informe.pdf", "acta.pdf"}, names(output.Results))
	})

	t.Run("unknown sort column", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{results: sampleResults()},
			Sorter: services.NewResultSorter(),
		})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Sort: "size"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sort without sorter", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{results: sampleResults()}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Sort: "region"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: fmt.Errorf("%w: disk I/O error", domain.ErrQueryFailed),
		}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrQueryFailed)
	})
}

func TestServer_handleReindex(t *testing.T) {
	ctx := context.Background()
	summary := &domain.IndexSummary{
		RunID:     "run-1",
		Root:      "/archivo",
		Documents: 12,
		Skipped:   1,
		Duration:  1500 * time.Millisecond,
	}

	t.Run("uses the given root", func(t *testing.T) {
		index := &mockIndexService{summary: summary}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Index: index})
		require.NoError(t, err)

		_, output, err := server.handleReindex(ctx, nil, ReindexInput{Root: "/archivo"})

		require.NoError(t, err)
		assert.Equal(t, "/archivo", index.lastRoot)
		assert.Equal(t, ReindexOutput{
			RunID:      "run-1",
			Root:       "/archivo",
			Documents:  12,
			Skipped:    1,
			DurationMS: 1500,
		}, output)
	})

	t.Run("falls back to the configured root", func(t *testing.T) {
		index := &mockIndexService{summary: summary}
		settings := &mockSettingsService{settings: &domain.AppSettings{
			Index: domain.IndexSettings{Root: "/configurado"},
		}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Index: index, Settings: settings})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{})

		require.NoError(t, err)
		assert.Equal(t, "/configurado", index.lastRoot)
	})

	t.Run("no root", func(t *testing.T) {
		settings := &mockSettingsService{settings: &domain.AppSettings{}}
		server, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Index:    &mockIndexService{summary: summary},
			Settings: settings,
		})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{})
		assert.ErrorIs(t, err, domain.ErrRootNotSet)
	})

	t.Run("without index service", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{Root: "/archivo"})
		assert.ErrorIs(t, err, ErrReindexUnavailable)
	})

	t.Run("run in progress", func(t *testing.T) {
		index := &mockIndexService{err: domain.ErrIndexInProgress}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Index: index})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{Root: "/archivo"})
		assert.ErrorIs(t, err, domain.ErrIndexInProgress)
	})

	t.Run("settings failure", func(t *testing.T) {
		settings := &mockSettingsService{err: errors.New("config unreadable")}
		server, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Index:    &mockIndexService{summary: summary},
			Settings: settings,
		})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{})
		assert.ErrorContains(t, err, "config unreadable")
	})
}

func names(rs []domain.DocumentRecord) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].DocumentName
	}
	return out
}
