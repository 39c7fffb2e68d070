package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/core/domain"
)

func seededSearchService(t *testing.T) (*SearchService, *mockDocumentStore) {
	t.Helper()
	store := newMockDocumentStore()
	require.NoError(t, store.ReplaceAll(context.Background(), []domain.DocumentRecord{
		{DocumentName: "acta.pdf", SiteName: "Templo Mayor", RegionName: "CDMX", FullPath: "/r/CDMX/Templo Mayor/acta.pdf"},
		{DocumentName: "plano.pdf", SiteName: "Tula", RegionName: "Hidalgo", FullPath: "/r/Hidalgo/Tula/plano.pdf"},
	}))
	return NewSearchService(store), store
}

func TestSearchService_Run_TrimsQuery(t *testing.T) {
	svc, store := seededSearchService(t)

	results, err := svc.Run(context.Background(), "  templo \t")

	require.NoError(t, err)
	assert.Equal(t, "templo", store.lastQuery)
	require.Len(t, results, 1)
	assert.Equal(t, "acta.pdf", results[0].DocumentName)
}

func TestSearchService_Run_EmptyQueryReturnsAll(t *testing.T) {
	svc, _ := seededSearchService(t)

	for _, q := range []string{"", "   "} {
		results, err := svc.Run(context.Background(), q)
		require.NoError(t, err)
		assert.Len(t, results, 2, "query=%q", q)
	}
}

func TestSearchService_Run_NoMatchIsEmptyNotNil(t *testing.T) {
	svc, _ := seededSearchService(t)

	results, err := svc.Run(context.Background(), "xyz")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchService_Run_NilFromStore(t *testing.T) {
	store := newMockDocumentStore()
	store.nilResults = true

	results, err := NewSearchService(store).Run(context.Background(), "acta")

	require.NoError(t, err)
	assert.NotNil(t, results)
}

func TestSearchService_Run_StoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"already wrapped", errors.Join(domain.ErrQueryFailed, errors.New("disk"))},
		{"raw error", errors.New("database is locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockDocumentStore()
			store.searchErr = tt.err

			results, err := NewSearchService(store).Run(context.Background(), "acta")

			assert.ErrorIs(t, err, domain.ErrQueryFailed)
			assert.Nil(t, results)
		})
	}
}

func TestSearchService_Run_NotCached(t *testing.T) {
	svc, store := seededSearchService(t)
	ctx := context.Background()

	first, err := svc.Run(ctx, "")
	require.NoError(t, err)
	require.Len(t, first, 2)

	require.NoError(t, store.ReplaceAll(ctx, nil))

	second, err := svc.Run(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestSearchService_Count(t *testing.T) {
	svc, _ := seededSearchService(t)

	n, err := svc.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
