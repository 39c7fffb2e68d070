package driving

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Run searches the store for rawQuery after trimming it. An empty
	// query returns every record in default order.
	Run(ctx context.Context, rawQuery string) (domain.ResultSet, error)

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int, error)
}

// ResultSorter re-orders an already fetched result set.
type ResultSorter interface {
	// Sort orders rs by column, toggling the direction remembered in state.
	// It returns the re-ordered set and the updated state without touching
	// the store.
	Sort(rs domain.ResultSet, column domain.SortColumn, state domain.SortState) (domain.ResultSet, domain.SortState, error)
}
