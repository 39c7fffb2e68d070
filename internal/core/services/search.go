package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
	"github.com/inah-tools/archivo/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs substring searches against the document store.
// Every call reaches the store; results are never cached.
type SearchService struct {
	store driven.DocumentStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.DocumentStore) *SearchService {
	return &SearchService{store: store}
}

// Run trims rawQuery and returns the matching records in default order.
// Zero matches is an empty, non-nil result set.
func (s *SearchService) Run(ctx context.Context, rawQuery string) (domain.ResultSet, error) {
	query := domain.NormalizeQuery(rawQuery)
	logger.Debug("Search query: %q", query)

	results, err := s.store.Search(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrQueryFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
		}
		return nil, err
	}
	if results == nil {
		results = domain.ResultSet{}
	}

	logger.Debug("Search returned %d records", len(results))
	return results, nil
}

// Count returns the number of indexed documents.
func (s *SearchService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrQueryFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
		}
		return 0, err
	}
	return n, nil
}
