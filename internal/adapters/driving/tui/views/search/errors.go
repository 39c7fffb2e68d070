package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoIndexService indicates that reindexing is not available.
	ErrNoIndexService = errors.New("reindex is not available")
)
