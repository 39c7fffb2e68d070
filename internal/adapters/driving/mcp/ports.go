package mcp

import (
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries against the index.
	Search driving.SearchService

	// Sorter orders search results by column. Optional.
	Sorter driving.ResultSorter

	// Index rebuilds the index. Optional; without it the reindex tool
	// reports ErrReindexUnavailable.
	Index driving.IndexService

	// Settings supplies the remembered root. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
