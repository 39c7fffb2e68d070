// Package tui provides the interactive terminal interface for archivo.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Search runs substring queries against the index.
	Search driving.SearchService

	// Sorter re-orders results by column.
	Sorter driving.ResultSorter

	// Index rebuilds the index in the background.
	Index driving.IndexService

	// Actions opens documents and copies paths.
	Actions driving.ResultActionService

	// Settings manages the index root and extensions.
	Settings driving.SettingsService
}

// Validate ensures the required ports are set. Only Search is required;
// the features backed by the other ports are disabled when they are nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
