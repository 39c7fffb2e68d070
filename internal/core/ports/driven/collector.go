package driven

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// Collector walks a directory tree and produces one record per document.
type Collector interface {
	// Collect walks root and sends records as they are found.
	// Both channels are closed when the walk ends. Unreadable entries are
	// reported on the error channel wrapped in domain.ErrTraversalSkipped
	// and do not stop the walk; any other error on the channel is fatal
	// for the run.
	Collect(ctx context.Context, root string) (<-chan domain.DocumentRecord, <-chan error)
}
