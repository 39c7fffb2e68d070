package driving

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// IndexService rebuilds the store from a directory tree.
// At most one run is in flight; a second request while one is running
// fails with domain.ErrIndexInProgress.
type IndexService interface {
	// Reindex runs a full rebuild and blocks until it finishes. Events are
	// sent to events when it is non-nil; the caller must keep receiving
	// until Reindex returns.
	Reindex(ctx context.Context, root string, events chan<- domain.IndexEvent) (*domain.IndexSummary, error)

	// Start launches a full rebuild on a background goroutine. The
	// returned channel carries the run's events and is closed after the
	// final IndexCompleted or IndexFailed event.
	Start(ctx context.Context, root string) (<-chan domain.IndexEvent, error)

	// Running reports whether a run is in flight.
	Running() bool
}

// AutoIndexService keeps the store in step with a directory tree by
// running a full rebuild whenever the tree changes.
type AutoIndexService interface {
	// Watch indexes root once, then rebuilds after every quiet period that
	// follows a change. Changes seen during a run are folded into a single
	// follow-up run. Events of every run are passed to onEvent. Watch
	// blocks until ctx is done and returns nil on cancellation.
	Watch(ctx context.Context, root string, onEvent func(domain.IndexEvent)) error
}
