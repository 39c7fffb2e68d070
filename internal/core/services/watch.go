package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
	"github.com/inah-tools/archivo/internal/logger"
)

// Ensure AutoIndexer implements the interface.
var _ driving.AutoIndexService = (*AutoIndexer)(nil)

// Default timings for AutoIndexer.
const (
	DefaultQuietPeriod = 2 * time.Second
	DefaultMinInterval = 10 * time.Second
)

// AutoIndexer rebuilds the index when the watched tree changes.
type AutoIndexer struct {
	indexer driving.IndexService
	watcher driven.ChangeWatcher

	// quiet is how long the tree must stay unchanged before a rebuild.
	quiet time.Duration
	// limiter spaces consecutive rebuilds at least minInterval apart.
	limiter *rate.Limiter
}

// NewAutoIndexer creates an auto indexer. Zero durations use the defaults.
func NewAutoIndexer(
	indexer driving.IndexService,
	watcher driven.ChangeWatcher,
	quiet, minInterval time.Duration,
) *AutoIndexer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &AutoIndexer{
		indexer: indexer,
		watcher: watcher,
		quiet:   quiet,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Watch indexes root, then keeps rebuilding it after changes until ctx is
// done.
//
//nolint:gocognit // event loop multiplexing watcher, timer and run events
func (a *AutoIndexer) Watch(ctx context.Context, root string, onEvent func(domain.IndexEvent)) error {
	if root == "" {
		return domain.ErrRootNotSet
	}
	if onEvent == nil {
		onEvent = func(domain.IndexEvent) {}
	}

	changes, err := a.watcher.Watch(ctx, root)
	if err != nil {
		return err
	}

	timer := time.NewTimer(0) // fires at once for the initial run
	defer timer.Stop()

	var (
		runEvents <-chan domain.IndexEvent
		pending   bool
	)

	for {
		select {
		case <-ctx.Done():
			// Let an in-flight run observe the cancellation and finish.
			if runEvents != nil {
				for ev := range runEvents {
					onEvent(ev)
				}
			}
			return nil

		case path, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			logger.Debug("Change detected: %s", path)
			if runEvents != nil {
				pending = true
				continue
			}
			timer.Reset(a.quiet)

		case <-timer.C:
			if runEvents != nil {
				pending = true
				continue
			}
			r := a.limiter.Reserve()
			if d := r.Delay(); d > 0 {
				r.Cancel()
				timer.Reset(d)
				continue
			}
			events, err := a.indexer.Start(ctx, root)
			if errors.Is(err, domain.ErrIndexInProgress) {
				// Another caller owns the indexer; try again later.
				logger.Debug("Index busy, retrying in %s", a.quiet)
				timer.Reset(a.quiet)
				continue
			}
			if err != nil {
				return err
			}
			runEvents = events

		case ev, ok := <-runEvents:
			if !ok {
				runEvents = nil
				if pending {
					pending = false
					timer.Reset(a.quiet)
				}
				continue
			}
			onEvent(ev)
		}
	}
}
