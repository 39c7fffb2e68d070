package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
	"github.com/inah-tools/archivo/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// eventBuffer sizes the channel returned by Start.
const eventBuffer = 16

// IndexService rebuilds the document store from a directory tree.
type IndexService struct {
	collector     driven.Collector
	store         driven.DocumentStore
	progressEvery int

	running atomic.Bool
}

// NewIndexService creates a new index service. A progress event is sent
// for the first collected document and then every progressEvery documents;
// values below 1 use domain.DefaultProgressEvery.
func NewIndexService(collector driven.Collector, store driven.DocumentStore, progressEvery int) *IndexService {
	if progressEvery < 1 {
		progressEvery = domain.DefaultProgressEvery
	}
	return &IndexService{
		collector:     collector,
		store:         store,
		progressEvery: progressEvery,
	}
}

// Running reports whether a run is in flight.
func (s *IndexService) Running() bool {
	return s.running.Load()
}

// Reindex runs a full rebuild of root and blocks until it finishes.
func (s *IndexService) Reindex(
	ctx context.Context, root string, events chan<- domain.IndexEvent,
) (*domain.IndexSummary, error) {
	if root == "" {
		return nil, domain.ErrRootNotSet
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrIndexInProgress
	}
	defer s.running.Store(false)

	return s.run(ctx, root, events)
}

// Start launches a full rebuild of root in the background.
func (s *IndexService) Start(ctx context.Context, root string) (<-chan domain.IndexEvent, error) {
	if root == "" {
		return nil, domain.ErrRootNotSet
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrIndexInProgress
	}

	events := make(chan domain.IndexEvent, eventBuffer)
	go func() {
		defer close(events)
		defer s.running.Store(false)

		_, _ = s.run(ctx, root, events)
	}()

	return events, nil
}

// run performs one rebuild. The caller holds the running flag.
func (s *IndexService) run(
	ctx context.Context, root string, events chan<- domain.IndexEvent,
) (*domain.IndexSummary, error) {
	runID := uuid.NewString()
	started := time.Now()

	logger.Section("Index Run")
	logger.Info("Run %s: indexing %s", runID, root)

	emit(ctx, events, domain.IndexEvent{Type: domain.IndexStarted, RunID: runID, Root: root})

	fail := func(err error) (*domain.IndexSummary, error) {
		logger.Warn("Index run %s failed: %v", runID, err)
		// The final event is always delivered.
		if events != nil {
			events <- domain.IndexEvent{Type: domain.IndexFailed, RunID: runID, Root: root, Err: err}
		}
		return nil, err
	}

	records, skipped, err := s.collect(ctx, runID, root, events)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrIndexingFailed, err))
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		if !errors.Is(err, domain.ErrIndexingFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrIndexingFailed, err)
		}
		return fail(err)
	}

	summary := &domain.IndexSummary{
		RunID:     runID,
		Root:      root,
		Documents: len(records),
		Skipped:   skipped,
		Duration:  time.Since(started),
	}
	logger.Info("Run %s: indexed %d documents (%d skipped) in %s",
		runID, summary.Documents, summary.Skipped, summary.Duration.Round(time.Millisecond))

	if events != nil {
		events <- domain.IndexEvent{
			Type:      domain.IndexCompleted,
			RunID:     runID,
			Root:      root,
			Processed: summary.Documents,
			Summary:   summary,
		}
	}
	return summary, nil
}

// collect drains both collector channels until they are closed. Skips are
// counted; the first other error is returned once the walk has ended.
func (s *IndexService) collect(
	ctx context.Context, runID, root string, events chan<- domain.IndexEvent,
) ([]domain.DocumentRecord, int, error) {
	recordsCh, errsCh := s.collector.Collect(ctx, root)

	var (
		records []domain.DocumentRecord
		skipped int
		fatal   error
	)
	progress := rate.Sometimes{Every: s.progressEvery}

	for recordsCh != nil || errsCh != nil {
		select {
		case r, ok := <-recordsCh:
			if !ok {
				recordsCh = nil
				continue
			}
			records = append(records, r)
			progress.Do(func() {
				emit(ctx, events, domain.IndexEvent{
					Type:      domain.IndexProgress,
					RunID:     runID,
					Root:      root,
					Processed: len(records),
				})
			})

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if errors.Is(err, domain.ErrTraversalSkipped) {
				skipped++
				continue
			}
			if fatal == nil {
				fatal = err
			}
		}
	}

	if fatal != nil {
		return nil, skipped, fatal
	}
	if err := ctx.Err(); err != nil {
		return nil, skipped, err
	}
	return records, skipped, nil
}

// emit sends a non-final event, giving up if ctx is done.
func emit(ctx context.Context, events chan<- domain.IndexEvent, ev domain.IndexEvent) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
