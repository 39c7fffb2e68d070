package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/inah-tools/archivo/internal/adapters/driven/storage/memory"
	"github.com/inah-tools/archivo/internal/core/domain"
)

// --- Mock implementations ---

// mockCollector implements driven.Collector for testing.
type mockCollector struct {
	records []domain.DocumentRecord
	errs    []error

	// gate, when non-nil, holds every walk until it is closed.
	gate  chan struct{}
	calls atomic.Int32
}

func (m *mockCollector) Collect(ctx context.Context, _ string) (<-chan domain.DocumentRecord, <-chan error) {
	m.calls.Add(1)
	records := make(chan domain.DocumentRecord)
	errs := make(chan error, len(m.errs)+1)

	go func() {
		defer close(records)
		defer close(errs)

		if m.gate != nil {
			select {
			case <-m.gate:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		for _, r := range m.records {
			select {
			case records <- r:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		for _, err := range m.errs {
			errs <- err
		}
	}()

	return records, errs
}

// mockDocumentStore wraps the memory store with injectable failures.
type mockDocumentStore struct {
	*memory.DocumentStore
	replaceErr error
	searchErr  error
	nilResults bool
	lastQuery  string
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{DocumentStore: memory.NewDocumentStore()}
}

func (m *mockDocumentStore) ReplaceAll(ctx context.Context, records []domain.DocumentRecord) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	return m.DocumentStore.ReplaceAll(ctx, records)
}

func (m *mockDocumentStore) Search(ctx context.Context, query string) (domain.ResultSet, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.nilResults {
		return nil, nil
	}
	return m.DocumentStore.Search(ctx, query)
}

// mockWatcher implements driven.ChangeWatcher for testing.
type mockWatcher struct {
	changes  chan string
	watchErr error
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{changes: make(chan string, 16)}
}

func (m *mockWatcher) Watch(_ context.Context, _ string) (<-chan string, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.changes, nil
}

// eventLog collects index events from another goroutine.
type eventLog struct {
	mu     sync.Mutex
	events []domain.IndexEvent
}

func (l *eventLog) add(ev domain.IndexEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) count(t domain.IndexEventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// testRecords returns n records spread over two regions.
func testRecords(n int) []domain.DocumentRecord {
	out := make([]domain.DocumentRecord, n)
	for i := range out {
		region := "CDMX"
		if i%2 == 1 {
			region = "Hidalgo"
		}
		name := fmt.Sprintf("doc-%03d.pdf", i)
		out[i] = domain.DocumentRecord{
			DocumentName: name,
			SiteName:     "Sitio",
			RegionName:   region,
			FullPath:     "/r/" + region + "/Sitio/" + name,
		}
	}
	return out
}
