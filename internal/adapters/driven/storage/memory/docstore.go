package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// It matches and orders exactly like the SQLite store.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.DocumentRecord
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.DocumentRecord),
	}
}

// EnsureSchema is a no-op for the memory store.
func (s *DocumentStore) EnsureSchema(_ context.Context) error {
	return nil
}

// ReplaceAll swaps the stored set for records. Later records with the same
// full path win.
func (s *DocumentStore) ReplaceAll(ctx context.Context, records []domain.DocumentRecord) error {
	next := make(map[string]domain.DocumentRecord, len(records))
	for _, r := range records {
		next[r.FullPath] = r
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = next
	return nil
}

// Search returns records whose document, site, or region name contains
// query, ignoring case, ordered by region, site, then document name.
func (s *DocumentStore) Search(ctx context.Context, query string) (domain.ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := domain.FoldCase(query)

	s.mu.RLock()
	results := domain.ResultSet{}
	for _, r := range s.documents {
		if matches(r, needle) {
			results = append(results, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.RegionName != b.RegionName {
			return a.RegionName < b.RegionName
		}
		if a.SiteName != b.SiteName {
			return a.SiteName < b.SiteName
		}
		if a.DocumentName != b.DocumentName {
			return a.DocumentName < b.DocumentName
		}
		return a.FullPath < b.FullPath
	})
	return results, nil
}

// Count returns the number of stored records.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

func matches(r domain.DocumentRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(domain.FoldCase(r.DocumentName), needle) ||
		strings.Contains(domain.FoldCase(r.SiteName), needle) ||
		strings.Contains(domain.FoldCase(r.RegionName), needle)
}
