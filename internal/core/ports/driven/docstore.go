package driven

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// DocumentStore persists document records.
// Backed by SQLite; an in-memory implementation exists for tests.
type DocumentStore interface {
	// EnsureSchema creates the persistent structure if it is missing.
	// It is idempotent and safe to call on every startup.
	EnsureSchema(ctx context.Context) error

	// ReplaceAll atomically replaces every stored record with records.
	// Later records win over earlier ones with the same FullPath.
	// On failure the previous content is left intact and the error
	// wraps domain.ErrIndexingFailed.
	ReplaceAll(ctx context.Context, records []domain.DocumentRecord) error

	// Search returns records whose document, site, or region name contains
	// query case-insensitively, ordered by region, site, then document.
	// An empty query matches every record. Failures wrap domain.ErrQueryFailed.
	Search(ctx context.Context, query string) (domain.ResultSet, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
