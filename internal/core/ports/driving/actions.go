package driving

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// OpenDocument opens the record's file with the default application.
	// Returns domain.ErrOpenTargetMissing if the file no longer exists.
	OpenDocument(ctx context.Context, record *domain.DocumentRecord) error

	// CopyPath copies the record's full path to the system clipboard.
	CopyPath(ctx context.Context, record *domain.DocumentRecord) error
}
