package driven

import "context"

// ChangeWatcher reports changes under a directory tree.
type ChangeWatcher interface {
	// Watch starts watching root and returns a channel of changed paths.
	// The channel is closed once ctx is done. Bursts of changes are not
	// merged; callers debounce.
	Watch(ctx context.Context, root string) (<-chan string, error)
}
