package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexInProgress indicates an index run is already running.
	// Only one run may be in flight at a time.
	ErrIndexInProgress = errors.New("index run in progress")

	// ErrRootNotSet indicates no root directory was given or configured.
	ErrRootNotSet = errors.New("root directory not set")

	// Index and Query Errors.

	// ErrIndexingFailed indicates the store could not replace its content.
	// The store keeps the content of the previous successful run.
	ErrIndexingFailed = errors.New("indexing failed")

	// ErrQueryFailed indicates the store could not be read.
	// It is distinct from a search with zero matches.
	ErrQueryFailed = errors.New("query failed")

	// ErrTraversalSkipped marks a directory or file the collector could not read.
	// Skips are reported but never abort a run.
	ErrTraversalSkipped = errors.New("traversal skipped")

	// ErrOpenTargetMissing indicates a record's path no longer exists on disk.
	// Re-indexing removes stale records.
	ErrOpenTargetMissing = errors.New("file no longer exists")
)
