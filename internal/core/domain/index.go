package domain

import "time"

// IndexEventType identifies the kind of index event.
type IndexEventType int

const (
	// IndexStarted is sent once when a run begins.
	IndexStarted IndexEventType = iota
	// IndexProgress is sent periodically while documents are collected.
	IndexProgress
	// IndexCompleted is sent when the store holds the new content.
	IndexCompleted
	// IndexFailed is sent when the run aborted. The store keeps its
	// previous content.
	IndexFailed
)

// String returns the string representation.
func (t IndexEventType) String() string {
	switch t {
	case IndexStarted:
		return "started"
	case IndexProgress:
		return "progress"
	case IndexCompleted:
		return "completed"
	case IndexFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IndexEvent is a message from a background index run to the foreground.
// The foreground owns all presentation state and applies events itself.
type IndexEvent struct {
	Type  IndexEventType
	RunID string
	Root  string

	// Processed is the number of documents collected so far.
	Processed int

	// Summary is set on IndexCompleted.
	Summary *IndexSummary

	// Err is set on IndexFailed.
	Err error
}

// IndexSummary describes a finished index run.
type IndexSummary struct {
	RunID     string
	Root      string
	Documents int
	Skipped   int
	Duration  time.Duration
}
