package track

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors reported per event in IngestResult. None of them aborts
// batch processing.
var (
	// ErrInvalidDetection marks an event with a non-finite or out-of-range
	// bounding box or an empty class label. The event is skipped.
	ErrInvalidDetection = errors.New("invalid detection event")
	// ErrMissingFrame marks a snapshot capture attempt against a missing or
	// zero-area frame buffer. Capture is retried on a later eligible frame.
	ErrMissingFrame = errors.New("missing frame buffer")
)

// EventError is the outcome for a single detection event that could not be
// fully applied.
type EventError struct {
	// Index is the event's position within its batch.
	Index int
	// TrackID is the identity the event was addressed to.
	TrackID int64
	Err     error
}

func (e EventError) Error() string {
	return fmt.Sprintf("event %d (track %d): %v", e.Index, e.TrackID, e.Err)
}

func (e EventError) Unwrap() error {
	return e.Err
}
