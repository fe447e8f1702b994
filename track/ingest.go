package track

import (
	"image"
	"time"

	"github.com/pkg/errors"

	"github.com/your-org/trackagg/observability"
)

const (
	// DefaultTrajectoryCapacity bounds the per-track trajectory history.
	DefaultTrajectoryCapacity = 90
	// DefaultConfirmThreshold is the observation count a track must strictly
	// exceed to become confirmed and snapshot-eligible.
	DefaultConfirmThreshold = 10
)

// Detection is one object observation within a frame, produced by the
// external detection/association engine.
type Detection struct {
	// TrackID is the persistent identity assigned by the association engine.
	TrackID int64
	// Box is the object's bounding box in normalized coordinates.
	Box BoundingBox
	// Label is the detected class label.
	Label string
}

// Batch is one frame's worth of detections. Frame is the decoded frame the
// detections were computed on; it may be nil when the pixel buffer is not
// available, in which case snapshot capture is deferred to a later frame.
type Batch struct {
	Timestamp  time.Time
	Frame      image.Image
	Detections []Detection
}

// IngestResult is the per-batch outcome: how many events were applied, how
// many snapshots were captured, and the errors for events that could not be
// fully applied.
type IngestResult struct {
	Processed int
	Snapshots int
	Errors    []EventError
}

// Aggregator consolidates per-frame detection events into track records. It
// is the single writer for its store: concurrent ingestion requires external
// serialization, while the confirmed-track query is safe to call between any
// two Ingest calls.
type Aggregator struct {
	store            *Store
	confirmThreshold uint64
	now              func() time.Time
	// frameSize is the most recent known frame size, used to scale
	// normalized centers into pixel space when a batch carries no frame.
	frameSize image.Point
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithTrajectoryCapacity overrides the trajectory history bound.
func WithTrajectoryCapacity(capacity int) Option {
	return func(aggregator *Aggregator) error {
		if capacity <= 0 {
			return errors.Errorf("trajectory capacity must be positive, got %d", capacity)
		}
		aggregator.store.trajectoryCapacity = capacity
		return nil
	}
}

// WithConfirmThreshold overrides the confirmation threshold.
func WithConfirmThreshold(threshold uint64) Option {
	return func(aggregator *Aggregator) error {
		if threshold == 0 {
			return errors.New("confirm threshold must be positive")
		}
		aggregator.confirmThreshold = threshold
		return nil
	}
}

// WithSmoothing enables Kalman smoothing of trajectory points with the given
// filter time step, e.g. 1.0/25.0 for a 25 fps stream.
func WithSmoothing(dt float64) Option {
	return func(aggregator *Aggregator) error {
		if dt <= 0 {
			return errors.Errorf("smoothing time step must be positive, got %v", dt)
		}
		aggregator.store.smoothingDT = dt
		return nil
	}
}

// WithClock overrides the clock used when a batch carries no timestamp.
func WithClock(now func() time.Time) Option {
	return func(aggregator *Aggregator) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		aggregator.now = now
		return nil
	}
}

// NewAggregator creates an aggregator with an empty store and default
// configuration, modified by the given options.
func NewAggregator(options ...Option) (*Aggregator, error) {
	aggregator := &Aggregator{
		store:            NewStore(DefaultTrajectoryCapacity),
		confirmThreshold: DefaultConfirmThreshold,
		now:              time.Now,
	}
	for _, option := range options {
		if err := option(aggregator); err != nil {
			return nil, errors.Wrap(err, "invalid aggregator option")
		}
	}
	return aggregator, nil
}

// Store returns the aggregator's track store.
func (aggregator *Aggregator) Store() *Store {
	return aggregator.store
}

// ConfirmThreshold returns the configured confirmation threshold.
func (aggregator *Aggregator) ConfirmThreshold() uint64 {
	return aggregator.confirmThreshold
}

// Ingest applies one frame's detection events to the store. Events are
// applied independently: a malformed event is skipped and reported without
// aborting the rest of the batch, and a snapshot capture against a missing
// frame buffer is deferred to a later eligible frame. Nothing in here is
// fatal to stream processing.
func (aggregator *Aggregator) Ingest(batch Batch) IngestResult {
	ts := batch.Timestamp
	if ts.IsZero() {
		ts = aggregator.now()
	}
	if batch.Frame != nil {
		if size := batch.Frame.Bounds().Size(); size.X > 0 && size.Y > 0 {
			aggregator.frameSize = size
		}
	}

	var result IngestResult
	for i, detection := range batch.Detections {
		if !detection.Box.Valid() || detection.Label == "" {
			result.Errors = append(result.Errors, EventError{
				Index:   i,
				TrackID: detection.TrackID,
				Err:     errors.Wrapf(ErrInvalidDetection, "label %q, box %+v", detection.Label, detection.Box),
			})
			observability.EventsRejected.Inc()
			continue
		}

		record := aggregator.store.GetOrCreate(detection.TrackID)
		record.observe(ts, detection.Label)
		if aggregator.frameSize.X > 0 && aggregator.frameSize.Y > 0 {
			if err := record.appendPoint(detection.Box.Center(aggregator.frameSize)); err != nil {
				result.Errors = append(result.Errors, EventError{Index: i, TrackID: detection.TrackID, Err: err})
			}
		}
		result.Processed++

		if !record.HasSnapshot() && record.Observations() > aggregator.confirmThreshold {
			if err := record.captureSnapshot(batch.Frame, detection.Box); err != nil {
				result.Errors = append(result.Errors, EventError{Index: i, TrackID: detection.TrackID, Err: err})
			} else {
				result.Snapshots++
				observability.SnapshotsCaptured.Inc()
			}
		}
	}

	observability.EventsIngested.Add(float64(result.Processed))
	observability.TracksStored.Set(float64(aggregator.store.Len()))
	return result
}

// Confirmed returns the tracks whose observation count strictly exceeds the
// aggregator's confirmation threshold. It never mutates the store and can be
// called at any point, including mid-stream or after interruption.
func (aggregator *Aggregator) Confirmed() map[int64]TrackView {
	confirmed := aggregator.store.Confirmed(aggregator.confirmThreshold)
	observability.ConfirmedTracks.Set(float64(len(confirmed)))
	return confirmed
}
