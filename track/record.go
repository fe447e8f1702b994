package track

import (
	"image"
	"time"

	"github.com/pkg/errors"
)

// TrackState is the lifecycle state of a track record.
type TrackState int

const (
	// StateNew marks a freshly created record with no observations yet.
	StateNew TrackState = iota
	// StateActive marks a record with at least one observation.
	StateActive
	// StateConfirmed marks a record whose observation count exceeded the
	// confirmation threshold.
	StateConfirmed
)

func (s TrackState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateActive:
		return "active"
	case StateConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// TrackRecord aggregates the lifetime state of one tracked object: bounded
// trajectory history, class votes, first/last seen timestamps and the
// one-shot snapshot.
type TrackRecord struct {
	id           int64
	trajectory   *Ring[Point]
	votes        *VoteLedger
	firstSeen    time.Time
	lastSeen     time.Time
	observations uint64
	snapshot     image.Image
	smoother     *pointSmoother
}

func newTrackRecord(id int64, trajectoryCapacity int, smoother *pointSmoother) *TrackRecord {
	return &TrackRecord{
		id:         id,
		trajectory: NewRing[Point](trajectoryCapacity),
		votes:      NewVoteLedger(),
		smoother:   smoother,
	}
}

// observe applies one detection event to the record's timestamps, vote
// ledger and observation count. firstSeen is set exactly once.
func (record *TrackRecord) observe(ts time.Time, label string) {
	if record.firstSeen.IsZero() {
		record.firstSeen = ts
	}
	record.lastSeen = ts
	record.observations++
	record.votes.Add(label)
}

// appendPoint pushes a trajectory point, smoothing it first when smoothing
// is enabled. The raw point is pushed when the smoother fails.
func (record *TrackRecord) appendPoint(center Point) error {
	var err error
	if record.smoother != nil {
		center, err = record.smoother.Smooth(center)
	}
	record.trajectory.Push(center)
	return err
}

// captureSnapshot crops the bounding box region out of the frame and stores
// it as the record's snapshot. It is a no-op once a snapshot is present.
func (record *TrackRecord) captureSnapshot(frame image.Image, box BoundingBox) error {
	if record.snapshot != nil {
		return nil
	}
	if frame == nil {
		return errors.Wrapf(ErrMissingFrame, "track %d", record.id)
	}
	bounds := frame.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return errors.Wrapf(ErrMissingFrame, "track %d: zero-area frame", record.id)
	}
	rect := box.PixelRect(bounds)
	if rect.Empty() {
		return errors.Wrapf(ErrMissingFrame, "track %d: empty crop", record.id)
	}
	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			crop.Set(x-rect.Min.X, y-rect.Min.Y, frame.At(x, y))
		}
	}
	record.snapshot = crop
	return nil
}

// ID returns the record's identity.
func (record *TrackRecord) ID() int64 {
	return record.id
}

// FirstSeen returns the timestamp of the record's first observation.
func (record *TrackRecord) FirstSeen() time.Time {
	return record.firstSeen
}

// LastSeen returns the timestamp of the record's latest observation.
func (record *TrackRecord) LastSeen() time.Time {
	return record.lastSeen
}

// Observations returns the number of events applied to the record. It always
// equals the sum of all vote counts.
func (record *TrackRecord) Observations() uint64 {
	return record.observations
}

// PredictedType returns the class label with the most votes; on a tie the
// label observed first for this record wins.
func (record *TrackRecord) PredictedType() string {
	return record.votes.Leader()
}

// Votes returns the record's vote ledger. Be careful: this is not a copy,
// but a reference to it.
func (record *TrackRecord) Votes() *VoteLedger {
	return record.votes
}

// Trajectory returns a copy of the trajectory points, oldest first.
func (record *TrackRecord) Trajectory() []Point {
	return record.trajectory.Slice()
}

// TrajectoryPixels returns the trajectory truncated to integer pixel
// coordinates, oldest first.
func (record *TrackRecord) TrajectoryPixels() []image.Point {
	points := record.trajectory.Slice()
	pixels := make([]image.Point, len(points))
	for i, pt := range points {
		pixels[i] = pt.Pixel()
	}
	return pixels
}

// Snapshot returns the captured crop or nil when none was captured yet.
func (record *TrackRecord) Snapshot() image.Image {
	return record.snapshot
}

// HasSnapshot reports whether the one-shot snapshot has been captured.
func (record *TrackRecord) HasSnapshot() bool {
	return record.snapshot != nil
}

// State returns the record's lifecycle state for the given confirmation
// threshold.
func (record *TrackRecord) State(confirmThreshold uint64) TrackState {
	switch {
	case record.observations == 0:
		return StateNew
	case record.observations > confirmThreshold:
		return StateConfirmed
	}
	return StateActive
}
