package track

import (
	"fmt"
	"image"
	"time"
)

// timeLayout is the timestamp format used in track reports.
const timeLayout = "02.01.2006 15:04:05"

// TrackView is a read-only export of a track record, as returned by the
// confirmed-track query.
type TrackView struct {
	ID            int64
	FirstSeen     time.Time
	LastSeen      time.Time
	PredictedType string
	Trajectory    []image.Point
	Snapshot      image.Image
	Observations  uint64
}

func newTrackView(record *TrackRecord) TrackView {
	return TrackView{
		ID:            record.id,
		FirstSeen:     record.firstSeen,
		LastSeen:      record.lastSeen,
		PredictedType: record.PredictedType(),
		Trajectory:    record.TrajectoryPixels(),
		Snapshot:      record.snapshot,
		Observations:  record.observations,
	}
}

// String formats the view as a one-line report entry.
func (view TrackView) String() string {
	return fmt.Sprintf("(%s) - (%s): %s(count=%d)",
		view.FirstSeen.Format(timeLayout),
		view.LastSeen.Format(timeLayout),
		view.PredictedType,
		view.Observations,
	)
}
