package sink

import (
	"image"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/trackagg/track"
)

func TestNewTrackEvent(t *testing.T) {
	session := uuid.New()
	firstSeen := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	view := track.TrackView{
		ID:            7,
		FirstSeen:     firstSeen,
		LastSeen:      firstSeen.Add(30 * time.Second),
		PredictedType: "car",
		Trajectory:    []image.Point{{X: 10, Y: 20}, {X: 12, Y: 22}},
		Snapshot:      image.NewRGBA(image.Rect(0, 0, 8, 8)),
		Observations:  31,
	}

	event := NewTrackEvent(session, view)

	assert.Equal(t, session.String(), event.Session)
	assert.Equal(t, int64(7), event.TrackID)
	assert.Equal(t, "car", event.PredictedType)
	assert.Equal(t, uint64(31), event.Observations)
	assert.True(t, event.HasSnapshot)
	assert.Equal(t, [][2]int{{10, 20}, {12, 22}}, event.Trajectory)
	assert.Equal(t, view.FirstSeen, event.FirstSeen)
	assert.Equal(t, view.LastSeen, event.LastSeen)
}

func TestNewTrackEventWithoutSnapshot(t *testing.T) {
	event := NewTrackEvent(uuid.New(), track.TrackView{ID: 1, PredictedType: "truck"})

	assert.False(t, event.HasSnapshot)
	assert.Empty(t, event.Trajectory)
}
