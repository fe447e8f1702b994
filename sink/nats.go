package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pkg/errors"

	"github.com/your-org/trackagg/observability"
	"github.com/your-org/trackagg/track"
)

const (
	TracksStreamName  = "TRACKS"
	TracksSubjectBase = "tracks"
)

// TrackEvent is the JSON payload published for a confirmed track.
type TrackEvent struct {
	Session       string    `json:"session"`
	TrackID       int64     `json:"track_id"`
	PredictedType string    `json:"predicted_type"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	Observations  uint64    `json:"observations"`
	Trajectory    [][2]int  `json:"trajectory"`
	HasSnapshot   bool      `json:"has_snapshot"`
}

// NewTrackEvent converts a confirmed-track view into its wire form.
func NewTrackEvent(session uuid.UUID, view track.TrackView) TrackEvent {
	trajectory := make([][2]int, len(view.Trajectory))
	for i, pt := range view.Trajectory {
		trajectory[i] = [2]int{pt.X, pt.Y}
	}
	return TrackEvent{
		Session:       session.String(),
		TrackID:       view.ID,
		PredictedType: view.PredictedType,
		FirstSeen:     view.FirstSeen,
		LastSeen:      view.LastSeen,
		Observations:  view.Observations,
		Trajectory:    trajectory,
		HasSnapshot:   view.Snapshot != nil,
	}
}

// Publisher publishes confirmed-track events over NATS JetStream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(natsURL string) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, errors.Wrap(err, "connect to nats")
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, errors.Wrap(err, "create jetstream context")
	}

	return &Publisher{nc: nc, js: js}, nil
}

// EnsureStream creates the TRACKS stream if it doesn't exist.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        TracksStreamName,
		Subjects:    []string{TracksSubjectBase + ".>"},
		Retention:   jetstream.InterestPolicy,
		MaxAge:      24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Description: "Confirmed track summaries",
	})
	if err != nil {
		return errors.Wrap(err, "create tracks stream")
	}
	return nil
}

// PublishTrack publishes one confirmed-track event under
// tracks.<session>.<track_id>.
func (p *Publisher) PublishTrack(ctx context.Context, event TrackEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal track event")
	}
	subject := fmt.Sprintf("%s.%s.%d", TracksSubjectBase, event.Session, event.TrackID)
	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		return errors.Wrap(err, "publish track event")
	}
	observability.TracksPublished.Inc()
	return nil
}

func (p *Publisher) Ping() error {
	if !p.nc.IsConnected() {
		return errors.New("nats not connected")
	}
	return nil
}

func (p *Publisher) Close() {
	p.nc.Close()
}
