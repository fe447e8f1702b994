package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackagg",
		Name:      "events_ingested_total",
		Help:      "Total number of detection events applied to the store",
	})

	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackagg",
		Name:      "events_rejected_total",
		Help:      "Total number of malformed detection events skipped",
	})

	SnapshotsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackagg",
		Name:      "snapshots_captured_total",
		Help:      "Total number of one-shot track snapshots captured",
	})

	SnapshotsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackagg",
		Name:      "snapshots_persisted_total",
		Help:      "Total number of snapshots written to a sink",
	})

	TracksPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackagg",
		Name:      "tracks_published_total",
		Help:      "Total number of confirmed-track events published",
	})

	TracksStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackagg",
		Name:      "tracks_stored",
		Help:      "Number of track records in the store",
	})

	ConfirmedTracks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackagg",
		Name:      "confirmed_tracks",
		Help:      "Number of tracks over the confirmation threshold at the last query",
	})
)
