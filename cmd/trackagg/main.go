// Command trackagg replays pre-computed detection batches through the track
// aggregation engine and reports the confirmed tracks. Detection and
// identity association happen upstream: the input is a JSONL file with one
// batch per line:
//
//	{"timestamp":"2026-08-24T10:00:00Z","frame":"frames/000001.jpg",
//	 "detections":[{"track_id":1,"cx":0.5,"cy":0.5,"w":0.1,"h":0.2,"label":"car"}]}
//
// The frame path is optional; without it snapshot capture is deferred.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/trackagg/config"
	"github.com/your-org/trackagg/observability"
	"github.com/your-org/trackagg/sink"
	"github.com/your-org/trackagg/track"
)

type batchLine struct {
	Timestamp  time.Time `json:"timestamp"`
	Frame      string    `json:"frame"`
	Detections []struct {
		TrackID int64   `json:"track_id"`
		CenterX float64 `json:"cx"`
		CenterY float64 `json:"cy"`
		Width   float64 `json:"w"`
		Height  float64 `json:"h"`
		Label   string  `json:"label"`
	} `json:"detections"`
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	input := flag.String("input", "-", "path to JSONL detection batches, '-' for stdin")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				slog.Error("metrics server", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *input); err != nil {
		slog.Error("trackagg failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, input string) error {
	options := []track.Option{
		track.WithTrajectoryCapacity(cfg.Tracking.TrajectoryCapacity),
		track.WithConfirmThreshold(cfg.Tracking.ConfirmThreshold),
	}
	if cfg.Tracking.SmoothingTimeStep > 0 {
		options = append(options, track.WithSmoothing(cfg.Tracking.SmoothingTimeStep))
	}
	aggregator, err := track.NewAggregator(options...)
	if err != nil {
		return err
	}
	session := aggregator.Store().Session
	slog.Info("session started",
		"session", session.String(),
		"trajectory_capacity", cfg.Tracking.TrajectoryCapacity,
		"confirm_threshold", cfg.Tracking.ConfirmThreshold,
	)

	snapshots, err := newSnapshotSink(ctx, cfg, session)
	if err != nil {
		return err
	}

	var publisher *sink.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = sink.NewPublisher(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.EnsureStream(ctx); err != nil {
			return err
		}
	}

	if err := replay(ctx, aggregator, input); err != nil {
		return err
	}

	return report(ctx, aggregator, snapshots, publisher, session)
}

func newSnapshotSink(ctx context.Context, cfg *config.Config, session uuid.UUID) (sink.SnapshotSink, error) {
	switch cfg.Snapshots.Backend {
	case "minio":
		s, err := sink.NewMinIOSink(cfg.MinIO, session, cfg.Snapshots.Quality)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return sink.NewDiskSink(cfg.Snapshots.Dir, cfg.Snapshots.Quality)
	}
}

// replay feeds the input batches through the aggregator. An interrupt stops
// the loop at a batch boundary; the store stays valid and is still reported.
func replay(ctx context.Context, aggregator *track.Aggregator, input string) error {
	var reader io.Reader
	if input == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = f
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			slog.Info("interrupted, reporting partial results", "batches", lineNo)
			return nil
		default:
		}

		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var parsed batchLine
		if err := json.Unmarshal(line, &parsed); err != nil {
			slog.Warn("skipping malformed batch line", "line", lineNo, "error", err)
			continue
		}

		batch := track.Batch{Timestamp: parsed.Timestamp}
		if parsed.Frame != "" {
			frame, err := loadFrame(parsed.Frame)
			if err != nil {
				slog.Warn("frame unavailable, snapshot capture deferred", "line", lineNo, "path", parsed.Frame, "error", err)
			} else {
				batch.Frame = frame
			}
		}
		for _, d := range parsed.Detections {
			batch.Detections = append(batch.Detections, track.Detection{
				TrackID: d.TrackID,
				Box:     track.NewBoundingBox(d.CenterX, d.CenterY, d.Width, d.Height),
				Label:   d.Label,
			})
		}

		result := aggregator.Ingest(batch)
		for _, eventErr := range result.Errors {
			slog.Warn("detection event not fully applied", "line", lineNo, "error", eventErr.Error())
		}
	}
	return scanner.Err()
}

func report(ctx context.Context, aggregator *track.Aggregator, snapshots sink.SnapshotSink, publisher *sink.Publisher, session uuid.UUID) error {
	confirmed := aggregator.Confirmed()

	ids := make([]int64, 0, len(confirmed))
	for id := range confirmed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		view := confirmed[id]
		fmt.Printf("#%d %s\n", id, view.String())

		if view.Snapshot != nil {
			if err := snapshots.Persist(ctx, id, view.Snapshot); err != nil {
				slog.Warn("persist snapshot", "track", id, "error", err)
			}
		}
		if publisher != nil {
			if err := publisher.PublishTrack(ctx, sink.NewTrackEvent(session, view)); err != nil {
				slog.Warn("publish track", "track", id, "error", err)
			}
		}
	}

	slog.Info("replay finished",
		"tracks", aggregator.Store().Len(),
		"confirmed", len(confirmed),
	)
	return nil
}

func loadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
