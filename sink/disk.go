package sink

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/your-org/trackagg/observability"
)

// DiskSink writes snapshots as JPEG files into a directory, one file per
// track.
type DiskSink struct {
	dir     string
	quality int
}

// NewDiskSink creates the snapshot directory if needed and returns a sink
// writing into it.
func NewDiskSink(dir string, quality int) (*DiskSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create snapshot dir %s", dir)
	}
	return &DiskSink{dir: dir, quality: quality}, nil
}

// Persist writes the snapshot to <dir>/<trackID>.jpg.
func (s *DiskSink) Persist(ctx context.Context, trackID int64, snapshot image.Image) error {
	data, err := EncodeJPEG(snapshot, s.quality)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%d.jpg", trackID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write snapshot %s", path)
	}
	observability.SnapshotsPersisted.Inc()
	slog.Debug("snapshot persisted", "track", trackID, "path", path)
	return nil
}
