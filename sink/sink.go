// Package sink implements the delegated side-effect hooks of the track
// aggregation core: snapshot persistence and confirmed-track publishing.
package sink

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"

	"github.com/pkg/errors"
)

// SnapshotSink persists captured track snapshots.
type SnapshotSink interface {
	Persist(ctx context.Context, trackID int64, snapshot image.Image) error
}

// EncodeJPEG encodes an image as JPEG with the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
