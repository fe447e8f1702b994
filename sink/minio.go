package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/your-org/trackagg/config"
	"github.com/your-org/trackagg/observability"
)

// MinIOSink persists snapshots to an S3-compatible object store, keyed by
// tracking session and track identity.
type MinIOSink struct {
	client  *minio.Client
	bucket  string
	session uuid.UUID
	quality int
}

func NewMinIOSink(cfg config.MinIOConfig, session uuid.UUID, quality int) (*MinIOSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	return &MinIOSink{
		client:  client,
		bucket:  cfg.Bucket,
		session: session,
		quality: quality,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinIOSink) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket")
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrap(err, "create bucket")
		}
	}
	return nil
}

// Persist uploads the snapshot under snapshots/<session>/<trackID>.jpg.
func (s *MinIOSink) Persist(ctx context.Context, trackID int64, snapshot image.Image) error {
	data, err := EncodeJPEG(snapshot, s.quality)
	if err != nil {
		return err
	}
	key := s.ObjectKey(trackID)
	reader := bytes.NewReader(data)
	_, err = s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return errors.Wrapf(err, "put snapshot %s", key)
	}
	observability.SnapshotsPersisted.Inc()
	return nil
}

// ObjectKey returns the object key a track's snapshot is stored under.
func (s *MinIOSink) ObjectKey(trackID int64) string {
	return fmt.Sprintf("snapshots/%s/%d.jpg", s.session.String(), trackID)
}

// Ping checks object store connectivity.
func (s *MinIOSink) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
