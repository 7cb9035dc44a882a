package refstore

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSStore keeps reference documents in one Cloud Storage bucket, using
// Application Default Credentials.
type GCSStore struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
	name   string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: creating client: %w", err)
	}
	return &GCSStore{client: client, bucket: client.Bucket(bucket), name: bucket}, nil
}

func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	switch {
	case errors.Is(err, gcs.ErrObjectNotExist):
		return nil, fmt.Errorf("%w: gs://%s/%s", ErrNotFound, s.name, key)
	case err != nil:
		return nil, fmt.Errorf("gcs: reading gs://%s/%s: %w", s.name, key, err)
	}
	defer r.Close()
	return readLimited(r, key)
}

func (s *GCSStore) Put(ctx context.Context, key string, data []byte) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType(key)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: writing gs://%s/%s: %w", s.name, key, err)
	}
	// The object is only committed on Close.
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: committing gs://%s/%s: %w", s.name, key, err)
	}
	return nil
}

func (s *GCSStore) Close() error { return s.client.Close() }
