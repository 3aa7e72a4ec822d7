package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/okamel/cvbank/internal/utils"
)

// GCSStore keeps uploads as private bucket objects; the API serves them back
// itself, so no public ACL is ever set.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: c, bucket: bucket}, nil
}

func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	obj := s.client.Bucket(s.bucket).Object("cv/" + name)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return obj.ObjectName(), nil
}

func (s *GCSStore) Open(ctx context.Context, storedPath string) (io.ReadCloser, int64, error) {
	r, err := s.client.Bucket(s.bucket).Object(storedPath).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, 0, utils.ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return r, r.Attrs.Size, nil
}

func (s *GCSStore) Remove(ctx context.Context, storedPath string) error {
	err := s.client.Bucket(s.bucket).Object(storedPath).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
