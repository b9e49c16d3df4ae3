package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/minio"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"go.uber.org/zap"
)

// MinIOImageStore keeps map images as objects in a bucket, one object per
// location key. Objects never expire; a stale map for a place whose
// upstream rendering changed is an accepted tradeoff.
type MinIOImageStore struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinIOImageStore creates the object-store-backed image cache
func NewMinIOImageStore(client *minio.Client, log *logger.Logger) biz.ImageStore {
	if log == nil {
		log = logger.L()
	}
	return &MinIOImageStore{client: client, bucket: client.Bucket(), logger: log}
}

// objectName makes the location key safe as an object name
func objectName(key string) string {
	return url.PathEscape(key) + ".jpg"
}

// Has reports whether an image for the location key is already stored
func (s *MinIOImageStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, objectName(key))
	if err != nil {
		if minio.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check image existence: %w", err)
	}
	return true, nil
}

// Put writes the image bytes for the location key, last write wins
func (s *MinIOImageStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName(key),
		bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Debug("map image stored",
		zap.String("location", key), zap.Int("size", len(data)))
	return nil
}

// Get streams the stored image for the location key
func (s *MinIOImageStore) Get(ctx context.Context, key string) (io.ReadCloser, string, int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, objectName(key))
	if err != nil {
		if minio.IsNotFound(err) {
			return nil, "", 0, biz.ErrImageNotFound
		}
		return nil, "", 0, fmt.Errorf("failed to stat image: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectName(key))
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to get image: %w", err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return obj, contentType, info.Size, nil
}
