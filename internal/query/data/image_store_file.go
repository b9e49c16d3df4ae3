package data

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"go.uber.org/zap"
)

// FileImageStore keeps map images as flat files in one directory, one file
// per location key.
type FileImageStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileImageStore creates the filesystem-backed image cache
func NewFileImageStore(dir string, log *logger.Logger) (biz.ImageStore, error) {
	if log == nil {
		log = logger.L()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image cache dir: %w", err)
	}
	return &FileImageStore{dir: dir, logger: log}, nil
}

func (s *FileImageStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".jpg")
}

// Has reports whether an image for the location key is already stored
func (s *FileImageStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check image existence: %w", err)
	}
	return true, nil
}

// Put writes the image bytes for the location key. The write goes through
// a temp file and a rename so a concurrent reader never sees a partial
// image; concurrent writers race last-write-wins.
func (s *FileImageStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	tmp, err := os.CreateTemp(s.dir, "map-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp image file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close image file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize image file: %w", err)
	}

	s.logger.Debug("map image stored",
		zap.String("location", key), zap.Int("size", len(data)))
	return nil
}

// Get streams the stored image for the location key
func (s *FileImageStore) Get(ctx context.Context, key string) (io.ReadCloser, string, int64, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", 0, biz.ErrImageNotFound
		}
		return nil, "", 0, fmt.Errorf("failed to open image: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, "", 0, fmt.Errorf("failed to stat image: %w", err)
	}

	return f, "image/jpeg", info.Size(), nil
}
