package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
)

const gcsScheme = "gs://"

var (
	ErrInvalidGCSPath = errors.New("storage: not a valid GCS path")
	ErrObjectNotFound = errors.New("storage: object not found")
)

// Adding the following variable, so that the code can be tested
var newStorageClient = func(ctx context.Context) (*gcs.Client, error) {
	return gcs.NewClient(ctx)
}

// ObjectOpener opens a named object for reading. GCS implements it; tests use in-memory fakes.
type ObjectOpener interface {
	Open(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}

// ParseGCSPath splits gs://bucket/key into bucket and key. The key may contain slashes.
func ParseGCSPath(path string) (string, string, error) {
	if !strings.HasPrefix(path, gcsScheme) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidGCSPath, path)
	}
	bucket, object, _ := strings.Cut(strings.TrimPrefix(path, gcsScheme), "/")
	return bucket, object, nil
}

// GCS reads objects from Google Cloud Storage
type GCS struct {
	client *gcs.Client
}

// NewGCS creates a GCS reader using application default credentials
func NewGCS(ctx context.Context) (*GCS, error) {
	client, err := newStorageClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{client: client}, nil
}

// Open returns a reader for gs://bucket/object
func (g *GCS) Open(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	r, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s: %w", ErrObjectNotFound, bucket, object, err)
		}
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", bucket, object, err)
	}
	return r, nil
}

// Close releases the underlying client
func (g *GCS) Close() error {
	return g.client.Close()
}

// DownloadToFile copies an object to dest. The data lands in a sibling temp file first and is
// renamed over dest, so an existing file (even a running binary) is replaced whole.
func DownloadToFile(ctx context.Context, opener ObjectOpener, bucket, object, dest string) error {
	src, err := opener.Open(ctx, bucket, object)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to download gs://%s/%s: %w", bucket, object, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move download into %s: %w", dest, err)
	}
	return nil
}
