package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOpener struct {
	objects map[string][]byte
	readErr error
}

func (m *memOpener) Open(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	data, ok := m.objects[bucket+"/"+object]
	if !ok {
		return nil, ErrObjectNotFound
	}
	if m.readErr != nil {
		return io.NopCloser(&failingReader{err: m.readErr}), nil
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type failingReader struct{ err error }

func (f *failingReader) Read(p []byte) (int, error) { return 0, f.err }

// Testing GCS path parsing
func TestParseGCSPath(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectBucket string
		expectObject string
		expectError  bool
	}{
		{name: "nested key", path: "gs://bucket/a/b/c", expectBucket: "bucket", expectObject: "a/b/c"},
		{name: "flat key", path: "gs://tools/unrar", expectBucket: "tools", expectObject: "unrar"},
		{name: "bucket only", path: "gs://bucket", expectBucket: "bucket", expectObject: ""},
		{name: "http scheme", path: "http://x", expectError: true},
		{name: "empty", path: "", expectError: true},
		{name: "uppercase scheme", path: "GS://bucket/key", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := ParseGCSPath(tt.path)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidGCSPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectBucket, bucket)
			assert.Equal(t, tt.expectObject, object)
		})
	}
}

// Testing downloads overwrite the destination
func TestDownloadToFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "unrar")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	opener := &memOpener{objects: map[string][]byte{"bucket/bin/unrar": []byte("new-binary")}}
	require.NoError(t, DownloadToFile(context.Background(), opener, "bucket", "bin/unrar", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new-binary", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

// Testing download failures leave nothing behind
func TestDownloadToFile_Errors(t *testing.T) {
	t.Run("missing object", func(t *testing.T) {
		dir := t.TempDir()
		err := DownloadToFile(context.Background(), &memOpener{}, "bucket", "nope", filepath.Join(dir, "unrar"))
		assert.ErrorIs(t, err, ErrObjectNotFound)

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("read fails", func(t *testing.T) {
		dir := t.TempDir()
		cause := errors.New("connection reset")
		opener := &memOpener{objects: map[string][]byte{"b/o": []byte("x")}, readErr: cause}

		err := DownloadToFile(context.Background(), opener, "b", "o", filepath.Join(dir, "unrar"))
		assert.ErrorIs(t, err, cause)

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("destination dir missing", func(t *testing.T) {
		opener := &memOpener{objects: map[string][]byte{"b/o": []byte("x")}}
		err := DownloadToFile(context.Background(), opener, "b", "o", filepath.Join(t.TempDir(), "missing", "unrar"))
		assert.Error(t, err)
	})
}
