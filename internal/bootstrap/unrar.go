package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloudToolkit/internal/archive"
	"cloudToolkit/internal/storage"

	"github.com/rs/zerolog/log"
)

const (
	// UnrarFileName is the fixed name of the downloaded binary inside the temp dir.
	UnrarFileName = "unrar"
	unrarMode     = 0o755
)

// UnrarSetup downloads an unrar binary from GCS and makes it usable by archive.Extractor
type UnrarSetup struct {
	Bucket  string
	Object  string
	TempDir string

	opener storage.ObjectOpener
}

// Option customises an UnrarSetup
type Option func(*UnrarSetup)

// WithTempDir overrides the process temp directory
func WithTempDir(dir string) Option {
	return func(u *UnrarSetup) {
		u.TempDir = dir
	}
}

// NewUnrarSetup validates gcsPath and prepares a setup that reads through opener
func NewUnrarSetup(gcsPath string, opener storage.ObjectOpener, opts ...Option) (*UnrarSetup, error) {
	bucket, object, err := storage.ParseGCSPath(strings.TrimSpace(gcsPath))
	if err != nil {
		return nil, err
	}
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("%w: %q needs both bucket and object", storage.ErrInvalidGCSPath, gcsPath)
	}

	u := &UnrarSetup{
		Bucket:  bucket,
		Object:  object,
		TempDir: os.TempDir(),
		opener:  opener,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// ToolPath is where the binary is written
func (u *UnrarSetup) ToolPath() string {
	return filepath.Join(u.TempDir, UnrarFileName)
}

// Setup downloads the binary, marks it 0755 and returns an Extractor bound to it.
// Running it again overwrites the same file.
func (u *UnrarSetup) Setup(ctx context.Context) (*archive.Extractor, error) {
	toolPath := u.ToolPath()

	if err := storage.DownloadToFile(ctx, u.opener, u.Bucket, u.Object, toolPath); err != nil {
		return nil, err
	}
	// explicit chmod so the umask never narrows the mode
	if err := os.Chmod(toolPath, unrarMode); err != nil {
		return nil, fmt.Errorf("failed to make %s executable: %w", toolPath, err)
	}

	log.Info().
		Str("bucket", u.Bucket).
		Str("object", u.Object).
		Str("tool_path", toolPath).
		Msg("unrar binary ready")

	return archive.NewExtractor(toolPath), nil
}
