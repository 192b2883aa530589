package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name   string
	args   []string
	stdout string
	stderr string
	code   int32
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int32, error) {
	r.name = name
	r.args = args
	return []byte(r.stdout), []byte(r.stderr), r.code, r.err
}

// Testing the configured tool path is the binary that gets executed
func TestExtractor_UsesConfiguredTool(t *testing.T) {
	runner := &recordingRunner{stdout: "a.txt\ndir/b.txt\n\n"}
	e := &Extractor{ToolPath: "/tmp/unrar", Runner: runner}

	names, err := e.List(context.Background(), "/data/files.rar")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/unrar", runner.name)
	assert.Equal(t, []string{"lb", "/data/files.rar"}, runner.args)
	assert.Equal(t, []string{"a.txt", "dir/b.txt"}, names)
}

// Testing extraction arguments
func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name       string
		dest       string
		expectDest string
	}{
		{name: "explicit dir", dest: "/out", expectDest: "/out/"},
		{name: "trailing slash kept", dest: "/out/", expectDest: "/out/"},
		{name: "empty means cwd", dest: "", expectDest: "./"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			e := &Extractor{ToolPath: "/tmp/unrar", Runner: runner}

			require.NoError(t, e.Extract(context.Background(), "a.rar", tt.dest))
			assert.Equal(t, []string{"x", "-o+", "-y", "-idq", "a.rar", tt.expectDest}, runner.args)
		})
	}
}

// Testing failures surface exit code and stderr
func TestExtractor_Errors(t *testing.T) {
	t.Run("tool not configured", func(t *testing.T) {
		e := &Extractor{Runner: &recordingRunner{}}
		err := e.Test(context.Background(), "a.rar")
		assert.ErrorIs(t, err, ErrToolNotConfigured)
	})

	t.Run("archive missing", func(t *testing.T) {
		e := &Extractor{ToolPath: "/tmp/unrar", Runner: &recordingRunner{}}
		_, err := e.List(context.Background(), " ")
		assert.ErrorIs(t, err, ErrInvalidArchive)
	})

	t.Run("command fails", func(t *testing.T) {
		cause := errors.New("exit status 10")
		e := &Extractor{ToolPath: "/tmp/unrar", Runner: &recordingRunner{stderr: "No files to extract\n", code: 10, err: cause}}
		err := e.Test(context.Background(), "a.rar")

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "exit=10")
		assert.Contains(t, err.Error(), "No files to extract")
	})
}
