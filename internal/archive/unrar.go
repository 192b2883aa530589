package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloudToolkit/internal/tools"
)

var (
	ErrToolNotConfigured = errors.New("archive: unrar tool path not configured")
	ErrInvalidArchive    = errors.New("archive: archive path required")
)

// Extractor drives an unrar binary at an explicit path.
// The path is configuration owned by the caller, never process-global state.
type Extractor struct {
	ToolPath string
	Runner   tools.CommandRunner
}

// NewExtractor creates an Extractor for the unrar binary at toolPath
func NewExtractor(toolPath string) *Extractor {
	return &Extractor{
		ToolPath: toolPath,
		Runner:   tools.ExecRunner{},
	}
}

// List returns the file names stored in the archive
func (e *Extractor) List(ctx context.Context, archivePath string) ([]string, error) {
	stdout, err := e.run(ctx, archivePath, "lb", archivePath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// Test verifies archive integrity
func (e *Extractor) Test(ctx context.Context, archivePath string) error {
	_, err := e.run(ctx, archivePath, "t", "-idq", archivePath)
	return err
}

// Extract unpacks the archive into destDir, overwriting existing files
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	dest := strings.TrimSpace(destDir)
	if dest == "" {
		dest = "."
	}
	if !strings.HasSuffix(dest, "/") {
		dest += "/"
	}
	_, err := e.run(ctx, archivePath, "x", "-o+", "-y", "-idq", archivePath, dest)
	return err
}

func (e *Extractor) run(ctx context.Context, archivePath string, args ...string) ([]byte, error) {
	if strings.TrimSpace(e.ToolPath) == "" {
		return nil, ErrToolNotConfigured
	}
	if strings.TrimSpace(archivePath) == "" {
		return nil, ErrInvalidArchive
	}

	runner := e.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}

	stdout, stderr, exitCode, err := runner.Run(ctx, e.ToolPath, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"unrar command failed tool=%s args=%q exit=%d stderr=%q: %w",
			e.ToolPath,
			strings.Join(args, " "),
			exitCode,
			strings.TrimSpace(string(stderr)),
			err,
		)
	}
	return stdout, nil
}
