package handlers

import (
	"context"

	"cloudToolkit/internal/probe"
)

// Prober is the part of probe.Prober used by ProbeHandler, so it can be mocked in tests.
type Prober interface {
	Probe(ctx context.Context) probe.Result
}
