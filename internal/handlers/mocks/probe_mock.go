package mocks

import (
	"context"

	"cloudToolkit/internal/probe"
)

// MockProber returns a fixed probe result
type MockProber struct {
	Result probe.Result
	Calls  int
}

func (m *MockProber) Probe(context.Context) probe.Result {
	m.Calls++
	return m.Result
}
