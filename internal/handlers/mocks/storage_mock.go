package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloudToolkit/internal/storage"
)

// MockOpener implements storage.ObjectOpener over in-memory objects keyed "bucket/object"
type MockOpener struct {
	Objects map[string][]byte
	Err     error
}

func NewMockOpener() *MockOpener {
	return &MockOpener{Objects: make(map[string][]byte)}
}

func (m *MockOpener) Open(_ context.Context, bucket, object string) (io.ReadCloser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.Objects[bucket+"/"+object]
	if !ok {
		return nil, fmt.Errorf("%w: gs://%s/%s", storage.ErrObjectNotFound, bucket, object)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
