package mocks

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var secretResource = schema.GroupResource{Resource: "secrets"}

// MockSecretReader implements k8s.SecretReader over an in-memory map.
type MockSecretReader struct {
	GetSecretCalled bool

	// forceable error (set in tests)
	GetErr error

	// Key - namespace/name
	Secrets map[string]ExampleSecret
}

type ExampleSecret struct {
	Namespace string
	Name      string
	Data      map[string]string
}

// helper: build a single unique key for a secret in K8s style: "<namespace>/<name>"
func makeKey(namespace, name string) string {
	return fmt.Sprintf("%s/%s", namespace, name)
}

func NewMockSecretReader() *MockSecretReader {
	return &MockSecretReader{
		Secrets: make(map[string]ExampleSecret),
	}
}

// Add stores a secret under namespace/name
func (m *MockSecretReader) Add(namespace, name string, data map[string]string) {
	m.Secrets[makeKey(namespace, name)] = ExampleSecret{
		Namespace: namespace,
		Name:      name,
		Data:      cloneMap(data),
	}
}

func cloneMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// GetSecretKey returns one value of the secret, or a NotFound error when the secret or key is missing.
func (m *MockSecretReader) GetSecretKey(ctx context.Context, namespace, name, key string) ([]byte, error) {
	m.GetSecretCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sec, ok := m.Secrets[makeKey(namespace, name)]
	if !ok {
		return nil, apierrors.NewNotFound(secretResource, makeKey(namespace, name))
	}
	value, ok := sec.Data[key]
	if !ok {
		return nil, apierrors.NewNotFound(secretResource, makeKey(namespace, name)+"#"+key)
	}
	return []byte(value), nil
}
