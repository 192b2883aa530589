package secrets

import (
	"context"
	"errors"
	"fmt"

	"cloudToolkit/internal/k8s"
)

const (
	BackendGCP        = "gcp"
	BackendKubernetes = "kubernetes"
)

var ErrUnknownBackend = errors.New("secrets: unknown backend")

// Adding the following variable, so that the code can be tested
var newKubernetesReader = func() (k8s.SecretReader, error) {
	return k8s.NewClient()
}

// NewFetcher builds the Fetcher for backend. The returned close func releases its client.
// projectID applies to gcp, namespace to kubernetes.
func NewFetcher(ctx context.Context, backend, projectID, namespace string) (Fetcher, func() error, error) {
	switch backend {
	case BackendGCP, "":
		m, err := NewManager(ctx, projectID)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	case BackendKubernetes:
		reader, err := newKubernetesReader()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		return NewKubernetesFetcher(reader, namespace), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
