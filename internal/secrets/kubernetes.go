package secrets

import (
	"context"
	"fmt"
	"strings"

	"cloudToolkit/internal/k8s"
)

// DefaultSecretKey is the data key read when no version is given
const DefaultSecretKey = "payload"

// KubernetesFetcher reads JSON secrets stored in Kubernetes Secrets.
// Kubernetes Secrets are unversioned, so versionID selects the data key instead;
// an empty or "latest" version means DefaultSecretKey.
type KubernetesFetcher struct {
	Client    k8s.SecretReader
	Namespace string
}

// NewKubernetesFetcher creates a KubernetesFetcher for namespace
func NewKubernetesFetcher(client k8s.SecretReader, namespace string) *KubernetesFetcher {
	return &KubernetesFetcher{Client: client, Namespace: namespace}
}

// GetSecretData reads the key selected by versionID and parses it as a JSON object
func (f *KubernetesFetcher) GetSecretData(ctx context.Context, secretID, versionID string) (map[string]any, error) {
	key := strings.TrimSpace(versionID)
	if key == "" || key == "latest" {
		key = DefaultSecretKey
	}

	raw, err := f.Client.GetSecretKey(ctx, f.Namespace, secretID, key)
	if err != nil {
		return nil, err
	}

	data, err := ParsePayload(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secret %s/%s#%s: %w", f.Namespace, secretID, key, err)
	}
	return data, nil
}
