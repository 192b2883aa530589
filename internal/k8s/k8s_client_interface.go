package k8s

import "context"

// SecretReader is the read side of the client used by the secret fetcher, so it can be mocked in tests.
type SecretReader interface {
	GetSecretKey(ctx context.Context, namespace, name, key string) ([]byte, error)
}
