package secrets

import (
	"context"
	"errors"
	"testing"

	"cloudToolkit/internal/k8s"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testing NewFetcher picks the implementation per backend
func TestNewFetcher(t *testing.T) {
	origSecret, origK8s := newSecretClient, newKubernetesReader
	defer func() { newSecretClient, newKubernetesReader = origSecret, origK8s }()

	accessor := &mockAccessor{}
	newSecretClient = func(ctx context.Context) (Accessor, error) { return accessor, nil }
	reader := fakeReader{}
	newKubernetesReader = func() (k8s.SecretReader, error) { return reader, nil }

	t.Run("gcp", func(t *testing.T) {
		f, closeFn, err := NewFetcher(context.Background(), BackendGCP, "demo-project", "")
		require.NoError(t, err)

		m, ok := f.(*Manager)
		require.True(t, ok)
		assert.Equal(t, "demo-project", m.ProjectID)
		require.NoError(t, closeFn())
		assert.True(t, accessor.closed)
	})

	t.Run("kubernetes", func(t *testing.T) {
		f, closeFn, err := NewFetcher(context.Background(), BackendKubernetes, "", "tools")
		require.NoError(t, err)

		kf, ok := f.(*KubernetesFetcher)
		require.True(t, ok)
		assert.Equal(t, "tools", kf.Namespace)
		assert.NoError(t, closeFn())
	})

	t.Run("kubernetes client failure", func(t *testing.T) {
		newKubernetesReader = func() (k8s.SecretReader, error) { return nil, errors.New("no kubeconfig") }
		_, _, err := NewFetcher(context.Background(), BackendKubernetes, "", "tools")
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := NewFetcher(context.Background(), "vault", "", "")
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
