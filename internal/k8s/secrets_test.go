package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func newFakeClient(secrets ...*v1.Secret) *Client {
	client := &Client{ClientSet: fake.NewSimpleClientset()}
	for _, s := range secrets {
		_, _ = client.ClientSet.CoreV1().Secrets(s.Namespace).Create(context.Background(), s, metav1.CreateOptions{})
	}
	return client
}

// Testing GetSecret function
func TestGetSecret(t *testing.T) {
	client := newFakeClient(&v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "test", Namespace: "default"},
		Data:       map[string][]byte{"key": []byte("value")},
		StringData: map[string]string{"key": "stale", "extra": "kept"},
	})

	tests := []struct {
		name        string
		secretName  string
		expectError bool
		expectedVal string
	}{
		{
			name:        "retrieves existing secret",
			secretName:  "test",
			expectError: false,
			expectedVal: "value",
		},
		{
			name:        "returns error for non-existent secret",
			secretName:  "missing",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := client.GetSecret(context.Background(), "default", tt.secretName)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, apierrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedVal, data["key"])
				assert.Equal(t, "kept", data["extra"])
			}
		})
	}
}

// Testing GetSecretKey function
func TestGetSecretKey(t *testing.T) {
	client := newFakeClient(
		&v1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "app-config", Namespace: "tools"},
			Data:       map[string][]byte{"payload": []byte(`{"user":"svc"}`)},
		},
		&v1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "string-only", Namespace: "tools"},
			StringData: map[string]string{"payload": `{"a":1}`},
		},
	)

	tests := []struct {
		name        string
		secretName  string
		key         string
		expectError bool
		expectedVal string
	}{
		{name: "data key", secretName: "app-config", key: "payload", expectedVal: `{"user":"svc"}`},
		{name: "string data key", secretName: "string-only", key: "payload", expectedVal: `{"a":1}`},
		{name: "missing key", secretName: "app-config", key: "other", expectError: true},
		{name: "missing secret", secretName: "nope", key: "payload", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := client.GetSecretKey(context.Background(), "tools", tt.secretName, tt.key)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, apierrors.IsNotFound(err), "missing secret or key should be NotFound")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedVal, string(val))
		})
	}
}
