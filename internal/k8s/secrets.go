package k8s

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var secretResource = schema.GroupResource{Resource: "secrets"}

// GetSecret retrieves a Kubernetes secret as a map[string]string.
// StringData only fills keys missing from Data; it is set on objects that never round-tripped through the API server.
func (c *Client) GetSecret(ctx context.Context, namespace, name string) (map[string]string, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}

	result := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.StringData {
		result[k] = v
	}
	for k, v := range secret.Data {
		result[k] = string(v) // convert from []byte to string
	}

	return result, nil
}

// GetSecretKey returns the value stored under key in the secret.
// A missing key is reported as NotFound, the same as a missing secret.
func (c *Client) GetSecretKey(ctx context.Context, namespace, name, key string) ([]byte, error) {
	data, err := c.GetSecret(ctx, namespace, name)
	if err != nil {
		return nil, err
	}

	value, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("failed to get secret key %q: %w", key,
			apierrors.NewNotFound(secretResource, namespace+"/"+name+"#"+key))
	}
	return []byte(value), nil
}
