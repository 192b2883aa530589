package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// Fetcher returns the JSON document stored in a secret version
type Fetcher interface {
	GetSecretData(ctx context.Context, secretID, versionID string) (map[string]any, error)
}

// Accessor is the part of the Secret Manager client used here, so it can be mocked in tests
type Accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// Adding the following variable, so that the code can be tested
var newSecretClient = func(ctx context.Context) (Accessor, error) {
	return secretmanager.NewClient(ctx)
}

// Manager reads JSON secrets from Google Secret Manager
type Manager struct {
	Client    Accessor
	ProjectID string
}

// NewManager creates a Manager. An empty projectID is resolved from the environment
func NewManager(ctx context.Context, projectID string) (*Manager, error) {
	id, err := resolveProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	client, err := newSecretClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	return &Manager{Client: client, ProjectID: id}, nil
}

// ResourceName builds the fully-qualified secret version name
func (m *Manager) ResourceName(secretID, versionID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", m.ProjectID, secretID, versionID)
}

// GetSecretData fetches a secret version and parses its payload as a JSON object
func (m *Manager) GetSecretData(ctx context.Context, secretID, versionID string) (map[string]any, error) {
	name := m.ResourceName(secretID, versionID)

	resp, err := m.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret version %s: %w", name, err)
	}

	data, err := ParsePayload(resp.GetPayload().GetData())
	if err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying client
func (m *Manager) Close() error {
	return m.Client.Close()
}
