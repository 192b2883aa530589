package mocks

import "context"

// FetchCall records one GetSecretData call
type FetchCall struct {
	SecretID  string
	VersionID string
}

// MockFetcher implements secrets.Fetcher with a canned result
type MockFetcher struct {
	Data  map[string]any
	Err   error
	Calls []FetchCall
}

func (m *MockFetcher) GetSecretData(_ context.Context, secretID, versionID string) (map[string]any, error) {
	m.Calls = append(m.Calls, FetchCall{SecretID: secretID, VersionID: versionID})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
