package mocks

import "cloudToolkit/internal/auth"

// MockJWTManager implements auth.JWT with canned results
type MockJWTManager struct {
	Token       string
	GenerateErr error
	VerifyErr   error
	Claims      *auth.Claims

	GeneratedFor []string
}

func (m *MockJWTManager) Generate(username string) (string, error) {
	m.GeneratedFor = append(m.GeneratedFor, username)
	return m.Token, m.GenerateErr
}

func (m *MockJWTManager) Verify(token string) (*auth.Claims, error) {
	return m.Claims, m.VerifyErr
}
