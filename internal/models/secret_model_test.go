package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that JSON marshaling uses the expected json tag keys.
func TestModels_JSONKeys(t *testing.T) {
	tests := []struct {
		name string
		in   any
		keys []string
	}{
		{"SecretResponse", SecretResponse{SecretName: "db", Version: "latest", Data: map[string]any{"k": "v"}}, []string{"secret-name", "version", "data"}},
		{"LoginResponse", LoginResponse{Token: "t", ExpiresIn: 60, Message: "ok"}, []string{"token", "expires_in", "message"}},
		{"UnrarSetupRequest", UnrarSetupRequest{GCSPath: "gs://b/o"}, []string{"gcs_path"}},
		{"UnrarSetupResponse", UnrarSetupResponse{ToolPath: "/tmp/unrar"}, []string{"tool_path"}},
		{"HealthResponse", HealthResponse{Status: "ok"}, []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)

			var m map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(b, &m))
			for _, k := range tt.keys {
				assert.Contains(t, m, k)
			}
			assert.Len(t, m, len(tt.keys))
		})
	}
}

// Test that a failed login omits the token
func TestLoginResponse_OmitsEmptyToken(t *testing.T) {
	b, err := json.Marshal(LoginResponse{Message: "Invalid username or password"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, string(b))
}

// Test SecretResponse keeps nested JSON values intact
func TestSecretResponse_NestedData(t *testing.T) {
	var resp SecretResponse
	err := json.Unmarshal([]byte(`{"secret-name":"db","version":"2","data":{"port":5432,"hosts":["a","b"]}}`), &resp)
	require.NoError(t, err)

	assert.Equal(t, float64(5432), resp.Data["port"])
	assert.Equal(t, []any{"a", "b"}, resp.Data["hosts"])
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Username: "operator", Password: "pw"}, false},
		{"blank username", LoginRequest{Username: "  ", Password: "pw"}, true},
		{"missing password", LoginRequest{Username: "operator"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingCredentials)
				return
			}
			assert.NoError(t, err)
		})
	}
}
