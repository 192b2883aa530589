package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloudToolkit/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"LISTEN_ADDR", "SECRET_KEY", "TOKEN_TTL", "OPERATOR_USERNAME", "OPERATOR_PASSWORD_HASH",
	"GOOGLE_CLOUD_PROJECT", "SECRET_BACKEND", "SECRET_NAMESPACE", "PROBE_HOST", "PROBE_PORT",
	"PROBE_TIMEOUT", "UNRAR_GCS_PATH", "LOG_LEVEL",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// Testing defaults apply when nothing is set
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "operator", cfg.OperatorUsername)
	assert.Equal(t, secrets.BackendGCP, cfg.SecretBackend)
	assert.Equal(t, "default", cfg.SecretNamespace)
	assert.Equal(t, "192.0.2.1", cfg.ProbeHost)
	assert.Equal(t, 8081, cfg.ProbePort)
	assert.Zero(t, cfg.ProbeTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.ErrorIs(t, cfg.ValidateServer(), ErrMissingSecretKey)
}

// Testing environment variables are decoded into the struct
func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SECRET_BACKEND", "kubernetes")
	t.Setenv("PROBE_PORT", "9090")
	t.Setenv("PROBE_TIMEOUT", "250ms")
	t.Setenv("UNRAR_GCS_PATH", "gs://tools/bin/unrar")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, secrets.BackendKubernetes, cfg.SecretBackend)
	assert.Equal(t, 9090, cfg.ProbePort)
	assert.Equal(t, 250*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, "gs://tools/bin/unrar", cfg.UnrarGCSPath)
	assert.NoError(t, cfg.ValidateServer())
}

// Testing a .env file fills in unset variables but never overrides the environment
func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "SECRET_KEY=from-file\nLOG_LEVEL=error\nGOOGLE_CLOUD_PROJECT=demo-project\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "demo-project", cfg.GCPProject)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// Testing a missing .env file is tolerated
func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

// Testing invalid values are rejected
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "SECRET_BACKEND", "vault"},
		{"bad port", "PROBE_PORT", "eighty"},
		{"bad duration", "TOKEN_TTL", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
