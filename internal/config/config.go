package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cloudToolkit/internal/secrets"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

var ErrMissingSecretKey = errors.New("config: SECRET_KEY is required")

// Config is the process configuration read from the environment
type Config struct {
	ListenAddr string        `env:"LISTEN_ADDR,default=:8080"`
	JWTSecret  string        `env:"SECRET_KEY"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,default=24h"`

	OperatorUsername     string `env:"OPERATOR_USERNAME,default=operator"`
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH"`

	GCPProject      string `env:"GOOGLE_CLOUD_PROJECT"`
	SecretBackend   string `env:"SECRET_BACKEND,default=gcp"`
	SecretNamespace string `env:"SECRET_NAMESPACE,default=default"`

	ProbeHost    string        `env:"PROBE_HOST,default=192.0.2.1"`
	ProbePort    int           `env:"PROBE_PORT,default=8081"`
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	UnrarGCSPath string `env:"UNRAR_GCS_PATH"`
	LogLevel     string `env:"LOG_LEVEL,default=info"`
}

// Load reads envFile into the environment when it exists, then decodes the environment into a Config.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if cfg.SecretBackend == "" {
		cfg.SecretBackend = secrets.BackendGCP
	}
	if cfg.SecretBackend != secrets.BackendGCP && cfg.SecretBackend != secrets.BackendKubernetes {
		return nil, fmt.Errorf("%w: SECRET_BACKEND=%q", secrets.ErrUnknownBackend, cfg.SecretBackend)
	}
	return cfg, nil
}

// ValidateServer checks the settings only the HTTP API needs
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return ErrMissingSecretKey
	}
	return nil
}
