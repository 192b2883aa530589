package auth

import "context"

type contextKey string

const (
	UsernameKey      contextKey = "username"
	SecretNameKey    contextKey = "secretName"
	SecretVersionKey contextKey = "secretVersion"
)

// LatestVersion is the version used when a request names none
const LatestVersion = "latest"

// WithUsername injects the username into the request context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username) //to avoid collisions - use custom key type
}

// GetUsername retrieves the username from the request context
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// WithSecretName injects the secret name into the request context
func WithSecretName(ctx context.Context, secretName string) context.Context {
	return context.WithValue(ctx, SecretNameKey, secretName)
}

// GetSecretName retrieves the secret name from the request context
func GetSecretName(ctx context.Context) (string, bool) {
	secretName, ok := ctx.Value(SecretNameKey).(string)
	return secretName, ok
}

// WithSecretVersion injects the requested secret version into the request context
func WithSecretVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, SecretVersionKey, version)
}

// GetSecretVersion retrieves the secret version, falling back to LatestVersion
func GetSecretVersion(ctx context.Context) string {
	if v, ok := ctx.Value(SecretVersionKey).(string); ok && v != "" {
		return v
	}
	return LatestVersion
}
