package models

// SecretResponse is the parsed JSON document of one secret version
type SecretResponse struct {
	SecretName string         `json:"secret-name"`
	Version    string         `json:"version"`
	Data       map[string]any `json:"data"`
}
