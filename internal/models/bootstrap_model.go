package models

// UnrarSetupRequest optionally overrides the configured gs:// location of the unrar binary
type UnrarSetupRequest struct {
	GCSPath string `json:"gcs_path,omitempty"`
}

// UnrarSetupResponse reports where the executable binary was written
type UnrarSetupResponse struct {
	ToolPath string `json:"tool_path"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
}
