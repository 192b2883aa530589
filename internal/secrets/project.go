package secrets

import (
	"context"
	"errors"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var ErrProjectNotFound = errors.New("secrets: could not determine the default GCP project")

// Adding the following variable, so that the code can be tested
var findDefaultCredentials = google.FindDefaultCredentials

// projectEnvVars are checked in order before falling back to application default credentials
var projectEnvVars = []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"}

// resolveProjectID returns projectID when set, otherwise the ambient default project
func resolveProjectID(ctx context.Context, projectID string) (string, error) {
	if id := strings.TrimSpace(projectID); id != "" {
		return id, nil
	}

	for _, name := range projectEnvVars {
		if id := strings.TrimSpace(os.Getenv(name)); id != "" {
			return id, nil
		}
	}

	creds, err := findDefaultCredentials(ctx, cloudPlatformScope)
	if err == nil && creds != nil && creds.ProjectID != "" {
		return creds.ProjectID, nil
	}
	return "", ErrProjectNotFound
}
