package handlers

import (
	"errors"
	"net/http"

	"cloudToolkit/internal/auth"
	"cloudToolkit/internal/metrics"
	"cloudToolkit/internal/models"
	"cloudToolkit/internal/secrets"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// SecretsHandler serves JSON secrets from the configured backend
type SecretsHandler struct {
	Fetcher secrets.Fetcher
	Backend string
}

// NewSecretsHandler creates a new SecretsHandler
func NewSecretsHandler(fetcher secrets.Fetcher, backend string) *SecretsHandler {
	return &SecretsHandler{
		Fetcher: fetcher,
		Backend: backend,
	}
}

// GetSecret handles GET /secrets/get/{name}?version=
func (h *SecretsHandler) GetSecret(w http.ResponseWriter, r *http.Request) {
	secretName, ok := auth.GetSecretName(r.Context())
	if !ok || secretName == "" {
		http.Error(w, "secret name missing", http.StatusBadRequest)
		return
	}
	version := auth.GetSecretVersion(r.Context())
	username, _ := auth.GetUsername(r.Context())

	data, err := h.Fetcher.GetSecretData(r.Context(), secretName, version)
	metrics.RecordSecretFetch(h.Backend, err)
	if err != nil {
		code, msg := secretErrorStatus(err)
		log.Error().Err(err).
			Str("secret", secretName).
			Str("version", version).
			Str("backend", h.Backend).
			Int("status", code).
			Msg("secret fetch failed")
		http.Error(w, msg, code)
		return
	}

	log.Info().Str("secret", secretName).Str("version", version).Str("user", username).Msg("secret served")
	writeJSON(w, http.StatusOK, models.SecretResponse{
		SecretName: secretName,
		Version:    version,
		Data:       data,
	})
}

// secretErrorStatus maps backend and parse failures to an HTTP status and message
func secretErrorStatus(err error) (int, string) {
	code := status.Code(err)
	switch {
	case code == codes.NotFound || apierrors.IsNotFound(err):
		return http.StatusNotFound, "Secret not found"
	case code == codes.PermissionDenied || apierrors.IsForbidden(err):
		return http.StatusForbidden, "Access to secret denied"
	case code == codes.InvalidArgument:
		return http.StatusBadRequest, "Invalid secret name or version"
	case errors.Is(err, secrets.ErrNoJSONObject),
		errors.Is(err, secrets.ErrInvalidJSON),
		errors.Is(err, secrets.ErrInvalidEncoding):
		return http.StatusBadGateway, "Secret payload is not a JSON object"
	default:
		return http.StatusInternalServerError, "failed to get secret"
	}
}
