package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"cloudToolkit/internal/bootstrap"
	"cloudToolkit/internal/metrics"
	"cloudToolkit/internal/models"
	"cloudToolkit/internal/storage"

	"github.com/rs/zerolog/log"
)

// BootstrapHandler downloads the unrar binary on request
type BootstrapHandler struct {
	Opener         storage.ObjectOpener
	DefaultGCSPath string
	TempDir        string
}

// NewBootstrapHandler creates a new BootstrapHandler. An empty tempDir means the process temp dir.
func NewBootstrapHandler(opener storage.ObjectOpener, defaultGCSPath, tempDir string) *BootstrapHandler {
	return &BootstrapHandler{
		Opener:         opener,
		DefaultGCSPath: defaultGCSPath,
		TempDir:        tempDir,
	}
}

// SetupUnrar handles POST /unrar/setup. The body is optional.
func (h *BootstrapHandler) SetupUnrar(w http.ResponseWriter, r *http.Request) {
	var req models.UnrarSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	gcsPath := req.GCSPath
	if gcsPath == "" {
		gcsPath = h.DefaultGCSPath
	}
	if gcsPath == "" {
		http.Error(w, "gcs_path is required", http.StatusBadRequest)
		return
	}

	var opts []bootstrap.Option
	if h.TempDir != "" {
		opts = append(opts, bootstrap.WithTempDir(h.TempDir))
	}
	setup, err := bootstrap.NewUnrarSetup(gcsPath, h.Opener, opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	extractor, err := setup.Setup(r.Context())
	metrics.RecordBootstrap(time.Since(start), err == nil)
	if err != nil {
		log.Error().Err(err).Str("gcs_path", gcsPath).Msg("unrar setup failed")
		if errors.Is(err, storage.ErrObjectNotFound) {
			http.Error(w, "unrar binary not found at "+gcsPath, http.StatusNotFound)
			return
		}
		http.Error(w, "failed to set up unrar", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, models.UnrarSetupResponse{ToolPath: extractor.ToolPath})
}
