package handlers

import (
	"net/http"

	"cloudToolkit/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ProbeHandler exposes the port probe over HTTP
type ProbeHandler struct {
	Prober Prober
}

// NewProbeHandler creates a new ProbeHandler
func NewProbeHandler(prober Prober) *ProbeHandler {
	return &ProbeHandler{Prober: prober}
}

// Probe handles GET /probe. The result is always returned with 200, errors included.
func (h *ProbeHandler) Probe(w http.ResponseWriter, r *http.Request) {
	result := h.Prober.Probe(r.Context())
	metrics.RecordProbe(result.Outcome())

	log.Info().Str("outcome", result.Outcome()).Str("error", result.Error).Msg("probe finished")
	writeJSON(w, http.StatusOK, result)
}
