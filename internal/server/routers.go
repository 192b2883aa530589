package server

import (
	"net/http"
	"strings"
	"time"

	"cloudToolkit/internal/auth"
	"cloudToolkit/internal/handlers"
	"cloudToolkit/internal/metrics"

	"github.com/rs/zerolog/log"
)

const secretsGetPrefix = "/secrets/get/"

// scopedRoute represents a single API route
type scopedRoute struct {
	Name      string
	Method    string
	Pattern   string
	Handler   http.Handler
	Protected bool // whether the route requires JWT
}

// Handlers groups the endpoint handlers the router serves
type Handlers struct {
	Auth      *handlers.AuthHandler
	Probe     *handlers.ProbeHandler
	Secrets   *handlers.SecretsHandler
	Bootstrap *handlers.BootstrapHandler
}

// NewRouter initializes all routes and returns an http.Handler
func NewRouter(jwtManager auth.JWT, h Handlers) http.Handler {
	routes := []scopedRoute{
		// Public routes
		{
			Name:    "Health",
			Method:  http.MethodGet,
			Pattern: "/healthz",
			Handler: http.HandlerFunc(handlers.Healthz),
		},
		{
			Name:    "Probe",
			Method:  http.MethodGet,
			Pattern: "/probe",
			Handler: http.HandlerFunc(h.Probe.Probe),
		},
		{
			Name:    "Login",
			Method:  http.MethodPost,
			Pattern: "/login",
			Handler: http.HandlerFunc(h.Auth.Login),
		},
		{
			Name:    "Metrics",
			Method:  http.MethodGet,
			Pattern: "/metrics",
			Handler: metrics.Handler(),
		},

		// Protected routes
		{
			Name:      "GetSecret",
			Method:    http.MethodGet,
			Pattern:   secretsGetPrefix,
			Handler:   withSecretRef(h.Secrets.GetSecret),
			Protected: true,
		},
		{
			Name:      "SetupUnrar",
			Method:    http.MethodPost,
			Pattern:   "/unrar/setup",
			Handler:   http.HandlerFunc(h.Bootstrap.SetupUnrar),
			Protected: true,
		},
	}

	// mux matches incoming requests against the registered patterns and calls the first match
	mux := http.NewServeMux()
	patterns := make([]string, 0, len(routes))
	for _, route := range routes {
		handler := auth.MethodMiddleware(route.Method)(route.Handler)

		// Wrap protected routes with JWT middleware
		if route.Protected {
			handler = auth.JWTMiddleware(jwtManager, handler)
		}

		mux.Handle(route.Pattern, handler)
		patterns = append(patterns, route.Pattern)
	}

	return metrics.InstrumentHandler(requestLogger(mux), patterns...)
}

// withSecretRef reads the secret name from the path and the version from the query,
// and injects both into the context
func withSecretRef(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		secretName := strings.TrimPrefix(req.URL.Path, secretsGetPrefix)
		if secretName == "" || strings.Contains(secretName, "/") {
			http.Error(w, "Secret name required", http.StatusBadRequest)
			return
		}

		ctx := auth.WithSecretName(req.Context(), secretName)
		ctx = auth.WithSecretVersion(ctx, strings.TrimSpace(req.URL.Query().Get("version")))

		next(w, req.WithContext(ctx))
	}
}

// requestLogger writes one access log line per request
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := metrics.NewStatusRecorder(w)
		start := time.Now()

		next.ServeHTTP(sw, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.Status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
