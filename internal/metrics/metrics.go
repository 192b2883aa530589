package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the toolkit collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "toolkit",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toolkit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toolkit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	probeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toolkit",
			Subsystem: "probe",
			Name:      "results_total",
			Help:      "Port probe results by outcome.",
		},
		[]string{"outcome"},
	)

	secretFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toolkit",
			Subsystem: "secrets",
			Name:      "fetches_total",
			Help:      "Secret fetches by backend and status.",
		},
		[]string{"backend", "status"},
	)

	bootstrapDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toolkit",
			Subsystem: "bootstrap",
			Name:      "unrar_setup_duration_seconds",
			Help:      "Duration of unrar downloads from object storage.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		probeResults,
		secretFetches,
		bootstrapDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with request counting and timing.
// routes are the mux patterns; requests matching none are labelled "other".
func InstrumentHandler(next http.Handler, routes ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := NewStatusRecorder(w)
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path, routes)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.Status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordProbe counts one probe by its outcome: open, closed or error
func RecordProbe(outcome string) {
	probeResults.WithLabelValues(outcome).Inc()
}

// RecordSecretFetch counts one secret fetch
func RecordSecretFetch(backend string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	secretFetches.WithLabelValues(backend, status).Inc()
}

// RecordBootstrap observes the duration of one unrar setup
func RecordBootstrap(duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	bootstrapDuration.WithLabelValues(strconv.FormatBool(success)).Observe(duration.Seconds())
}

// StatusRecorder captures the status code a handler writes
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

const otherPath = "other"

// canonicalPath maps raw onto the route it matched, keeping secret names and
// unrouted paths out of label values. Patterns ending in "/" match their subtree.
func canonicalPath(raw string, routes []string) string {
	for _, pattern := range routes {
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(raw, pattern) {
				return strings.TrimSuffix(pattern, "/")
			}
			continue
		}
		if raw == pattern {
			return pattern
		}
	}
	return otherPath
}
