package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	EmbedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embed_requests_total",
			Help: "Total number of embedding provider requests",
		},
		[]string{"provider", "operation"},
	)
	EmbedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "embed_request_duration_seconds",
			Help:    "Embedding request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	ScreeningsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screenings_total",
			Help: "Total number of screening runs",
		},
	)
	CandidatesByTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_by_tier_total",
			Help: "Total number of classified candidates by tier",
		},
		[]string{"tier"},
	)
	ExtractionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of documents that fell back to placeholder text",
		},
	)

	// FinalScoreHistogram covers the nominal final-score range under the
	// default weights; out-of-range values (unnormalized weights) land in
	// the open-ended buckets.
	FinalScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screening_final_score",
			Help:    "Distribution of candidate final scores",
			Buckets: []float64{-0.5, -0.25, 0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(EmbedRequestsTotal)
	prometheus.MustRegister(EmbedRequestDuration)
	prometheus.MustRegister(ScreeningsTotal)
	prometheus.MustRegister(CandidatesByTierTotal)
	prometheus.MustRegister(ExtractionFailuresTotal)
	prometheus.MustRegister(FinalScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveScreening records the outcome counters of one screening run.
func ObserveScreening(strong, borderline, weak, extractionFailures int) {
	ScreeningsTotal.Inc()
	CandidatesByTierTotal.WithLabelValues("strong").Add(float64(strong))
	CandidatesByTierTotal.WithLabelValues("borderline").Add(float64(borderline))
	CandidatesByTierTotal.WithLabelValues("weak").Add(float64(weak))
	ExtractionFailuresTotal.Add(float64(extractionFailures))
}

// ObserveFinalScore records one candidate's final score.
func ObserveFinalScore(score float64) {
	FinalScoreHistogram.Observe(score)
}
