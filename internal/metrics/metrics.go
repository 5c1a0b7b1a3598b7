// Package metrics provides Prometheus instrumentation for the simulation
// engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DaysSimulated counts simulation ticks across all sessions.
	DaysSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "birzha_days_simulated_total",
		Help: "Total simulated days across all sessions",
	})

	// TradesTotal counts executed trades, partitioned by side.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "birzha_trades_total",
		Help: "Total number of trades executed",
	}, []string{"side"})

	// TradeRejections counts trades rejected by the engine, by reason.
	TradeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "birzha_trade_rejections_total",
		Help: "Trades rejected by the engine",
	}, []string{"reason"})

	// EventsGenerated counts macro events, partitioned by category.
	EventsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "birzha_events_generated_total",
		Help: "Macro events generated",
	}, []string{"type"})

	// RumorsCreated counts player rumor submissions.
	RumorsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "birzha_rumors_created_total",
		Help: "Player rumors submitted to the engine",
	})

	// RumorsFlagged counts boundary submissions caught by the denylist.
	RumorsFlagged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "birzha_rumors_flagged_total",
		Help: "Rumor submissions flagged for sensitive terms",
	})

	// Penalties counts legal investigations that ended in sanctions.
	Penalties = promauto.NewCounter(prometheus.CounterOpts{
		Name: "birzha_legal_penalties_total",
		Help: "Legal investigations concluded with sanctions",
	})

	// InvestorsAttracted counts new investors across all sessions.
	InvestorsAttracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "birzha_investors_attracted_total",
		Help: "New investors attracted",
	})

	// ActiveSessions tracks live game sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "birzha_active_sessions",
		Help: "Number of live game sessions",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "birzha_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "birzha_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "birzha_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the raw path for the label; the API surface is small enough
		// that cardinality stays bounded per session.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
