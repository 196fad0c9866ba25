package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_status_transitions_total",
			Help: "Applied status/priority transitions by entity and input mechanism",
		},
		[]string{"entity", "source"},
	)

	noopMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_noop_moves_total",
			Help: "Kanban drops ignored (same column or outside any column)",
		},
		[]string{"entity"},
	)

	interactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_interactions_recorded_total",
			Help: "Interaction results recorded",
		},
		[]string{"type", "result"},
	)

	derivedTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_derived_tasks_total",
			Help: "Follow-up tasks derived from next actions",
		},
		[]string{"action"},
	)

	messagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_messages_sent_total",
			Help: "Messages appended to contacts",
		},
		[]string{"channel", "mode"},
	)

	notificationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_notifications_generated_total",
			Help: "Notifications appended by source",
		},
		[]string{"source"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		// padrão da rota (/prospects/{id}) em vez do path cru, senão explode a cardinalidade
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func RecordStatusTransition(entity, source string) {
	statusTransitions.WithLabelValues(entity, source).Inc()
}

func RecordNoopMove(entity string) {
	noopMoves.WithLabelValues(entity).Inc()
}

func RecordInteraction(interactionType, result string) {
	interactionsRecorded.WithLabelValues(interactionType, result).Inc()
}

func RecordDerivedTask(action string) {
	derivedTasks.WithLabelValues(action).Inc()
}

func RecordMessages(channel, mode string, n int) {
	messagesSent.WithLabelValues(channel, mode).Add(float64(n))
}

func RecordNotification(source string) {
	notificationsGenerated.WithLabelValues(source).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
