package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus counters for the ticket lifecycle.
type Metrics struct {
	registry *prometheus.Registry

	TicketsOpened          *prometheus.CounterVec
	TicketsClaimed         *prometheus.CounterVec
	TicketsClosed          *prometheus.CounterVec
	TranscriptsSaved       prometheus.Counter
	PermissionEditFailures prometheus.Counter
	InteractionErrors      prometheus.Counter
}

// NewMetrics initializes the metric registry and collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		TicketsOpened: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketbot_tickets_opened_total",
			Help: "Tickets opened, by ticket type.",
		}, []string{"type"}),
		TicketsClaimed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketbot_tickets_claimed_total",
			Help: "Tickets claimed, by ticket type.",
		}, []string{"type"}),
		TicketsClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketbot_tickets_closed_total",
			Help: "Tickets closed, by ticket type.",
		}, []string{"type"}),
		TranscriptsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketbot_transcripts_saved_total",
			Help: "Transcript files written at close time.",
		}),
		PermissionEditFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketbot_permission_edit_failures_total",
			Help: "Permission overwrite edits that failed and were skipped.",
		}),
		InteractionErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketbot_interaction_errors_total",
			Help: "Interactions that ended in an unexpected error.",
		}),
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
