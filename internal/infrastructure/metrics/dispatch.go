// Package metrics exposes Prometheus collectors for the clients service.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// Outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeNotFound     = "not_found"
	OutcomeInvalid      = "invalid"
	OutcomeUnhandled    = "unhandled"
	OutcomeUnresolved   = "unresolved"
	OutcomeCollaborator = "collaborator_error"
	OutcomeError        = "error"
)

// DispatchObserver records dispatch counts and latencies.
type DispatchObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewDispatchObserver registers the dispatch collectors on reg.
func NewDispatchObserver(reg prometheus.Registerer) *DispatchObserver {
	factory := promauto.With(reg)
	return &DispatchObserver{
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clients_dispatch_total",
			Help: "Total number of dispatched commands and queries",
		}, []string{"kind", "message", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clients_dispatch_duration_seconds",
			Help:    "Duration of command and query handling",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "message"}),
	}
}

// Observe implements dispatch.Observer.
func (o *DispatchObserver) Observe(_ context.Context, kind dispatch.Kind, name string, elapsed time.Duration, err error) {
	o.total.WithLabelValues(string(kind), name, Outcome(err)).Inc()
	o.duration.WithLabelValues(string(kind), name).Observe(elapsed.Seconds())
}

// Outcome classifies a dispatch error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, dispatch.ErrUnhandledMessageType):
		return OutcomeUnhandled
	case errors.Is(err, dependency.ErrUnresolvableCapability):
		return OutcomeUnresolved
	case errors.Is(err, domain.ErrCollaborator):
		return OutcomeCollaborator
	default:
		return OutcomeError
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
