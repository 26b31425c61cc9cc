// Package metrics exposes session request counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"triad/internal/domain"
)

// RequestCounter counts outgoing session requests by session kind and host.
type RequestCounter struct {
	requests *prometheus.CounterVec
}

// NewRequestCounter registers the counter on reg.
func NewRequestCounter(reg prometheus.Registerer) (*RequestCounter, error) {
	c := &RequestCounter{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triad",
			Name:      "session_requests_total",
			Help:      "Outgoing requests made by account sessions.",
		}, []string{"login", "session", "host"}),
	}
	if err := reg.Register(c.requests); err != nil {
		return nil, err
	}
	return c, nil
}

// Observe has the request-logger signature so it can be installed with
// Helpers.UseRequestLoggers.
func (c *RequestCounter) Observe(login string, kind domain.SessionKind, args domain.RequestArgs) {
	host := ""
	if args.URL != nil {
		host = args.URL.Host
	}
	c.requests.WithLabelValues(login, string(kind), host).Inc()
}

// Handler serves the metrics in reg.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
