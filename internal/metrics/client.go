package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded by ObserveRequest.
const (
	OutcomeOK        = "ok"
	OutcomeBackend   = "backend_error"
	OutcomeMalformed = "malformed"
	OutcomeTransport = "transport_error"
)

// ClientMetrics holds the collectors for backend calls and dashboard
// refreshes. A nil *ClientMetrics records nothing.
type ClientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	staleDiscarded  prometheus.Counter
}

// NewClientMetrics registers the client collectors on reg.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	f := promauto.With(reg)
	return &ClientMetrics{
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "viralit_client_requests_total",
			Help: "Backend requests issued by the client, by route and outcome",
		}, []string{"method", "path", "outcome"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "viralit_client_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		refreshTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "viralit_dashboard_refresh_total",
			Help: "Dashboard refreshes by result",
		}, []string{"result"}),
		staleDiscarded: f.NewCounter(prometheus.CounterOpts{
			Name: "viralit_dashboard_stale_discarded_total",
			Help: "Dashboard refresh completions discarded because a newer one was already applied",
		}),
	}
}

// ObserveRequest records one backend call. path is the route template, not
// the concrete URL, to keep label cardinality bounded.
func (m *ClientMetrics) ObserveRequest(method, path, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, outcome).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *ClientMetrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}

func (m *ClientMetrics) ObserveStale() {
	if m == nil {
		return
	}
	m.staleDiscarded.Inc()
}
