package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration tracks CreateUser outcomes and latency on its own registry,
// so several instances can coexist in one process.
type Registration struct {
	registry *prometheus.Registry

	CreateUserTotal    *prometheus.CounterVec
	CreateUserDuration prometheus.Histogram
}

func NewRegistration() *Registration {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Registration{
		registry: reg,
		CreateUserTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_create_user_total",
			Help: "CreateUser calls by outcome (success, a validation kind, or a storage failure)",
		}, []string{"outcome"}),
		CreateUserDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "registration_create_user_duration_seconds",
			Help:    "Duration of CreateUser including validation and persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveCreateUser records one CreateUser call that began at start.
func (m *Registration) ObserveCreateUser(start time.Time, outcome string) {
	m.CreateUserTotal.WithLabelValues(outcome).Inc()
	m.CreateUserDuration.Observe(time.Since(start).Seconds())
}

// Handler serves this registry in the Prometheus text format.
func (m *Registration) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
