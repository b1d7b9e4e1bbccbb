package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's Prometheus collectors. Each instance owns its registry,
// so tests can build as many as they like. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	Logins        *prometheus.CounterVec
	MagicLinks    *prometheus.CounterVec
	ActivityRows  *prometheus.CounterVec
	DashboardHits *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semdex_logins_total",
			Help: "Login attempts by identifier kind and result",
		}, []string{"kind", "result"}),
		MagicLinks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semdex_magic_links_total",
			Help: "Magic link requests and redemptions by result",
		}, []string{"stage", "result"}),
		ActivityRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semdex_activity_rows_total",
			Help: "Append-only transaction and audit rows written",
		}, []string{"table"}),
		DashboardHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semdex_dashboard_queries_total",
			Help: "Dashboard read operations served",
		}, []string{"operation"}),
	}
}

func (m *Metrics) ObserveLogin(kind string, ok bool) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(kind, result(ok)).Inc()
}

func (m *Metrics) ObserveMagicLink(stage string, ok bool) {
	if m == nil {
		return
	}
	m.MagicLinks.WithLabelValues(stage, result(ok)).Inc()
}

func (m *Metrics) ObserveActivity(table string) {
	if m == nil {
		return
	}
	m.ActivityRows.WithLabelValues(table).Inc()
}

func (m *Metrics) ObserveDashboard(operation string) {
	if m == nil {
		return
	}
	m.DashboardHits.WithLabelValues(operation).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
