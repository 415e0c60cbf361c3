package daemon

import (
	"github.com/theirongolddev/burnrate/internal/pipeline"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the collectors exposed at /metrics. Each service owns its
// registry so that several can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	clientMargin *prometheus.GaugeVec
	clientSpent  *prometheus.GaugeVec
	clientAtRisk *prometheus.GaugeVec
	totalMargin  prometheus.Gauge
	atRisk       prometheus.Gauge
	polls        prometheus.Counter
	pollErrors   prometheus.Counter
}

// Client names need not be unique, so series are keyed by ID.
var clientLabels = []string{"client_id", "client"}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &metrics{
		registry: reg,
		clientMargin: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "burnrate_client_margin_percent",
			Help: "Month-to-date margin percentage per active client",
		}, clientLabels),
		clientSpent: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "burnrate_client_spent",
			Help: "Month-to-date labor cost per active client",
		}, clientLabels),
		clientAtRisk: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "burnrate_client_at_risk",
			Help: "1 when the client is flagged at risk",
		}, clientLabels),
		totalMargin: f.NewGauge(prometheus.GaugeOpts{
			Name: "burnrate_total_margin",
			Help: "Month-to-date margin across active clients",
		}),
		atRisk: f.NewGauge(prometheus.GaugeOpts{
			Name: "burnrate_at_risk_clients",
			Help: "Number of active clients flagged at risk",
		}),
		polls: f.NewCounter(prometheus.CounterOpts{
			Name: "burnrate_polls_total",
			Help: "Poll cycles attempted",
		}),
		pollErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "burnrate_poll_errors_total",
			Help: "Poll cycles that failed to load data",
		}),
	}
}

// observe replaces the per-client series with the report's clients.
func (m *metrics) observe(r pipeline.Report) {
	m.clientMargin.Reset()
	m.clientSpent.Reset()
	m.clientAtRisk.Reset()

	for _, p := range r.Profitabilities {
		id, name := p.Client.ID, p.Client.Name
		m.clientMargin.WithLabelValues(id, name).Set(p.MarginPercent)
		m.clientSpent.WithLabelValues(id, name).Set(p.Spent)
		risk := 0.0
		if p.IsAtRisk {
			risk = 1
		}
		m.clientAtRisk.WithLabelValues(id, name).Set(risk)
	}
	m.totalMargin.Set(r.Summary.TotalMargin)
	m.atRisk.Set(float64(r.Summary.AtRiskCount))
}
