package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors. Collectors are
// registered on the registry passed to NewMetrics so that several engines can
// coexist in one process.
type Metrics struct {
	RunsTotal      prometheus.Counter
	WarningsTotal  *prometheus.CounterVec
	LineItemsTotal *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	LastESGScore   *prometheus.GaugeVec
}

// NewMetrics creates and registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "esgcore_runs_total",
			Help: "Total number of pipeline runs",
		}),
		WarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esgcore_calculation_warnings_total",
				Help: "Total number of data-quality warnings by kind",
			},
			[]string{"kind"},
		),
		LineItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esgcore_line_items_total",
				Help: "Total number of emission line items by scope",
			},
			[]string{"scope"},
		),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "esgcore_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		LastESGScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "esgcore_last_esg_score",
				Help: "ESG score of the most recent run by pillar",
			},
			[]string{"pillar"},
		),
	}
}

func (m *Metrics) observe(r *Result, seconds float64, warningKinds []string) {
	if m == nil {
		return
	}
	m.RunsTotal.Inc()
	m.RunDuration.Observe(seconds)
	for _, kind := range warningKinds {
		m.WarningsTotal.WithLabelValues(kind).Inc()
	}
	m.LineItemsTotal.WithLabelValues("scope1").Add(float64(len(r.CO2.Scope1Breakdown)))
	m.LineItemsTotal.WithLabelValues("scope2").Add(float64(len(r.CO2.Scope2Breakdown)))
	m.LineItemsTotal.WithLabelValues("scope3").Add(float64(len(r.CO2.Scope3Breakdown)))
	m.LastESGScore.WithLabelValues("total").Set(r.ESG.Total)
	m.LastESGScore.WithLabelValues("environmental").Set(r.ESG.Environmental.Score)
	m.LastESGScore.WithLabelValues("social").Set(r.ESG.Social.Score)
	m.LastESGScore.WithLabelValues("governance").Set(r.ESG.Governance.Score)
}
