package observability

import (
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	calculationDuration *prometheus.HistogramVec
	calculationsTotal   *prometheus.CounterVec
	externalErrors      *prometheus.CounterVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	amountFormats       prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		calculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taxcalc_calculation_duration_seconds",
				Help:    "Duration of calculations by panel, including the remote call.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"panel"},
		),
		calculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxcalc_calculations_total",
				Help: "Total calculations by panel and final state.",
			},
			[]string{"panel", "state"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxcalc_external_errors_total",
				Help: "Total errors from the tax API by calculator endpoint.",
			},
			[]string{"endpoint"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxcalc_cache_hits_total",
				Help: "Total calculation cache hits.",
			},
			[]string{"endpoint"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxcalc_cache_misses_total",
				Help: "Total calculation cache misses.",
			},
			[]string{"endpoint"},
		),
		amountFormats: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "taxcalc_amount_formats_total",
				Help: "Total amount field masking requests.",
			},
		),
	}
}

// RecordCalculation records the duration and final state of a calculation.
func (m *Metrics) RecordCalculation(panel, state string, d time.Duration) {
	m.calculationDuration.WithLabelValues(panel).Observe(d.Seconds())
	m.calculationsTotal.WithLabelValues(panel, state).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(endpoint string) {
	m.externalErrors.WithLabelValues(endpoint).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(endpoint string) {
	m.cacheHits.WithLabelValues(endpoint).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(endpoint string) {
	m.cacheMisses.WithLabelValues(endpoint).Inc()
}

// IncrAmountFormat counts one amount masking request.
func (m *Metrics) IncrAmountFormat() {
	m.amountFormats.Inc()
}

// Snapshot returns per-panel counters suitable for the
// GET /v1/metrics/calculations endpoint.
func (m *Metrics) Snapshot(panels []string) *domain.CalculationStats {
	stats := &domain.CalculationStats{Period: "all_time"}

	for _, p := range panels {
		rendered := getCounterValue(m.calculationsTotal, p, "rendered")
		failed := getCounterValue(m.calculationsTotal, p, "error_shown")
		hits := getCounterValue(m.cacheHits, p)
		misses := getCounterValue(m.cacheMisses, p)

		ps := domain.PanelStats{
			Panel:    p,
			Rendered: int64(rendered),
			Failed:   int64(failed),
		}
		if total := rendered + failed; total > 0 {
			ps.ErrorRate = failed / total
		}
		if hits+misses > 0 {
			ps.CacheHitRate = hits / (hits + misses)
		}

		stats.TotalRequests += ps.Rendered + ps.Failed
		stats.Panels = append(stats.Panels, ps)
	}
	return stats
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
