package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CalculationMetrics records counters and timings for offer calculations.
type CalculationMetrics struct {
	duration      *prometheus.HistogramVec
	applied       *prometheus.CounterVec
	savings       prometheus.Histogram
	auditFailures *prometheus.CounterVec
}

// NewCalculationMetrics registers the calculation metrics on the provided registerer.
func NewCalculationMetrics(reg prometheus.Registerer) *CalculationMetrics {
	if reg == nil {
		return &CalculationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "offer_calculation_duration_seconds",
		Help:    "Duration of offer calculations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offer_applied_total",
		Help: "Offers applied to carts, labeled by offer type.",
	}, []string{"offer_type"})
	savings := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offer_savings_rupees",
		Help:    "Total savings per calculation in rupees.",
		Buckets: []float64{0, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	auditFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calculation_audit_failures_total",
		Help: "Best-effort audit writes that failed, labeled by sink.",
	}, []string{"sink"})
	reg.MustRegister(duration, applied, savings, auditFailures)
	return &CalculationMetrics{
		duration:      duration,
		applied:       applied,
		savings:       savings,
		auditFailures: auditFailures,
	}
}

// ObserveDuration records how long a calculation took for the given outcome.
func (c *CalculationMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncApplied increments the applied-offer counter for the given offer type.
func (c *CalculationMetrics) IncApplied(offerType string) {
	if c == nil || c.applied == nil {
		return
	}
	c.applied.WithLabelValues(normalizeLabel(offerType)).Inc()
}

// ObserveSavings records the total rupee savings of a calculation.
func (c *CalculationMetrics) ObserveSavings(rupees float64) {
	if c == nil || c.savings == nil {
		return
	}
	c.savings.Observe(rupees)
}

// IncAuditFailure increments the audit failure counter for the named sink.
func (c *CalculationMetrics) IncAuditFailure(sink string) {
	if c == nil || c.auditFailures == nil {
		return
	}
	c.auditFailures.WithLabelValues(normalizeLabel(sink)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
