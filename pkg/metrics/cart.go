package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutations and promo outcomes.
type CartMetrics struct {
	operations *prometheus.CounterVec
	promos     *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation name.",
	}, []string{"operation"})
	promos := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_promo_outcomes_total",
		Help: "Promo code applications by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(operations, promos)
	return &CartMetrics{
		operations: operations,
		promos:     promos,
	}
}

// IncOperation increments the counter for the named cart operation.
func (c *CartMetrics) IncOperation(operation string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPromoOutcome increments the counter for a promo application outcome.
func (c *CartMetrics) IncPromoOutcome(outcome string) {
	if c == nil || c.promos == nil {
		return
	}
	c.promos.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
