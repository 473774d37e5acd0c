package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics records checkout outcomes and upstream call latency.
type GatewayMetrics struct {
	upstreamDuration *prometheus.HistogramVec
	checkoutOutcome  *prometheus.CounterVec
	cartMutations    *prometheus.CounterVec
}

// NewGatewayMetrics registers the gateway metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to the upstream dining API in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	checkoutOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by terminal outcome.",
	}, []string{"outcome"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart reducer actions applied.",
	}, []string{"action"})
	reg.MustRegister(upstreamDuration, checkoutOutcome, cartMutations)
	return &GatewayMetrics{
		upstreamDuration: upstreamDuration,
		checkoutOutcome:  checkoutOutcome,
		cartMutations:    cartMutations,
	}
}

// ObserveUpstream records the duration of one upstream call.
func (g *GatewayMetrics) ObserveUpstream(operation string, duration time.Duration) {
	if g == nil || g.upstreamDuration == nil {
		return
	}
	g.upstreamDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncCheckout increments the counter for the given terminal checkout state.
func (g *GatewayMetrics) IncCheckout(outcome string) {
	if g == nil || g.checkoutOutcome == nil {
		return
	}
	g.checkoutOutcome.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCartMutation increments the counter for the given reducer action.
func (g *GatewayMetrics) IncCartMutation(action string) {
	if g == nil || g.cartMutations == nil {
		return
	}
	g.cartMutations.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
