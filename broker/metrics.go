package broker

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a Router reports through. A nil
// *Metrics is valid everywhere a *Metrics is accepted - every method below
// guards against it - so embedders that don't care about metrics can pass
// nil the same way the teacher's client treats a nil *slog.Logger as "use
// the discarding default" rather than a programmer error.
type Metrics struct {
	subscriptionsActive prometheus.Gauge
	retainedTopics      prometheus.Gauge
	publishesRouted     prometheus.Counter
	publishesDropped    prometheus.Counter
}

// NewMetrics creates a Metrics registered against reg. Passing a
// prometheus.NewRegistry() per Router (rather than the global default
// registry promauto.* would use) keeps multiple Routers - as in tests -
// from colliding on duplicate metric registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		subscriptionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mqtrie",
			Name:      "subscriptions_active",
			Help:      "Number of live nodes in the subscription trie, including the root.",
		}),
		retainedTopics: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mqtrie",
			Name:      "retained_topics",
			Help:      "Number of live nodes in the retained-message trie, including the root.",
		}),
		publishesRouted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mqtrie",
			Name:      "publishes_routed_total",
			Help:      "Publishes that matched at least one subscriber.",
		}),
		publishesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mqtrie",
			Name:      "publishes_dropped_total",
			Help:      "Publishes that matched zero subscribers.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.subscriptionsActive, m.retainedTopics, m.publishesRouted, m.publishesDropped)
	}
	return m
}

func (m *Metrics) setSubscriptionsActive(n int) {
	if m == nil {
		return
	}
	m.subscriptionsActive.Set(float64(n))
}

func (m *Metrics) setRetainedTopics(n int) {
	if m == nil {
		return
	}
	m.retainedTopics.Set(float64(n))
}

func (m *Metrics) recordPublish(matched int) {
	if m == nil {
		return
	}
	if matched > 0 {
		m.publishesRouted.Inc()
	} else {
		m.publishesDropped.Inc()
	}
}
