package rshare

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors updated by a [Hub].
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ItemsReceived  prometheus.Counter
	ItemsDelivered prometheus.Counter
	ItemsDropped   prometheus.Counter
	Subscribers    prometheus.Gauge
}

// NewMetrics creates hub metrics labeled with the given hub name
// and registers them with reg.
func NewMetrics(reg prometheus.Registerer, hubName string) *Metrics {
	labels := prometheus.Labels{"hub": hubName}

	m := &Metrics{
		ItemsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rill",
			Subsystem:   "share",
			Name:        "items_received_total",
			Help:        "Items received from the upstream producer.",
			ConstLabels: labels,
		}),
		ItemsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rill",
			Subsystem:   "share",
			Name:        "items_delivered_total",
			Help:        "Items delivered to downstream subscribers, counting each subscriber separately.",
			ConstLabels: labels,
		}),
		ItemsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rill",
			Subsystem:   "share",
			Name:        "items_dropped_total",
			Help:        "Pending items evicted from subscribers whose demand fell more than the capacity behind.",
			ConstLabels: labels,
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "rill",
			Subsystem:   "share",
			Name:        "subscribers",
			Help:        "Active downstream subscriptions receiving live items.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.ItemsReceived, m.ItemsDelivered, m.ItemsDropped, m.Subscribers)

	return m
}

func (m *Metrics) received() {
	if m != nil {
		m.ItemsReceived.Inc()
	}
}

func (m *Metrics) delivered() {
	if m != nil {
		m.ItemsDelivered.Inc()
	}
}

func (m *Metrics) dropped(n int) {
	if m != nil && n > 0 {
		m.ItemsDropped.Add(float64(n))
	}
}

func (m *Metrics) subscribers(n int) {
	if m != nil {
		m.Subscribers.Set(float64(n))
	}
}
