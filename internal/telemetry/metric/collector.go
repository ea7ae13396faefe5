package metric

import "github.com/prometheus/client_golang/prometheus"

// Sizer reports the number of keys in a store.
type Sizer interface {
	Len() int
}

// KeyspaceCollector exports the current key count at scrape time.
type KeyspaceCollector struct {
	store Sizer
	keys  *prometheus.Desc
}

// NewKeyspaceCollector creates a collector reading from store.
func NewKeyspaceCollector(store Sizer) *KeyspaceCollector {
	return &KeyspaceCollector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "keyspace", "keys"),
			"Number of keys in the store",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *KeyspaceCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
}
