// Package metrics exports arena usage to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/regionarena"
)

const namespace = "regionarena"

// StatsProvider is satisfied by *regionarena.Arena and *regionarena.SafeArena.
type StatsProvider interface {
	Stats() regionarena.Stats
}

// Collector reports the aggregate statistics of one arena as gauges
// labelled with the arena's name. Collecting only reads the arena; for an
// Arena shared with other goroutines use a SafeArena so reads are locked.
type Collector struct {
	src StatsProvider

	chunks      *prometheus.Desc
	capacity    *prometheus.Desc
	used        *prometheus.Desc
	peak        *prometheus.Desc
	allocations *prometheus.Desc
	requested   *prometheus.Desc
}

// NewCollector returns a collector for src labelled arena=name.
func NewCollector(name string, src StatsProvider) *Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &Collector{
		src:         src,
		chunks:      desc("chunks", "Number of chunks in the arena"),
		capacity:    desc("capacity_bytes", "Total bytes reserved by the arena"),
		used:        desc("used_bytes", "Bytes currently consumed, including alignment padding"),
		peak:        desc("peak_bytes", "Sum of per-chunk high-water marks"),
		allocations: desc("allocations", "Allocations served since the last reset"),
		requested:   desc("requested_bytes", "Bytes handed out plus padding since the last reset"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.chunks
	ch <- c.capacity
	ch <- c.used
	ch <- c.peak
	ch <- c.allocations
	ch <- c.requested
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	gauge(c.chunks, s.NumChunks)
	gauge(c.capacity, s.Capacity)
	gauge(c.used, s.Used)
	gauge(c.peak, s.Peak)
	gauge(c.allocations, s.Allocations)
	gauge(c.requested, s.Requested)
}
