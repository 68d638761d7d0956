// Package metrics exposes colony state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/napolitain/homebound/internal/snapshot"
)

const (
	namespace = "homebound"
	subsystem = "colony"
)

// ColonyMetricsCollector turns per-tick snapshots into gauges and counters
type ColonyMetricsCollector struct {
	ticksTotal     *prometheus.CounterVec
	simulatedTime  *prometheus.GaugeVec
	stock          *prometheus.GaugeVec
	maxStorage     *prometheus.GaugeVec
	discarded      *prometheus.CounterVec
	power          *prometheus.GaugeVec
	workers        *prometheus.GaugeVec
	items          *prometheus.GaugeVec
	buildingsTotal *prometheus.GaugeVec
}

// NewColonyMetricsCollector creates the collector. Call Register before Observe.
func NewColonyMetricsCollector() *ColonyMetricsCollector {
	return &ColonyMetricsCollector{
		ticksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ticks_total",
				Help:      "Number of simulation ticks run",
			},
			[]string{"colony_id"},
		),

		simulatedTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulated_seconds",
				Help:      "Simulated seconds since the colony was created",
			},
			[]string{"colony_id"},
		),

		stock: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock",
				Help:      "Spendable stock per resource after the last fold",
			},
			[]string{"colony_id", "resource"},
		),

		maxStorage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "max_storage",
				Help:      "Storage capacity per resource",
			},
			[]string{"colony_id", "resource"},
		),

		discarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "discarded_total",
				Help:      "Production lost to full storage, per resource",
			},
			[]string{"colony_id", "resource"},
		),

		power: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "power",
				Help:      "Power produced and consumed",
			},
			[]string{"colony_id", "direction"},
		),

		workers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "workers",
				Help:      "Workers by type and state",
			},
			[]string{"colony_id", "worker", "state"},
		),

		items: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items",
				Help:      "Manufactured items in inventory",
			},
			[]string{"colony_id", "item"},
		),

		buildingsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "buildings_total",
				Help:      "Number of buildings by kind",
			},
			[]string{"colony_id", "kind"},
		),
	}
}

// Register registers all metrics with reg
func (c *ColonyMetricsCollector) Register(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.ticksTotal,
		c.simulatedTime,
		c.stock,
		c.maxStorage,
		c.discarded,
		c.power,
		c.workers,
		c.items,
		c.buildingsTotal,
	}

	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Observe records one tick. It matches service.Observer.
func (c *ColonyMetricsCollector) Observe(v snapshot.View) {
	id := v.ID

	c.ticksTotal.WithLabelValues(id).Inc()
	c.simulatedTime.WithLabelValues(id).Set(v.Elapsed)

	for rt, q := range v.Stock {
		c.stock.WithLabelValues(id, string(rt)).Set(q)
	}
	for rt, q := range v.MaxStorage {
		c.maxStorage.WithLabelValues(id, string(rt)).Set(q)
	}
	for rt, q := range v.Discarded {
		if q > 0 {
			c.discarded.WithLabelValues(id, string(rt)).Add(q)
		}
	}

	c.power.WithLabelValues(id, "produced").Set(v.Power.Produced)
	c.power.WithLabelValues(id, "consumed").Set(v.Power.Consumed)

	wf := v.Workforce
	c.workers.WithLabelValues(id, "engineers", "available").Set(float64(wf.Engineers.Available))
	c.workers.WithLabelValues(id, "engineers", "total").Set(float64(wf.Engineers.Total))
	c.workers.WithLabelValues(id, "scientists", "available").Set(float64(wf.Scientists.Available))
	c.workers.WithLabelValues(id, "scientists", "total").Set(float64(wf.Scientists.Total))
	c.workers.WithLabelValues(id, "pilots", "total").Set(float64(wf.Pilots))

	for it, n := range v.Items {
		c.items.WithLabelValues(id, string(it)).Set(float64(n))
	}

	// Destroyed kinds must drop to zero rather than keep their last value
	c.buildingsTotal.DeletePartialMatch(prometheus.Labels{"colony_id": id})
	counts := make(map[string]int)
	for _, b := range v.Buildings {
		counts[string(b.Kind)]++
	}
	for kind, n := range counts {
		c.buildingsTotal.WithLabelValues(id, kind).Set(float64(n))
	}
}
