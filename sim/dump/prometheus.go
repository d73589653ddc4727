package dump

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ndes-sim/ndes/sim/probe"
)

type probeMetric struct {
	desc  *prometheus.Desc
	value func(p *probe.Probe) float64
}

// Collector exposes the aggregates of a set of probes as Prometheus
// gauges labelled by probe name and kind. Probe names must be unique
// within a collector.
type Collector struct {
	probes  []*probe.Probe
	metrics []probeMetric
}

// NewCollector creates a collector whose metric names start with
// namespace.
func NewCollector(namespace string, probes ...*probe.Probe) *Collector {
	labels := []string{"probe", "kind"}
	gauge := func(name, help string, value func(p *probe.Probe) float64) probeMetric {
		return probeMetric{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "probe", name), help, labels, nil),
			value: value,
		}
	}
	return &Collector{
		probes: probes,
		metrics: []probeMetric{
			gauge("samples", "Number of values aggregated by the probe.",
				func(p *probe.Probe) float64 { return float64(p.Count()) }),
			gauge("mean", "Mean of the probe.", (*probe.Probe).Mean),
			gauge("stddev", "Standard deviation of the probe.", (*probe.Probe).StdDev),
			gauge("min", "Smallest value aggregated by the probe.", (*probe.Probe).Min),
			gauge("max", "Largest value aggregated by the probe.", (*probe.Probe).Max),
			gauge("throughput", "Value received per unit of simulated time.", (*probe.Probe).Throughput),
			gauge("ci95", "Half-width of the 95% confidence interval of the mean.", (*probe.Probe).ConfidenceInterval),
		},
	}
}

// Add appends probes to the collector.
func (c *Collector) Add(probes ...*probe.Probe) {
	c.probes = append(c.probes, probes...)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, p := range c.probes {
		for _, m := range c.metrics {
			ch <- prometheus.MustNewConstMetric(m.desc, prometheus.GaugeValue, m.value(p), p.Name(), p.Kind().String())
		}
	}
}

// WriteTextfile writes the collector's metrics to path in the Prometheus
// text exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, c *Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return fmt.Errorf("registering probe collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
