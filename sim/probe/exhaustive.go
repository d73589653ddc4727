package probe

import "github.com/ndes-sim/ndes/sim"

type exhaustive struct {
	series
}

// NewExhaustive creates a probe that keeps every sample with its date, up
// to its capacity (DefaultCapacity unless WithCapacity is given). Sampling
// past the capacity is fatal.
func NewExhaustive(s *sim.Simulator, opts ...Option) *Probe {
	cfg := newConfig(opts)
	return newProbe(s, KindExhaustive, &exhaustive{series: newSeries(cfg.capacity)}, cfg)
}

func (e *exhaustive) record(now, v float64) error    { return e.append(now, v) }
func (e *exhaustive) count() int                     { return e.len() }
func (e *exhaustive) mean() float64                  { return e.acc.mean() }
func (e *exhaustive) variance() float64              { return e.acc.variance() }
func (e *exhaustive) min() float64                   { return e.acc.min() }
func (e *exhaustive) max() float64                   { return e.acc.max() }
func (e *exhaustive) throughput(now float64) float64 { return e.series.throughput(now) }
func (e *exhaustive) clear()                         { e.series.clear() }
func (e *exhaustive) sequence() *series              { return &e.series }
