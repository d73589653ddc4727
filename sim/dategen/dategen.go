// Package dategen produces successive event dates from a random generator
// of inter-arrival intervals.
package dategen

import (
	"github.com/ndes-sim/ndes/sim"
	"github.com/ndes-sim/ndes/sim/probe"
	"github.com/ndes-sim/ndes/sim/random"
)

// Generator turns interval draws into absolute dates.
type Generator struct {
	values       *random.Generator
	interArrival *probe.Probe
}

// Option configures a generator built by NewExponential or NewConstant.
type Option func(*options)

type options struct {
	stream string
}

// WithStream selects the RNG stream. The default is sim.SubsystemArrival.
func WithStream(name string) Option {
	return func(o *options) {
		o.stream = name
	}
}

func newOptions(opts []Option) options {
	o := options{stream: sim.SubsystemArrival}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New wraps an interval generator.
func New(values *random.Generator) *Generator {
	return &Generator{values: values}
}

// NewExponential creates a generator of Poisson arrivals with the given
// rate.
func NewExponential(s *sim.Simulator, rate float64, opts ...Option) (*Generator, error) {
	d, err := random.NewExponential(rate)
	if err != nil {
		return nil, err
	}
	return New(random.New(s, newOptions(opts).stream, d)), nil
}

// NewConstant creates a generator of dates spaced exactly period apart.
func NewConstant(s *sim.Simulator, period float64, opts ...Option) (*Generator, error) {
	d, err := random.NewDiscrete([]float64{period}, []float64{1})
	if err != nil {
		return nil, err
	}
	return New(random.New(s, newOptions(opts).stream, d)), nil
}

// NextDate returns current plus the next interval. The interval is sampled
// into the inter-arrival probe, if one is set.
func (g *Generator) NextDate(current float64) float64 {
	d := g.values.NextValue()
	g.interArrival.Sample(d)
	return current + d
}

// SetInterArrivalProbe makes the generator sample every interval into p.
// A nil probe disables it.
func (g *Generator) SetInterArrivalProbe(p *probe.Probe) {
	g.interArrival = p
}

// SetRate changes the rate of the underlying distribution.
func (g *Generator) SetRate(rate float64) error {
	return g.values.SetRate(rate)
}

// RecordThenReplay makes the generator replay the same dates after every
// simulator reset.
func (g *Generator) RecordThenReplay() {
	g.values.RecordThenReplay()
}

// Values returns the underlying interval generator.
func (g *Generator) Values() *random.Generator {
	return g.values
}
