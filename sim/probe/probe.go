package probe

import (
	"github.com/sirupsen/logrus"

	"github.com/ndes-sim/ndes/sim"
)

// Option configures a probe at construction.
type Option func(*config)

type config struct {
	name     string
	capacity int
}

// WithName sets the probe's display name. The default is the variant name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCapacity bounds the number of values kept by an exhaustive probe, and
// the number of recent values a periodic or time-slice probe retains.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Filter decides, from the subject a value is about (a customer, a packet),
// whether SampleFiltered records that value.
type Filter interface {
	Accept(subject any) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(subject any) bool

// Accept calls f(subject).
func (f FilterFunc) Accept(subject any) bool {
	return f(subject)
}

type linkKind int

const (
	linkChain linkKind = iota
	linkSample
	linkMean
	linkThroughput
)

type link struct {
	kind   linkKind
	target *Probe
}

// interArrival tracks the gaps between successive sample dates.
type interArrival struct {
	has  bool
	last float64
	gaps accumulator
}

func (ia *interArrival) observe(now float64) {
	if ia.has {
		ia.gaps.add(now - ia.last)
	}
	ia.last = now
	ia.has = true
}

func (ia *interArrival) clear() {
	*ia = interArrival{}
}

// Probe is a statistics collector bound to a simulator. The zero value is
// not usable; build probes with the New* constructors.
type Probe struct {
	sim  *sim.Simulator
	kind Kind
	name string

	persistent bool
	deleted    bool

	filter Filter
	links  []link
	ia     interArrival
	agg    aggregator
}

func newProbe(s *sim.Simulator, kind Kind, agg aggregator, cfg config) *Probe {
	p := &Probe{
		sim:   s,
		kind:  kind,
		name:  cfg.name,
		agg:   agg,
		links: make([]link, 0),
	}
	if p.name == "" {
		p.name = kind.String()
	}
	s.RegisterReset(p, p.onSimulatorReset)
	return p
}

// Name returns the probe's display name.
func (p *Probe) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// SetName renames the probe.
func (p *Probe) SetName(name string) {
	if p == nil {
		return
	}
	p.name = name
}

// Kind returns the probe's variant.
func (p *Probe) Kind() Kind {
	if p == nil {
		return Kind(-1)
	}
	return p.kind
}

// SetPersistent makes the probe keep its data across Reset, ResetAll and
// simulator resets.
func (p *Probe) SetPersistent(persistent bool) {
	if p == nil {
		return
	}
	p.persistent = persistent
}

// Persistent reports whether the probe survives resets.
func (p *Probe) Persistent() bool {
	return p != nil && p.persistent
}

// SetFilter installs the filter consulted by SampleFiltered. A nil filter
// accepts everything.
func (p *Probe) SetFilter(f Filter) {
	if p == nil {
		return
	}
	p.filter = f
}

// Sample records v at the current simulated date and propagates it along
// the probe's outgoing edges. Sampling a nil or deleted probe does nothing.
func (p *Probe) Sample(v float64) {
	if p == nil || p.deleted {
		return
	}
	now := p.sim.Now()
	p.ia.observe(now)
	if err := p.agg.record(now, v); err != nil {
		sim.Fatalf("Sample", "probe %q (%s): %v after %d samples", p.name, p.kind, err, p.agg.count())
		return
	}
	p.notify(v)
}

// SampleFiltered samples v only if the probe's filter accepts subject. With
// no filter installed every value is sampled.
func (p *Probe) SampleFiltered(v float64, subject any) {
	if p == nil || p.deleted {
		return
	}
	if p.filter != nil && !p.filter.Accept(subject) {
		return
	}
	p.Sample(v)
}

// SampleEvent marks an occurrence without a value: only the inter-arrival
// statistics are updated.
func (p *Probe) SampleEvent() {
	if p == nil || p.deleted {
		return
	}
	p.ia.observe(p.sim.Now())
}

func (p *Probe) notify(v float64) {
	for _, l := range p.links {
		switch l.kind {
		case linkChain:
			l.target.Sample(v)
		case linkSample:
			if !p.emitsOutput() {
				l.target.Sample(v)
			}
		case linkMean:
			l.target.Sample(p.Mean())
		case linkThroughput:
			l.target.Sample(p.Throughput())
		}
	}
}

// forwardOutput hands a value the probe produced on its own (a completed
// slice or a snapshot) to its sample observers.
func (p *Probe) forwardOutput(v float64) {
	for _, l := range p.links {
		if l.kind == linkSample {
			l.target.Sample(v)
		}
	}
}

// emitsOutput reports whether the probe's recorded values differ from the
// raw samples it receives.
func (p *Probe) emitsOutput() bool {
	return p.kind.isTimeSlice() || p.kind == KindPeriodic
}

// Chain forwards every raw sample of from to to and returns from.
func Chain(from, to *Probe) *Probe {
	from.addLink("Chain", linkChain, to)
	return from
}

// AddSampleProbe makes observer record the values src records: its raw
// samples, or its slice values and snapshots for time-slice and periodic
// probes.
func AddSampleProbe(src, observer *Probe) {
	src.addLink("AddSampleProbe", linkSample, observer)
}

// AddMeanProbe makes observer record src's mean each time src is sampled.
func AddMeanProbe(src, observer *Probe) {
	src.addLink("AddMeanProbe", linkMean, observer)
}

// AddThroughputProbe makes observer record src's throughput each time src
// is sampled.
func AddThroughputProbe(src, observer *Probe) {
	src.addLink("AddThroughputProbe", linkThroughput, observer)
}

func (p *Probe) addLink(op string, kind linkKind, target *Probe) {
	if p == nil || target == nil {
		return
	}
	if target == p || target.reaches(p) {
		sim.Fatalf(op, "linking probe %q to %q would create a cycle", p.name, target.name)
		return
	}
	p.links = append(p.links, link{kind: kind, target: target})
}

// reaches reports whether q is reachable from p along outgoing edges.
func (p *Probe) reaches(q *Probe) bool {
	seen := map[*Probe]bool{p: true}
	stack := []*Probe{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, l := range cur.links {
			if l.target == q {
				return true
			}
			if !seen[l.target] {
				seen[l.target] = true
				stack = append(stack, l.target)
			}
		}
	}
	return false
}

// Reset clears the probe's data. Persistent probes are left untouched.
func (p *Probe) Reset() {
	if p == nil || p.persistent {
		return
	}
	p.agg.clear()
	p.ia.clear()
	if r, ok := p.agg.(roller); ok {
		r.realign(p.sim.Now())
	}
}

func (p *Probe) onSimulatorReset() {
	if p.persistent {
		// keep the data but restart date-relative state on the new clock
		p.ia.has = false
		if r, ok := p.agg.(roller); ok {
			r.realign(p.sim.Now())
		}
	} else {
		p.Reset()
	}
	if p.kind == KindPeriodic && !p.deleted {
		p.scheduleTick()
	}
}

// Delete detaches the probe from the simulator and from the probe graph.
// Further samples are ignored; its data stays readable.
func (p *Probe) Delete() {
	if p == nil || p.deleted {
		return
	}
	p.deleted = true
	p.links = nil
	p.sim.UnregisterReset(p)
	logrus.WithField("probe", p.name).Debug("probe deleted")
}

// ResetAll resets every probe registered with s.
func ResetAll(s *sim.Simulator) {
	s.Resets().Each(func(h any) {
		if p, ok := h.(*Probe); ok {
			p.Reset()
		}
	})
}

// sync closes the slices that elapsed since the last sample.
func (p *Probe) sync() {
	r, ok := p.agg.(roller)
	if !ok || p.deleted {
		return
	}
	if err := r.roll(p.sim.Now()); err != nil {
		sim.Fatalf("Sample", "probe %q (%s): %v after %d samples", p.name, p.kind, err, p.agg.count())
	}
}
