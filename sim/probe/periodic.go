package probe

import (
	"fmt"
	"math"

	"github.com/ndes-sim/ndes/sim"
)

// periodic records, on each tick of its own timer, the last value it was
// sampled with. Sampling alone records nothing. Old snapshots roll off once
// the capacity is reached.
type periodic struct {
	period  float64
	current float64
	has     bool
	series
}

// NewPeriodic creates a snapshot probe ticking every period, starting one
// period after the current date. It is typically fed through AddMeanProbe,
// AddThroughputProbe or AddSampleProbe.
func NewPeriodic(s *sim.Simulator, period float64, opts ...Option) (*Probe, error) {
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("creating periodic probe with period %g: %w", period, ErrInvalidSlice)
	}
	cfg := newConfig(opts)
	p := newProbe(s, KindPeriodic, &periodic{period: period, series: newRollingSeries(cfg.capacity)}, cfg)
	p.scheduleTick()
	return p, nil
}

func (pr *periodic) record(_, v float64) error {
	pr.current = v
	pr.has = true
	return nil
}

func (pr *periodic) snapshot(now float64) (float64, bool, error) {
	if !pr.has {
		return 0, false, nil
	}
	if err := pr.append(now, pr.current); err != nil {
		return 0, false, err
	}
	return pr.current, true, nil
}

func (pr *periodic) count() int                     { return pr.acc.count() }
func (pr *periodic) mean() float64                  { return pr.acc.mean() }
func (pr *periodic) variance() float64              { return pr.acc.variance() }
func (pr *periodic) min() float64                   { return pr.acc.min() }
func (pr *periodic) max() float64                   { return pr.acc.max() }
func (pr *periodic) throughput(now float64) float64 { return pr.series.throughput(now) }
func (pr *periodic) sequence() *series              { return &pr.series }

func (pr *periodic) clear() {
	pr.series.clear()
	pr.current = 0
	pr.has = false
}

// scheduleTick inserts the probe's timer event, first due one period from
// now.
func (p *Probe) scheduleTick() {
	pr := p.agg.(*periodic)
	if _, err := p.sim.AddPeriodic(sim.ActionFunc(p.tick), nil, p.sim.Now()+pr.period, pr.period); err != nil {
		sim.Fatalf("NewPeriodic", "probe %q: %v", p.name, err)
	}
}

func (p *Probe) tick(any) {
	if p.deleted {
		return
	}
	v, ok, err := p.agg.(*periodic).snapshot(p.sim.Now())
	if err != nil {
		sim.Fatalf("Tick", "probe %q (%s): %v after %d samples", p.name, p.kind, err, p.agg.count())
		return
	}
	if ok {
		p.forwardOutput(v)
	}
}
