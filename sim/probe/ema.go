package probe

import (
	"fmt"
	"math"

	"github.com/ndes-sim/ndes/sim"
)

type ema struct {
	a     float64
	value float64
	raw   accumulator // count and bounds of the raw samples
}

// NewEMA creates an exponential moving average probe:
// value <- a*value + (1-a)*sample, seeded by the first sample.
func NewEMA(s *sim.Simulator, a float64, opts ...Option) (*Probe, error) {
	if !(a > 0 && a < 1) {
		return nil, fmt.Errorf("creating EMA probe with a=%g: %w", a, ErrInvalidCoefficient)
	}
	return newProbe(s, KindEMA, &ema{a: a}, newConfig(opts)), nil
}

func (e *ema) record(_, v float64) error {
	if e.raw.n == 0 {
		e.value = v
	} else {
		e.value = e.a*e.value + (1-e.a)*v
	}
	e.raw.add(v)
	return nil
}

func (e *ema) count() int { return e.raw.n }

func (e *ema) mean() float64 {
	if e.raw.n == 0 {
		return math.NaN()
	}
	return e.value
}

// variance is undefined for a smoothed value.
func (e *ema) variance() float64 { return math.NaN() }

func (e *ema) min() float64               { return e.raw.min() }
func (e *ema) max() float64               { return e.raw.max() }
func (e *ema) throughput(float64) float64 { return math.NaN() }

func (e *ema) clear() {
	e.value = 0
	e.raw.clear()
}
