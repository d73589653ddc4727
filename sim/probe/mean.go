package probe

import (
	"math"

	"github.com/ndes-sim/ndes/sim"
)

// meanAgg never stores raw values.
type meanAgg struct {
	accumulator
	firstDate  float64
	firstValue float64
}

// NewMean creates a probe that keeps only the running sum, sum of squares
// and count of its samples.
func NewMean(s *sim.Simulator, opts ...Option) *Probe {
	return newProbe(s, KindMean, &meanAgg{}, newConfig(opts))
}

func (m *meanAgg) record(now, v float64) error {
	if m.n == 0 {
		m.firstDate = now
		m.firstValue = v
	}
	m.add(v)
	return nil
}

func (m *meanAgg) throughput(now float64) float64 {
	if m.n == 0 {
		return math.NaN()
	}
	elapsed := now - m.firstDate
	if elapsed <= 0 {
		return math.NaN()
	}
	return (m.sum - m.firstValue) / elapsed
}

func (m *meanAgg) clear() {
	*m = meanAgg{}
}
