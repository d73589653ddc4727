package probe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim"
)

func newTestSimulator(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.New()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// sampleAt samples p with each value at the matching date, advancing the
// simulator through events.
func sampleAt(s *sim.Simulator, p *Probe, dates, values []float64) {
	for i := range dates {
		v := values[i]
		s.Add(sim.ActionFunc(func(any) { p.Sample(v) }), nil, dates[i])
	}
	s.RunUntil(dates[len(dates)-1])
}

// advance moves the clock to date with an empty event.
func advance(s *sim.Simulator, date float64) {
	s.Add(sim.ActionFunc(func(any) {}), nil, date)
	s.RunUntil(date)
}

func actionFunc(fn func()) sim.ActionFunc {
	return func(any) { fn() }
}
