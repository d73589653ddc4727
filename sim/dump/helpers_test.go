package dump

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim"
	"github.com/ndes-sim/ndes/sim/probe"
)

func newTestSimulator(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.New()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// latencyProbe returns an exhaustive probe sampled at 0.5, 1 and 2.25.
func latencyProbe(t *testing.T, s *sim.Simulator) *probe.Probe {
	t.Helper()
	p := probe.NewExhaustive(s, probe.WithName("latency"))
	for i, d := range []float64{0.5, 1, 2.25} {
		v := []float64{1, 2.5, 1e-7}[i]
		s.Add(sim.ActionFunc(func(any) { p.Sample(v) }), nil, d)
	}
	s.RunUntilExhausted()
	return p
}

func sizesHistogram(t *testing.T, s *sim.Simulator) *probe.Probe {
	t.Helper()
	h, err := probe.NewHistogram(s, 0, 10, 5, probe.WithName("sizes"))
	require.NoError(t, err)
	for _, v := range []float64{2.5, 9.99, 3} {
		h.Sample(v)
	}
	return h
}
