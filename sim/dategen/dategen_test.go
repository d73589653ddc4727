package dategen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim"
	"github.com/ndes-sim/ndes/sim/probe"
	"github.com/ndes-sim/ndes/sim/random"
)

func newTestSimulator(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.New(sim.WithSeed(7))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// arrivals schedules a self-rescheduling source until the given date and
// returns the dates at which it fired.
func arrivals(s *sim.Simulator, g *Generator, until float64) []float64 {
	var dates []float64
	var arrive sim.ActionFunc
	arrive = func(any) {
		dates = append(dates, s.Now())
		s.Add(arrive, nil, g.NextDate(s.Now()))
	}
	s.Add(arrive, nil, g.NextDate(s.Now()))
	s.RunUntil(until)
	return dates
}

func TestConstant_DatesArePeriodic(t *testing.T) {
	s := newTestSimulator(t)
	g, err := NewConstant(s, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 4, 6, 8}, arrivals(s, g, 9))
}

func TestExponential_FeedsInterArrivalProbe(t *testing.T) {
	// GIVEN an exponential generator with an inter-arrival probe
	s := newTestSimulator(t)
	g, err := NewExponential(s, 5)
	require.NoError(t, err)
	ia := probe.NewMean(s)
	g.SetInterArrivalProbe(ia)

	// WHEN many dates are drawn
	date := 0.0
	for i := 0; i < 20000; i++ {
		next := g.NextDate(date)
		require.GreaterOrEqual(t, next, date)
		date = next
	}

	// THEN the probe saw every interval and their mean is 1/rate
	assert.Equal(t, 20000, ia.Count())
	assert.InEpsilon(t, 0.2, ia.Mean(), 0.05)
}

func TestRecordThenReplay_CampaignsSeeSameDates(t *testing.T) {
	// GIVEN a recorded exponential source
	s := newTestSimulator(t)
	g, err := NewExponential(s, 1)
	require.NoError(t, err)
	g.RecordThenReplay()

	// WHEN two campaigns run, separated by a reset
	first := arrivals(s, g, 20)
	s.Reset()
	second := arrivals(s, g, 20)

	// THEN both generated the same dates
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestSetRate(t *testing.T) {
	s := newTestSimulator(t)
	g, err := NewExponential(s, 1, WithStream("source-2"))
	require.NoError(t, err)

	require.NoError(t, g.SetRate(4))
	assert.Equal(t, 4.0, g.Values().Distribution().(*random.Exponential).Rate())

	c, err := NewConstant(s, 1)
	require.NoError(t, err)
	assert.True(t, errors.Is(c.SetRate(2), random.ErrInvalidDistribution))
}

func TestNewExponential_InvalidRate(t *testing.T) {
	s := newTestSimulator(t)
	_, err := NewExponential(s, -1)
	assert.True(t, errors.Is(err, random.ErrInvalidRate))
}
