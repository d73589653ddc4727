package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim/internal/testutil"
)

func TestTimeSliceAverage_SkipsEmptySlices(t *testing.T) {
	// GIVEN slices of 10 starting at 0
	s := newTestSimulator(t)
	p, err := NewTimeSliceAverage(s, 10)
	require.NoError(t, err)

	// WHEN slice [0,10) gets 2 and 4, [10,20) and [20,30) get nothing,
	// [30,40) gets 9
	sampleAt(s, p, []float64{1, 5, 31}, []float64{2, 4, 9})
	advance(s, 40)

	// THEN only non-empty slices were recorded, dated at their end
	assert.Equal(t, []float64{3, 9}, p.Values())
	assert.Equal(t, []float64{10, 40}, p.Dates())
	assert.Equal(t, 2, p.Count())
	assert.Equal(t, 6.0, p.Mean())
}

func TestTimeSliceThroughput_EmitsZeroForEmptySlices(t *testing.T) {
	s := newTestSimulator(t)
	p, err := NewTimeSliceThroughput(s, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Throughput())

	sampleAt(s, p, []float64{1, 5, 31}, []float64{20, 30, 5})
	advance(s, 40)

	assert.Equal(t, []float64{5, 0, 0, 0.5}, p.Values())
	// last completed slice [30,40): 5/10
	assert.Equal(t, 0.5, p.Throughput())
}

func TestTimeSlice_SampleObserverReceivesSliceValues(t *testing.T) {
	s := newTestSimulator(t)
	src, err := NewTimeSliceAverage(s, 1)
	require.NoError(t, err)
	obs := NewExhaustive(s)
	AddSampleProbe(src, obs)

	sampleAt(s, src, []float64{0.1, 0.2, 1.5}, []float64{1, 3, 10})
	advance(s, 2)
	_ = src.Count()

	assert.Equal(t, []float64{2, 10}, obs.Values())
}

func TestTimeSlice_RealignedOnSimulatorReset(t *testing.T) {
	// GIVEN a slice probe with a partial slice pending
	s := newTestSimulator(t)
	p, err := NewTimeSliceAverage(s, 10)
	require.NoError(t, err)
	sampleAt(s, p, []float64{3, 12}, []float64{1, 100})

	// WHEN the simulator is reset and sampled again
	s.Reset()
	sampleAt(s, p, []float64{4}, []float64{7})
	advance(s, 10)

	// THEN the pending slice was dropped and slicing restarted at 0
	assert.Equal(t, []float64{7}, p.Values())
	assert.Equal(t, []float64{10}, p.Dates())
}

func TestTimeSlice_InvalidDuration(t *testing.T) {
	s := newTestSimulator(t)
	_, err := NewTimeSliceAverage(s, 0)
	assert.True(t, errors.Is(err, ErrInvalidSlice))
	_, err = NewTimeSliceThroughput(s, -1)
	assert.True(t, errors.Is(err, ErrInvalidSlice))
}

func TestTimeSliceThroughput_OutlivesCapacity(t *testing.T) {
	// GIVEN a 1-unit throughput slice and a campaign far longer than the
	// retained history
	s := newTestSimulator(t)
	p, err := NewTimeSliceThroughput(s, 1)
	require.NoError(t, err)
	advance(s, 40000)

	// WHEN a sample closes 40000 empty slices, then its own slice closes
	testutil.ExpectNoFatal(t, func() {
		p.Sample(1)
		advance(s, 40001)
	})

	// THEN every slice counts in the statistics
	assert.Equal(t, 40001, p.Count())
	testutil.AssertFloat64Equal(t, "mean", 1.0/40001, p.Mean(), 1e-12)
	assert.Equal(t, 1.0, p.Max())
	assert.Equal(t, 1.0, p.Throughput())
	// AND only the most recent slices are retained
	values := p.Values()
	require.Len(t, values, DefaultCapacity)
	assert.Equal(t, 1.0, values[len(values)-1])
	assert.Equal(t, float64(40001-DefaultCapacity+1), p.Dates()[0])
}

func TestTimeSliceAverage_RetainsMostRecentSlices(t *testing.T) {
	s := newTestSimulator(t)
	p, err := NewTimeSliceAverage(s, 1, WithCapacity(2))
	require.NoError(t, err)

	sampleAt(s, p, []float64{0.5, 1.5, 2.5}, []float64{2, 4, 6})
	advance(s, 3)

	assert.Equal(t, []float64{4, 6}, p.Values())
	assert.Equal(t, 3, p.Count())
	assert.Equal(t, 4.0, p.Mean())
	assert.Equal(t, 2.0, p.Min())
}
