package random

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMean(d Distribution, n int) float64 {
	rng := rand.New(rand.NewSource(42))
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample(rng)
	}
	return sum / float64(n)
}

func TestExponential_MeanMatchesRate(t *testing.T) {
	d, err := NewExponential(4)
	require.NoError(t, err)

	mean := sampleMean(d, 20000)

	assert.InEpsilon(t, 0.25, mean, 0.05)
}

func TestExponential_SetRate(t *testing.T) {
	d, err := NewExponential(1)
	require.NoError(t, err)

	require.NoError(t, d.SetRate(10))
	assert.Equal(t, 10.0, d.Rate())
	assert.InEpsilon(t, 0.1, sampleMean(d, 20000), 0.05)

	assert.True(t, errors.Is(d.SetRate(0), ErrInvalidRate))
	assert.Equal(t, 10.0, d.Rate())
}

func TestDiscrete_FrequenciesFollowWeights(t *testing.T) {
	// GIVEN values 1, 2, 3 weighted 1:0:3
	d, err := NewDiscrete([]float64{1, 2, 3}, []float64{1, 0, 3})
	require.NoError(t, err)

	// WHEN sampled many times
	rng := rand.New(rand.NewSource(7))
	counts := map[float64]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[d.Sample(rng)]++
	}

	// THEN the zero-weight value never appears and the others match
	assert.Zero(t, counts[2])
	assert.InDelta(t, 0.25, float64(counts[1])/n, 0.02)
	assert.InDelta(t, 0.75, float64(counts[3])/n, 0.02)
}

func TestDiscrete_SingleValueIsConstant(t *testing.T) {
	d, err := NewDiscrete([]float64{2.5}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 2.5, sampleMean(d, 10))
}

func TestConstructors_RejectInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		ctor func() error
		want error
	}{
		{"exponential zero rate", func() error { _, err := NewExponential(0); return err }, ErrInvalidRate},
		{"exponential infinite rate", func() error { _, err := NewExponential(math.Inf(1)); return err }, ErrInvalidRate},
		{"negative constant", func() error { _, err := NewConstant(-1); return err }, ErrInvalidDistribution},
		{"reversed uniform", func() error { _, err := NewUniform(2, 1); return err }, ErrInvalidDistribution},
		{"discrete length mismatch", func() error { _, err := NewDiscrete([]float64{1}, []float64{1, 2}); return err }, ErrInvalidDistribution},
		{"discrete zero weights", func() error { _, err := NewDiscrete([]float64{1}, []float64{0}); return err }, ErrInvalidDistribution},
		{"gamma zero cv", func() error { _, err := NewGamma(1, 0); return err }, ErrInvalidDistribution},
		{"gamma zero rate", func() error { _, err := NewGamma(0, 1); return err }, ErrInvalidRate},
		{"gamma NaN rate", func() error { _, err := NewGamma(math.NaN(), 1); return err }, ErrInvalidRate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.ctor(), tc.want))
		})
	}
}

func TestUniform_StaysInRange(t *testing.T) {
	d, err := NewUniform(1, 3)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := d.Sample(rng)
		require.GreaterOrEqual(t, v, 1.0)
		require.Less(t, v, 3.0)
	}
	assert.InDelta(t, 2.0, sampleMean(d, 20000), 0.05)
}

func TestGamma_MeanMatchesRate(t *testing.T) {
	for _, cv := range []float64{0.5, 1, 2} {
		d, err := NewGamma(2, cv)
		require.NoError(t, err)
		assert.InEpsilon(t, 0.5, sampleMean(d, 50000), 0.06, "cv=%v", cv)
	}
}
