package probe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// z975 is the 0.975 quantile of the standard normal distribution.
const z975 = 1.96

const (
	ciBlocks     = 10
	ciMinSamples = 2 * ciBlocks
)

// Count returns the number of values the probe aggregates: samples for
// most variants, completed slices or snapshots for time-slice and periodic
// probes, samples currently in the window for a sliding window.
func (p *Probe) Count() int {
	if p == nil {
		return 0
	}
	p.sync()
	return p.agg.count()
}

// Mean returns the mean of the aggregated values, NaN when there are none.
func (p *Probe) Mean() float64 {
	if p == nil {
		return math.NaN()
	}
	p.sync()
	return p.agg.mean()
}

// Variance returns the biased empirical variance sum²/n - mean².
func (p *Probe) Variance() float64 {
	if p == nil {
		return math.NaN()
	}
	p.sync()
	return p.agg.variance()
}

// StdDev returns the square root of Variance.
func (p *Probe) StdDev() float64 {
	return math.Sqrt(p.Variance())
}

// CoefficientOfVariation returns StdDev/Mean, NaN when the mean is 0.
func (p *Probe) CoefficientOfVariation() float64 {
	m := p.Mean()
	if m == 0 {
		return math.NaN()
	}
	return p.StdDev() / m
}

// Min returns the smallest aggregated value.
func (p *Probe) Min() float64 {
	if p == nil {
		return math.NaN()
	}
	p.sync()
	return p.agg.min()
}

// Max returns the largest aggregated value.
func (p *Probe) Max() float64 {
	if p == nil {
		return math.NaN()
	}
	p.sync()
	return p.agg.max()
}

// Throughput returns the value received per unit of simulated time. See
// each constructor for the observation window it uses.
func (p *Probe) Throughput() float64 {
	if p == nil {
		return math.NaN()
	}
	p.sync()
	return p.agg.throughput(p.sim.Now())
}

// ConfidenceInterval returns the half-width of the 95% confidence interval
// of the mean under the normal approximation: 1.96·σ/√n.
func (p *Probe) ConfidenceInterval() float64 {
	n := p.Count()
	if n == 0 {
		return math.NaN()
	}
	return z975 * p.StdDev() / math.Sqrt(float64(n))
}

// ExperimentalBlockConfidenceInterval returns a 95% half-width computed by
// batch means: the retained sequence is cut into 10 contiguous blocks of
// floor(n/10) values (the remainder is dropped) and the Student-t interval
// of the block means is returned. It needs at least 20 retained values and
// a probe that retains its sequence; it returns NaN otherwise.
//
// The estimator assumes block means are roughly independent, which
// autocorrelated outputs with short runs do not satisfy.
func (p *Probe) ExperimentalBlockConfidenceInterval() float64 {
	values := p.Values()
	if len(values) < ciMinSamples {
		return math.NaN()
	}
	size := len(values) / ciBlocks
	means := make([]float64, ciBlocks)
	for b := range means {
		means[b] = stat.Mean(values[b*size:(b+1)*size], nil)
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: ciBlocks - 1}
	return t.Quantile(0.975) * math.Sqrt(stat.Variance(means, nil)/ciBlocks)
}

// Percentile returns the q-th percentile (q in [0,100]) of the retained
// values by linear interpolation, NaN when nothing is retained.
func (p *Probe) Percentile(q float64) float64 {
	values := p.Values()
	if len(values) == 0 || !(q >= 0 && q <= 100) {
		return math.NaN()
	}
	sort.Float64s(values)
	return stat.Quantile(q/100, stat.LinInterp, values, nil)
}

// IAMean returns the mean gap between successive sample dates.
func (p *Probe) IAMean() float64 {
	if p == nil {
		return math.NaN()
	}
	return p.ia.gaps.mean()
}

// IAVariance returns the biased variance of the gaps between successive
// sample dates.
func (p *Probe) IAVariance() float64 {
	if p == nil {
		return math.NaN()
	}
	return p.ia.gaps.variance()
}

// IAStdDev returns the square root of IAVariance.
func (p *Probe) IAStdDev() float64 {
	return math.Sqrt(p.IAVariance())
}

// IACount returns the number of inter-arrival gaps observed.
func (p *Probe) IACount() int {
	if p == nil {
		return 0
	}
	return p.ia.gaps.count()
}

func (p *Probe) retained() (*series, bool) {
	if p == nil {
		return nil, false
	}
	sq, ok := p.agg.(sequenced)
	if !ok {
		return nil, false
	}
	p.sync()
	return sq.sequence(), true
}

// Values returns a copy of the retained values, oldest first: samples of an
// exhaustive probe or sliding window, snapshots of a periodic probe,
// completed slices of a time-slice probe. Other variants return nil.
func (p *Probe) Values() []float64 {
	s, ok := p.retained()
	if !ok {
		return nil
	}
	_, values := s.snapshot()
	return values
}

// Dates returns a copy of the dates matching Values.
func (p *Probe) Dates() []float64 {
	s, ok := p.retained()
	if !ok {
		return nil
	}
	dates, _ := s.snapshot()
	return dates
}

// SampleAt returns the n-th retained value, NaN when out of range.
func (p *Probe) SampleAt(n int) float64 {
	s, ok := p.retained()
	if !ok {
		return math.NaN()
	}
	return s.at(n)
}
