package random

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	// ErrInvalidRate is returned for a rate that is not finite and > 0.
	ErrInvalidRate = errors.New("rate must be finite and > 0")
	// ErrInvalidDistribution is returned for malformed distribution
	// parameters, or for SetRate on a distribution without a rate.
	ErrInvalidDistribution = errors.New("invalid distribution")
)

// Distribution draws non-negative intervals.
type Distribution interface {
	// Sample returns one draw using rng as the only source of randomness.
	Sample(rng *rand.Rand) float64
}

// RateSetter is implemented by distributions parameterized by a rate.
type RateSetter interface {
	SetRate(rate float64) error
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0)
}

// Exponential draws exponentially distributed values with mean 1/rate.
type Exponential struct {
	rate float64
}

// NewExponential creates an exponential distribution of the given rate.
func NewExponential(rate float64) (*Exponential, error) {
	if !validRate(rate) {
		return nil, fmt.Errorf("exponential with rate %g: %w", rate, ErrInvalidRate)
	}
	return &Exponential{rate: rate}, nil
}

func (e *Exponential) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / e.rate
}

// SetRate changes the rate for subsequent draws.
func (e *Exponential) SetRate(rate float64) error {
	if !validRate(rate) {
		return fmt.Errorf("exponential with rate %g: %w", rate, ErrInvalidRate)
	}
	e.rate = rate
	return nil
}

// Rate returns the current rate.
func (e *Exponential) Rate() float64 { return e.rate }

// Constant always returns the same value.
type Constant struct {
	value float64
}

// NewConstant creates a degenerate distribution at value.
func NewConstant(value float64) (*Constant, error) {
	if !(value >= 0) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("constant %g: %w", value, ErrInvalidDistribution)
	}
	return &Constant{value: value}, nil
}

func (c *Constant) Sample(_ *rand.Rand) float64 { return c.value }

// SetRate sets the value to 1/rate.
func (c *Constant) SetRate(rate float64) error {
	if !validRate(rate) {
		return fmt.Errorf("constant with rate %g: %w", rate, ErrInvalidRate)
	}
	c.value = 1 / rate
	return nil
}

// Uniform draws uniformly in [lo, hi).
type Uniform struct {
	lo, hi float64
}

// NewUniform creates a uniform distribution over [lo, hi).
func NewUniform(lo, hi float64) (*Uniform, error) {
	if !(lo >= 0 && hi >= lo) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("uniform over [%g,%g): %w", lo, hi, ErrInvalidDistribution)
	}
	return &Uniform{lo: lo, hi: hi}, nil
}

func (u *Uniform) Sample(rng *rand.Rand) float64 {
	return u.lo + rng.Float64()*(u.hi-u.lo)
}

// Discrete draws from a finite set of values with given weights, by inverse
// CDF over the normalized cumulative weights.
type Discrete struct {
	values []float64
	cdf    []float64
}

// NewDiscrete creates a discrete-weighted distribution. Weights need not
// sum to 1; values with a zero weight are never drawn.
func NewDiscrete(values, weights []float64) (*Discrete, error) {
	if len(values) == 0 || len(values) != len(weights) {
		return nil, fmt.Errorf("discrete with %d values and %d weights: %w", len(values), len(weights), ErrInvalidDistribution)
	}
	total := 0.0
	for i, w := range weights {
		if !(w >= 0) || math.IsInf(w, 0) || !(values[i] >= 0) {
			return nil, fmt.Errorf("discrete value %g with weight %g: %w", values[i], w, ErrInvalidDistribution)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("discrete with zero total weight: %w", ErrInvalidDistribution)
	}

	d := &Discrete{
		values: make([]float64, 0, len(values)),
		cdf:    make([]float64, 0, len(values)),
	}
	cumulative := 0.0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w / total
		d.values = append(d.values, values[i])
		d.cdf = append(d.cdf, cumulative)
	}
	d.cdf[len(d.cdf)-1] = 1.0
	return d, nil
}

func (d *Discrete) Sample(rng *rand.Rand) float64 {
	if len(d.values) == 1 {
		return d.values[0]
	}
	u := rng.Float64()
	idx := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u })
	if idx >= len(d.values) {
		idx = len(d.values) - 1
	}
	return d.values[idx]
}

// Gamma draws Gamma-distributed values with a given mean and coefficient of
// variation; CV > 1 gives bursty intervals.
type Gamma struct {
	shape float64 // 1/CV²
	scale float64 // mean·CV²
	cv    float64
}

// NewGamma creates a Gamma distribution with mean 1/rate and the given CV.
func NewGamma(rate, cv float64) (*Gamma, error) {
	if !validRate(rate) {
		return nil, fmt.Errorf("gamma with rate %g: %w", rate, ErrInvalidRate)
	}
	if !(cv > 0) || math.IsInf(cv, 0) {
		return nil, fmt.Errorf("gamma with cv %g: %w", cv, ErrInvalidDistribution)
	}
	g := &Gamma{cv: cv}
	if err := g.SetRate(rate); err != nil {
		return nil, err
	}
	return g, nil
}

// SetRate keeps the CV and sets the mean to 1/rate.
func (g *Gamma) SetRate(rate float64) error {
	if !validRate(rate) {
		return fmt.Errorf("gamma with rate %g: %w", rate, ErrInvalidRate)
	}
	g.shape = 1 / (g.cv * g.cv)
	g.scale = g.cv * g.cv / rate
	return nil
}

func (g *Gamma) Sample(rng *rand.Rand) float64 {
	return gammaRand(rng, g.shape, g.scale)
}

// gammaRand samples Gamma(shape, scale) with Marsaglia-Tsang for shape >= 1
// and Gamma(a) = Gamma(a+1)·U^(1/a) below.
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}
