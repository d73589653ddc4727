package probe

import "math"

// accumulator keeps O(1) moments of a stream of values.
type accumulator struct {
	n     int
	sum   float64
	sumSq float64
	lo    float64
	hi    float64
}

func (a *accumulator) add(v float64) {
	if a.n == 0 || v < a.lo {
		a.lo = v
	}
	if a.n == 0 || v > a.hi {
		a.hi = v
	}
	a.n++
	a.sum += v
	a.sumSq += v * v
}

func (a *accumulator) count() int {
	return a.n
}

func (a *accumulator) mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.n)
}

// variance is the biased empirical estimator sumSq/n - mean².
func (a *accumulator) variance() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	m := a.mean()
	v := a.sumSq/float64(a.n) - m*m
	if v < 0 {
		// rounding on near-constant streams
		return 0
	}
	return v
}

func (a *accumulator) min() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.lo
}

func (a *accumulator) max() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.hi
}

func (a *accumulator) clear() {
	*a = accumulator{}
}

func accumulate(values []float64) accumulator {
	var a accumulator
	for _, v := range values {
		a.add(v)
	}
	return a
}
