package probe

import (
	"fmt"
	"math"

	"github.com/ndes-sim/ndes/sim"
)

type histogram struct {
	from, to float64
	buckets  []float64
	accumulator
}

// NewHistogram creates a probe counting samples in nbBuckets equal-width
// buckets over [min, max). Out-of-range samples land in the first or last
// bucket.
func NewHistogram(s *sim.Simulator, min, max float64, nbBuckets int, opts ...Option) (*Probe, error) {
	if !(max > min) || nbBuckets <= 0 || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("creating histogram over [%g,%g) with %d buckets: %w", min, max, nbBuckets, ErrInvalidBounds)
	}
	h := &histogram{
		from:    min,
		to:      max,
		buckets: make([]float64, nbBuckets),
	}
	return newProbe(s, KindHistogram, h, newConfig(opts)), nil
}

// bucket returns clamp(floor((v-min)/(max-min)*n), 0, n-1).
func (h *histogram) bucket(v float64) int {
	n := len(h.buckets)
	x := math.Floor((v - h.from) / (h.to - h.from) * float64(n))
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > float64(n-1):
		return n - 1
	default:
		return int(x)
	}
}

func (h *histogram) record(_, v float64) error {
	h.buckets[h.bucket(v)]++
	h.add(v)
	return nil
}

func (h *histogram) throughput(float64) float64 { return math.NaN() }

func (h *histogram) normalize() {
	total := 0.0
	for _, c := range h.buckets {
		total += c
	}
	if total == 0 {
		return
	}
	for i := range h.buckets {
		h.buckets[i] /= total
	}
}

func (h *histogram) edge(i int) float64 {
	return h.from + float64(i)*(h.to-h.from)/float64(len(h.buckets))
}

func (h *histogram) clear() {
	for i := range h.buckets {
		h.buckets[i] = 0
	}
	h.accumulator.clear()
}

func (p *Probe) histogram() (*histogram, bool) {
	if p == nil {
		return nil, false
	}
	h, ok := p.agg.(*histogram)
	return h, ok
}

// BucketCount returns the number of buckets of a histogram probe, 0 for
// other variants.
func (p *Probe) BucketCount() int {
	h, ok := p.histogram()
	if !ok {
		return 0
	}
	return len(h.buckets)
}

// BucketValue returns the count (or the normalized share) of bucket n.
func (p *Probe) BucketValue(n int) float64 {
	h, ok := p.histogram()
	if !ok || n < 0 || n >= len(h.buckets) {
		return math.NaN()
	}
	return h.buckets[n]
}

// BucketEdge returns the lower edge of bucket n.
func (p *Probe) BucketEdge(n int) float64 {
	h, ok := p.histogram()
	if !ok || n < 0 || n >= len(h.buckets) {
		return math.NaN()
	}
	return h.edge(n)
}

// Bounds returns the [min, max) range a histogram probe was built with.
func (p *Probe) Bounds() (min, max float64) {
	h, ok := p.histogram()
	if !ok {
		return math.NaN(), math.NaN()
	}
	return h.from, h.to
}

// Normalize rescales the bucket counts of a histogram probe so that they
// sum to 1. It does nothing on an empty histogram or another variant.
func (p *Probe) Normalize() {
	if h, ok := p.histogram(); ok {
		h.normalize()
	}
}
