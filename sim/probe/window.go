package probe

import (
	"fmt"
	"math"

	"github.com/ndes-sim/ndes/sim"
)

// window is a circular buffer of the last width samples.
type window struct {
	width  int
	values []float64
	dates  []float64
	head   int // index of the oldest sample
	size   int
}

// NewSlidingWindow creates a probe whose statistics cover only the last
// width samples.
func NewSlidingWindow(s *sim.Simulator, width int, opts ...Option) (*Probe, error) {
	if width < 1 {
		return nil, fmt.Errorf("creating sliding window probe of width %d: %w", width, ErrInvalidWindow)
	}
	w := &window{
		width:  width,
		values: make([]float64, width),
		dates:  make([]float64, width),
	}
	return newProbe(s, KindSlidingWindow, w, newConfig(opts)), nil
}

func (w *window) record(now, v float64) error {
	if w.size < w.width {
		i := (w.head + w.size) % w.width
		w.values[i], w.dates[i] = v, now
		w.size++
		return nil
	}
	w.values[w.head], w.dates[w.head] = v, now
	w.head = (w.head + 1) % w.width
	return nil
}

// ordered returns the window content from oldest to newest.
func (w *window) ordered() (dates, values []float64) {
	dates = make([]float64, 0, w.size)
	values = make([]float64, 0, w.size)
	for k := 0; k < w.size; k++ {
		i := (w.head + k) % w.width
		dates = append(dates, w.dates[i])
		values = append(values, w.values[i])
	}
	return dates, values
}

func (w *window) stats() accumulator {
	_, values := w.ordered()
	return accumulate(values)
}

func (w *window) count() int { return w.size }

func (w *window) mean() float64 {
	a := w.stats()
	return a.mean()
}

func (w *window) variance() float64 {
	a := w.stats()
	return a.variance()
}

func (w *window) min() float64 {
	a := w.stats()
	return a.min()
}

func (w *window) max() float64 {
	a := w.stats()
	return a.max()
}

// throughput is the size received after the oldest sample in the window
// divided by the time elapsed since that oldest sample.
func (w *window) throughput(now float64) float64 {
	if w.size == 0 {
		return math.NaN()
	}
	elapsed := now - w.dates[w.head]
	if elapsed <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for k := 1; k < w.size; k++ {
		sum += w.values[(w.head+k)%w.width]
	}
	return sum / elapsed
}

func (w *window) clear() {
	w.head, w.size = 0, 0
}

func (w *window) sequence() *series {
	dates, values := w.ordered()
	s := newSeries(w.width)
	s.dates, s.values = dates, values
	s.acc = accumulate(values)
	if len(values) > 0 {
		s.firstDate, s.firstValue = dates[0], values[0]
	}
	return &s
}
