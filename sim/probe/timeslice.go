package probe

import (
	"fmt"
	"math"

	"github.com/ndes-sim/ndes/sim"
)

// timeSlice accumulates samples into consecutive slices of simulated time
// and records one value per completed slice: the slice average, or the
// slice sum divided by its duration in throughput mode. Only the most recent
// slices are retained; the statistics cover all of them.
type timeSlice struct {
	throughputMode bool
	duration       float64

	start float64 // start of slice 0
	index int64   // slice currently accumulating

	accSum float64
	accN   int

	lastSliceSum float64
	hasSlice     bool

	history series
	emit    func(v float64)
}

// NewTimeSliceAverage creates a probe recording the average of the samples
// received during each slice of the given duration. Empty slices record
// nothing.
func NewTimeSliceAverage(s *sim.Simulator, duration float64, opts ...Option) (*Probe, error) {
	return newTimeSlice(s, KindTimeSliceAverage, duration, opts)
}

// NewTimeSliceThroughput creates a probe recording, for each slice of the
// given duration, the sum of the samples received divided by the duration.
// Empty slices record 0.
func NewTimeSliceThroughput(s *sim.Simulator, duration float64, opts ...Option) (*Probe, error) {
	return newTimeSlice(s, KindTimeSliceThroughput, duration, opts)
}

func newTimeSlice(s *sim.Simulator, kind Kind, duration float64, opts []Option) (*Probe, error) {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("creating %s probe with slice %g: %w", kind, duration, ErrInvalidSlice)
	}
	cfg := newConfig(opts)
	ts := &timeSlice{
		throughputMode: kind == KindTimeSliceThroughput,
		duration:       duration,
		start:          s.Now(),
		history:        newRollingSeries(cfg.capacity),
	}
	p := newProbe(s, kind, ts, cfg)
	ts.emit = p.forwardOutput
	return p, nil
}

func (t *timeSlice) sliceEnd() float64 {
	return t.start + float64(t.index+1)*t.duration
}

// roll closes every slice that ended at or before now.
func (t *timeSlice) roll(now float64) error {
	for now >= t.sliceEnd() {
		end := t.sliceEnd()
		v, ok := t.sliceValue()
		t.lastSliceSum = t.accSum
		t.hasSlice = true
		t.accSum, t.accN = 0, 0
		t.index++

		if ok {
			if err := t.history.append(end, v); err != nil {
				return err
			}
			if t.emit != nil {
				t.emit(v)
			}
		}

		if !t.throughputMode {
			// the remaining slices up to now are empty and record nothing
			if k := int64(math.Floor((now - t.start) / t.duration)); k > t.index {
				t.index = k
				t.lastSliceSum = 0
			}
		}
	}
	return nil
}

func (t *timeSlice) sliceValue() (float64, bool) {
	if t.throughputMode {
		return t.accSum / t.duration, true
	}
	if t.accN == 0 {
		return 0, false
	}
	return t.accSum / float64(t.accN), true
}

func (t *timeSlice) record(now, v float64) error {
	if err := t.roll(now); err != nil {
		return err
	}
	t.accSum += v
	t.accN++
	return nil
}

func (t *timeSlice) count() int        { return t.history.acc.count() }
func (t *timeSlice) mean() float64     { return t.history.acc.mean() }
func (t *timeSlice) variance() float64 { return t.history.acc.variance() }
func (t *timeSlice) min() float64      { return t.history.acc.min() }
func (t *timeSlice) max() float64      { return t.history.acc.max() }

// throughput is the last completed slice's sum over its duration, 0 before
// the first slice completes.
func (t *timeSlice) throughput(float64) float64 {
	if !t.hasSlice {
		return 0
	}
	return t.lastSliceSum / t.duration
}

func (t *timeSlice) clear() {
	t.history.clear()
	t.lastSliceSum = 0
	t.hasSlice = false
	t.accSum, t.accN = 0, 0
}

// realign restarts slicing at now, dropping the partial slice.
func (t *timeSlice) realign(now float64) {
	t.start = now
	t.index = 0
	t.accSum, t.accN = 0, 0
}

func (t *timeSlice) sequence() *series { return &t.history }
