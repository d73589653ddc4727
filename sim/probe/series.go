package probe

import "math"

// DefaultCapacity bounds the number of samples an exhaustive probe keeps.
const DefaultCapacity = 32768

// series is a bounded append-only sequence of dated values. A rolling
// series drops its oldest value instead of failing when full; acc and the
// first sample still cover every value ever appended.
type series struct {
	dates    []float64
	values   []float64
	capacity int
	rolling  bool
	acc      accumulator

	firstDate  float64
	firstValue float64
}

func newSeries(capacity int) series {
	return series{
		dates:    make([]float64, 0),
		values:   make([]float64, 0),
		capacity: capacity,
	}
}

func newRollingSeries(capacity int) series {
	s := newSeries(capacity)
	s.rolling = true
	return s
}

func (s *series) append(date, v float64) error {
	if len(s.values) >= s.capacity {
		if !s.rolling {
			return errCapacity
		}
		s.dates = s.dates[1:]
		s.values = s.values[1:]
	}
	if s.acc.n == 0 {
		s.firstDate, s.firstValue = date, v
	}
	s.dates = append(s.dates, date)
	s.values = append(s.values, v)
	s.acc.add(v)
	return nil
}

func (s *series) len() int {
	return len(s.values)
}

func (s *series) at(n int) float64 {
	if n < 0 || n >= len(s.values) {
		return math.NaN()
	}
	return s.values[n]
}

// throughput is the cumulative value received after the first sample divided
// by the time elapsed since that first sample.
func (s *series) throughput(now float64) float64 {
	if s.acc.n == 0 {
		return math.NaN()
	}
	elapsed := now - s.firstDate
	if elapsed <= 0 {
		return math.NaN()
	}
	return (s.acc.sum - s.firstValue) / elapsed
}

func (s *series) clear() {
	s.dates = s.dates[:0]
	s.values = s.values[:0]
	s.acc.clear()
	s.firstDate, s.firstValue = 0, 0
}

func (s *series) snapshot() (dates, values []float64) {
	dates = make([]float64, len(s.dates))
	values = make([]float64, len(s.values))
	copy(dates, s.dates)
	copy(values, s.values)
	return dates, values
}
