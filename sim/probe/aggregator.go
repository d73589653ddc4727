package probe

// aggregator is the per-variant half of a Probe. Each variant implements
// the same set of operations; Probe dispatches to it.
type aggregator interface {
	// record folds v, sampled at date now, into the aggregate.
	record(now, v float64) error
	count() int
	mean() float64
	variance() float64
	min() float64
	max() float64
	throughput(now float64) float64
	clear()
}

// sequenced is implemented by variants that retain a dated sequence of
// values (their own samples, snapshots or completed slices).
type sequenced interface {
	sequence() *series
}

// roller is implemented by variants whose state depends on the clock
// advancing past a boundary without any sample arriving.
type roller interface {
	roll(now float64) error
	realign(now float64)
}
