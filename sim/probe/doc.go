// Package probe implements the statistics side of the simulator: online
// collectors ("probes") that are sampled from event actions and queried
// for derived statistics.
//
// # Variants
//
// Every probe shares one sampling interface and is built by a
// variant-specific constructor:
//   - NewExhaustive: keeps every (date, value) sample up to a fixed capacity
//   - NewMean: running sum, sum of squares and count only
//   - NewTimeSliceAverage / NewTimeSliceThroughput: one value per elapsed
//     slice of simulated time
//   - NewPeriodic: snapshots the last observed value on its own timer
//   - NewEMA: exponential moving average
//   - NewSlidingWindow: statistics over the last W samples
//   - NewHistogram: counts per bucket over [min, max)
//
// # Graph
//
// Chain forwards every raw sample from one probe to another. AddSampleProbe,
// AddMeanProbe and AddThroughputProbe make a probe observe a derived value of
// another each time the source is sampled. Edges are forward-only and the
// graph is kept acyclic: creating an edge that would close a cycle is fatal.
//
// # Lifecycle
//
// Constructors register the probe with the simulator's reset registry, so
// Simulator.Reset and ResetAll clear every non-persistent probe. All methods
// are safe on a nil *Probe, which makes instrumentation optional at call
// sites. Probes are not safe for concurrent use; they are sampled from the
// simulator's goroutine.
package probe
