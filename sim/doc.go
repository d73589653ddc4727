// Package sim provides the discrete-event simulation kernel.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: one-shot and periodic events and the Action interface
//   - event_queue.go: the pending-event heap ordered by (date, insertion sequence)
//   - simulator.go: the clock, run control and the campaign lifecycle
//   - reset.go: the registry of per-campaign reset callbacks
//
// # Architecture
//
// A Simulator is the single simulation context of a process. Events fire in
// non-decreasing date order, ties in insertion order; a periodic event's
// k-th occurrence is due at exactly first + k·period. Reset drops every
// pending event, rewinds the clock to 0 and invokes the reset registry, so
// that stateful collaborators restart each campaign from a clean state.
//
// Sub-packages build on the kernel:
//   - sim/probe/: online statistics collectors and their observer graph
//   - sim/random/: interval distributions and replayable generators
//   - sim/dategen/: arrival dates from a random generator
//   - sim/dump/: probe export (gnuplot text, SQLite, Prometheus textfile)
//   - sim/trace/: event trace recording
//
// # Failure Model
//
// Malformed construction parameters are returned as errors. Violations
// detected while the simulation runs (inserting an event in the past,
// overflowing an exhaustive probe, re-entering the run loop) are fatal:
// they are logged through Fatalf with the failing operation and the process
// exits through the logger's exit function.
package sim
