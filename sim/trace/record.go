// Package trace provides event-trace recording for simulation campaigns.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures a single event firing.
type EventRecord struct {
	Campaign int
	Seq      uint64
	Date     float64
	Periodic bool
}

// ResetRecord captures a simulator reset between campaigns.
type ResetRecord struct {
	Campaign int // campaign number started by the reset
	Dropped  int // pending events discarded
}
