package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod is returned when a periodic event is built with a
// non-positive period.
var ErrInvalidPeriod = errors.New("period must be > 0")

// Action is the work an event performs when it fires. Implementations carry
// whatever context they need; the payload is the value the event was built
// with.
type Action interface {
	Run(payload any)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(payload any)

// Run calls f(payload).
func (f ActionFunc) Run(payload any) {
	f(payload)
}

// EventKind tells one-shot events from periodic ones.
type EventKind int

const (
	// OneShot events are discarded after firing.
	OneShot EventKind = iota
	// Periodic events are reinserted at date+period after each firing.
	Periodic
)

func (k EventKind) String() string {
	switch k {
	case OneShot:
		return "one-shot"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is an (action, payload, date) triple executed at its due date.
// Once inserted, an event belongs to the Simulator and must not be
// mutated or inserted again by the caller.
type Event struct {
	kind    EventKind
	date    float64
	period  float64
	payload any
	action  Action

	// first and occurrence derive periodic due dates as first+k*period so
	// that repeated rescheduling accumulates no rounding drift.
	first      float64
	occurrence int64

	// seq is assigned on insertion and breaks ties between equal dates.
	seq    uint64
	queued bool
}

// NewEvent builds a detached one-shot event. It is not scheduled until
// passed to Simulator.Insert.
func NewEvent(action Action, payload any, date float64) *Event {
	return &Event{
		kind:    OneShot,
		date:    date,
		payload: payload,
		action:  action,
	}
}

// NewPeriodicEvent builds a detached periodic event whose first occurrence
// is at firstDate. The k-th occurrence is due at firstDate + k*period.
func NewPeriodicEvent(action Action, payload any, firstDate, period float64) (*Event, error) {
	if !(period > 0) {
		return nil, fmt.Errorf("creating periodic event at %g with period %g: %w", firstDate, period, ErrInvalidPeriod)
	}
	return &Event{
		kind:    Periodic,
		date:    firstDate,
		first:   firstDate,
		period:  period,
		payload: payload,
		action:  action,
	}, nil
}

// Date returns the event's due date.
func (e *Event) Date() float64 {
	return e.date
}

// Kind returns whether the event is one-shot or periodic.
func (e *Event) Kind() EventKind {
	return e.kind
}

// Period returns the recurrence period, 0 for one-shot events.
func (e *Event) Period() float64 {
	return e.period
}

// Payload returns the value handed to the action when the event fires.
func (e *Event) Payload() any {
	return e.payload
}

// Seq returns the insertion sequence number. It is only meaningful once the
// event has been inserted.
func (e *Event) Seq() uint64 {
	return e.seq
}

func (e *Event) fire() {
	if e.action != nil {
		e.action.Run(e.payload)
	}
}
