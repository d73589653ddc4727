package sim

import "container/heap"

// EventQueue is a priority queue of pending events with deterministic
// ordering: due date first, then insertion sequence.
type EventQueue struct {
	events []*Event
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]*Event, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface.
// Order by: date → insertion sequence
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.date != ej.date {
		return ei.date < ej.date
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(*Event))
}

// Pop implements heap.Interface
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the queue. The event must already carry its
// sequence number.
func (q *EventQueue) Schedule(e *Event) {
	heap.Push(q, e)
}

// PopNext removes and returns the earliest event, or nil when empty.
func (q *EventQueue) PopNext() *Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*Event)
}

// Peek returns the earliest event without removing it, or nil when empty.
func (q *EventQueue) Peek() *Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}

// Clear drops every pending event.
func (q *EventQueue) Clear() {
	for i := range q.events {
		q.events[i] = nil
	}
	q.events = q.events[:0]
}
