package sim

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ErrSimulatorExists is returned by New while another Simulator is still
// open in the process.
var ErrSimulatorExists = errors.New("a simulator is already active in this process")

// active guards the one-simulator-per-process invariant.
var active atomic.Bool

// Stats counts scheduler activity for the current campaign.
type Stats struct {
	Campaign   int
	Inserted   uint64
	Fired      uint64
	Reinserted uint64 // periodic occurrences scheduled after a firing
}

// Option configures a Simulator at construction.
type Option func(*Simulator)

// WithSeed sets the master seed of the simulator's partitioned RNG.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = NewPartitionedRNG(NewSimulationKey(seed))
	}
}

// WithHook registers a hook at construction.
func WithHook(h Hook) Option {
	return func(s *Simulator) {
		s.hooks = append(s.hooks, h)
	}
}

// Simulator is the simulation context: it owns the clock, the pending
// event queue and the reset registry. Exactly one Simulator may be open per
// process; it must be driven from a single goroutine.
type Simulator struct {
	clock   float64
	queue   *EventQueue
	nextSeq uint64

	resets *ResetRegistry
	rng    *PartitionedRNG
	hooks  []Hook
	stats  Stats

	running bool
	closed  bool
}

// New creates the process's simulator. It fails with ErrSimulatorExists
// until the previous simulator has been closed.
func New(opts ...Option) (*Simulator, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrSimulatorExists
	}
	s := &Simulator{
		queue:  NewEventQueue(),
		resets: NewResetRegistry(),
		rng:    NewPartitionedRNG(NewSimulationKey(0)),
		hooks:  make([]Hook, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the process-wide simulator slot. It is safe to call more
// than once.
func (s *Simulator) Close() {
	if s.closed {
		return
	}
	s.closed = true
	active.Store(false)
}

// Now returns the current simulated time.
func (s *Simulator) Now() float64 {
	return s.clock
}

// RNG returns the simulator's partitioned random source.
func (s *Simulator) RNG() *PartitionedRNG {
	return s.rng
}

// Resets returns the reset registry.
func (s *Simulator) Resets() *ResetRegistry {
	return s.resets
}

// RegisterReset adds a reset callback for handle. See ResetRegistry.Register.
func (s *Simulator) RegisterReset(handle any, fn ResetFunc) {
	s.resets.Register(handle, fn)
}

// UnregisterReset removes handle from the reset registry.
func (s *Simulator) UnregisterReset(handle any) bool {
	return s.resets.Unregister(handle)
}

// Pending returns the number of scheduled events.
func (s *Simulator) Pending() int {
	return s.queue.Len()
}

// Stats returns the activity counters of the current campaign.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Insert schedules ev at its due date. Events with equal dates fire in
// insertion order. Inserting an event dated before the current time, or an
// event that is already scheduled, is fatal.
func (s *Simulator) Insert(ev *Event) {
	if ev == nil {
		Fatalf("Insert", "nil event")
		return
	}
	if ev.queued {
		Fatalf("Insert", "event dated %g is already scheduled", ev.date)
		return
	}
	if math.IsNaN(ev.date) || ev.date < s.clock {
		Fatalf("Insert", "event dated %g is earlier than current time %g", ev.date, s.clock)
		return
	}
	ev.seq = s.nextSeq
	s.nextSeq++
	ev.queued = true
	s.queue.Schedule(ev)
	s.stats.Inserted++
}

// Add creates a one-shot event and inserts it.
func (s *Simulator) Add(action Action, payload any, date float64) *Event {
	ev := NewEvent(action, payload, date)
	s.Insert(ev)
	return ev
}

// AddPeriodic creates a periodic event and inserts it.
func (s *Simulator) AddPeriodic(action Action, payload any, firstDate, period float64) (*Event, error) {
	ev, err := NewPeriodicEvent(action, payload, firstDate, period)
	if err != nil {
		return nil, err
	}
	s.Insert(ev)
	return ev, nil
}

// RunUntil fires events in order while the earliest one is due at or
// before date. Events dated after date stay queued. A NaN bound is fatal.
func (s *Simulator) RunUntil(date float64) {
	if math.IsNaN(date) {
		Fatalf("RunUntil", "NaN bound at current time %g", s.clock)
		return
	}
	if !s.enterRun("RunUntil") {
		return
	}
	defer s.exitRun()

	for {
		next := s.queue.Peek()
		if next == nil || next.date > date {
			return
		}
		s.fireNext()
	}
}

// RunUntilExhausted fires events until the queue is empty. A model with a
// periodic event never exhausts.
func (s *Simulator) RunUntilExhausted() {
	if !s.enterRun("RunUntilExhausted") {
		return
	}
	defer s.exitRun()

	for s.queue.Len() > 0 {
		s.fireNext()
	}
}

// RunNEvents fires at most n events and returns how many were fired.
func (s *Simulator) RunNEvents(n int) int {
	if !s.enterRun("RunNEvents") {
		return 0
	}
	defer s.exitRun()

	fired := 0
	for fired < n && s.queue.Len() > 0 {
		s.fireNext()
		fired++
	}
	return fired
}

// Reset restores the clock to 0, drops every pending event and invokes
// every registered reset callback, starting a new campaign.
func (s *Simulator) Reset() {
	if s.running {
		Fatalf("Reset", "cannot reset while an event is running (clock %g)", s.clock)
		return
	}
	dropped := s.queue.Len()
	for _, ev := range s.queue.events {
		ev.queued = false
	}
	s.queue.Clear()
	s.clock = 0
	s.nextSeq = 0
	s.stats = Stats{Campaign: s.stats.Campaign + 1}

	s.resets.ResetAll()

	logrus.WithFields(logrus.Fields{
		"campaign": s.stats.Campaign,
		"dropped":  dropped,
		"resets":   s.resets.Len(),
	}).Debug("simulator reset")

	s.invokeHook(HookCtx{Domain: s, Pos: HookPosReset, Now: s.clock, Detail: dropped})
}

// RunCampaigns runs n campaigns of RunUntil(until). onEnd, when not nil,
// is called after each campaign with its index, before the simulator is
// reset for the next one. The last campaign is not reset so that its
// results stay readable.
func (s *Simulator) RunCampaigns(n int, until float64, onEnd func(campaign int)) {
	for i := 0; i < n; i++ {
		logrus.WithField("campaign", s.stats.Campaign).Infof("campaign %d/%d until %g", i+1, n, until)
		s.RunUntil(until)
		if onEnd != nil {
			onEnd(i)
		}
		if i < n-1 {
			s.Reset()
		}
	}
}

// LogStatus writes a one-line status report.
func (s *Simulator) LogStatus() {
	logrus.WithFields(logrus.Fields{
		"clock":      s.clock,
		"pending":    s.queue.Len(),
		"campaign":   s.stats.Campaign,
		"inserted":   s.stats.Inserted,
		"fired":      s.stats.Fired,
		"reinserted": s.stats.Reinserted,
	}).Info("simulator status")
}

func (s *Simulator) enterRun(op string) bool {
	if s.running {
		Fatalf(op, "re-entrant run from inside an event action (clock %g)", s.clock)
		return false
	}
	s.running = true
	return true
}

func (s *Simulator) exitRun() {
	s.running = false
}

func (s *Simulator) fireNext() {
	ev := s.queue.PopNext()
	ev.queued = false
	s.clock = ev.date
	s.stats.Fired++

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[%12.6f] firing %s event #%d", s.clock, ev.kind, ev.seq)
	}

	ctx := HookCtx{Domain: s, Pos: HookPosBeforeEvent, Now: s.clock, Item: ev}
	s.invokeHook(ctx)

	ev.fire()

	if ev.kind == Periodic {
		ev.occurrence++
		ev.date = ev.first + float64(ev.occurrence)*ev.period
		s.Insert(ev)
		s.stats.Reinserted++
	}

	ctx.Pos = HookPosAfterEvent
	s.invokeHook(ctx)
}
