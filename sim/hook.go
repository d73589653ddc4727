package sim

// HookPos names the site at which a hook is triggered.
type HookPos struct {
	Name string
}

// HookPosBeforeEvent triggers right after the clock advances to an event's
// date, before its action runs.
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent triggers after an event's action returns and, for a
// periodic event, after its next occurrence has been reinserted.
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// HookPosReset triggers at the end of Simulator.Reset.
var HookPosReset = &HookPos{Name: "Reset"}

// HookCtx holds the information about the site that triggered a hook.
type HookCtx struct {
	Domain *Simulator
	Pos    *HookPos
	Now    float64
	Item   *Event
	Detail any // HookPosReset: number of dropped events (int)
}

// Hook is a short piece of program invoked by the simulator at hook
// positions.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// AcceptHook registers a hook.
func (s *Simulator) AcceptHook(hook Hook) {
	s.hooks = append(s.hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (s *Simulator) NumHooks() int {
	return len(s.hooks)
}

func (s *Simulator) invokeHook(ctx HookCtx) {
	for _, h := range s.hooks {
		h.Func(ctx)
	}
}
