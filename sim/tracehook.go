package sim

import "github.com/ndes-sim/ndes/sim/trace"

// TraceHook records event firings and resets into a SimulationTrace.
type TraceHook struct {
	Trace *trace.SimulationTrace
}

// NewTraceHook creates a hook recording into a fresh trace built from config.
func NewTraceHook(config trace.TraceConfig) *TraceHook {
	return &TraceHook{Trace: trace.NewSimulationTrace(config)}
}

// Func implements Hook.
func (h *TraceHook) Func(ctx HookCtx) {
	if !h.Trace.Enabled() {
		return
	}
	switch ctx.Pos {
	case HookPosBeforeEvent:
		h.Trace.RecordEvent(trace.EventRecord{
			Campaign: ctx.Domain.stats.Campaign,
			Seq:      ctx.Item.seq,
			Date:     ctx.Now,
			Periodic: ctx.Item.kind == Periodic,
		})
	case HookPosReset:
		dropped, _ := ctx.Detail.(int)
		h.Trace.RecordReset(trace.ResetRecord{
			Campaign: ctx.Domain.stats.Campaign,
			Dropped:  dropped,
		})
	}
}
