package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSimulator opens the process simulator for one test and closes it
// on cleanup.
func newTestSimulator(t *testing.T, opts ...Option) *Simulator {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// recorder is an Action that logs the payload and the firing date.
type recorder struct {
	s     *Simulator
	fired []firing
}

type firing struct {
	payload any
	date    float64
}

func (r *recorder) Run(payload any) {
	r.fired = append(r.fired, firing{payload: payload, date: r.s.Now()})
}

func (r *recorder) payloads() []any {
	out := make([]any, 0, len(r.fired))
	for _, f := range r.fired {
		out = append(out, f.payload)
	}
	return out
}

func (r *recorder) dates() []float64 {
	out := make([]float64, 0, len(r.fired))
	for _, f := range r.fired {
		out = append(out, f.date)
	}
	return out
}
