// Package testutil provides shared test infrastructure for the simulator
// packages: float comparison with tolerance and capture of fatal exits.
// It must not import sim/ so that sim's own tests can use it.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	if math.IsNaN(want) || math.IsNaN(got) {
		if !(math.IsNaN(want) && math.IsNaN(got)) {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// FatalExit is the panic value raised in place of a process exit while
// ExpectFatal is active.
type FatalExit struct {
	Code int
}

func (f FatalExit) String() string {
	return fmt.Sprintf("fatal exit %d", f.Code)
}

// ExpectFatal runs fn with the logrus exit function replaced by a panic and
// fails the test unless fn reached a fatal exit. It returns the message of
// the fatal log entry.
func ExpectFatal(t *testing.T, fn func()) (message string) {
	t.Helper()
	exited, message := captureFatal(fn)
	if !exited {
		t.Errorf("expected a fatal exit, function returned normally")
		return ""
	}
	return message
}

// ExpectNoFatal runs fn like ExpectFatal but fails the test, instead of
// exiting the test binary, if fn reaches a fatal exit.
func ExpectNoFatal(t *testing.T, fn func()) {
	t.Helper()
	if exited, message := captureFatal(fn); exited {
		t.Errorf("unexpected fatal exit: %s", message)
	}
}

func captureFatal(fn func()) (exited bool, message string) {
	logger := logrus.StandardLogger()
	prevExit := logger.ExitFunc
	hook := &lastEntryHook{}
	prevHooks := logger.ReplaceHooks(make(logrus.LevelHooks))
	logger.AddHook(hook)
	logger.ExitFunc = func(code int) { panic(FatalExit{Code: code}) }
	defer func() {
		logger.ExitFunc = prevExit
		logger.ReplaceHooks(prevHooks)
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(FatalExit); !ok {
					panic(r)
				}
				exited = true
			}
		}()
		fn()
	}()
	return exited, hook.message
}

type lastEntryHook struct {
	message string
}

func (h *lastEntryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.FatalLevel}
}

func (h *lastEntryHook) Fire(e *logrus.Entry) error {
	h.message = e.Message
	if op, ok := e.Data["op"]; ok {
		h.message = fmt.Sprintf("%v: %s", op, e.Message)
	}
	return nil
}
