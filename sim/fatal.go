package sim

import "github.com/sirupsen/logrus"

// Fatalf reports an unrecoverable model error and terminates the process
// through the logrus exit path. op names the failing operation.
//
// Callers must not rely on Fatalf not returning: when the logger's exit
// function is replaced (tests, embedding), control may come back.
func Fatalf(op string, format string, args ...any) {
	logrus.WithField("op", op).Fatalf(format, args...)
}
