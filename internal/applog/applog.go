// Package applog centralizes the one logrus construction the rest of the
// module shares: logging setup stays owned by cmd/, and every library
// package stays silent unless handed a logger explicitly.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger configured for CLI use: a colored text
// formatter with full timestamps, level selected by quiet/debug flags.
// quiet wins over debug if both are set.
func New(quiet, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	switch {
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	case debug:
		l.SetLevel(logrus.TraceLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Discard returns a logger that drops everything, for library callers and
// tests that don't want CLI-style output.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
