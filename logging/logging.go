// Package logging wraps logrus for the operator-facing diagnostics the
// spec keeps distinct from kid-facing output (spec.md §7: "This is
// distinct from the kid-facing Render output above"). It is grounded on
// open-policy-agent-opa's log.Logger wrapper, trimmed to the handful of
// levels Ellex's CLI and REPL actually emit.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields so callers don't need to import logrus
// directly.
type Fields = logrus.Fields

// Logger is the operator-facing diagnostic sink: parse failures loading a
// file, session load/save errors, safety-violation occurrences. Never
// used for the text a learner sees — that always goes through
// eval.Render and an ioadapter.Adapter.
type Logger struct {
	entry *logrus.Entry
}

// New returns a text-formatted Logger writing to stderr at Info level.
func New() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return &Logger{entry: logrus.NewEntry(l)}
}

// SetOutput redirects where log lines are written (tests redirect to a
// buffer).
func (l *Logger) SetOutput(w io.Writer) { l.entry.Logger.SetOutput(w) }

// SetLevel parses and applies a logrus level name ("debug", "info", ...).
func (l *Logger) SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// WithFields returns a child logger carrying the given structured fields.
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
