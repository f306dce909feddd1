package xlog

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestingHook forwards log entries to the test log
type TestingHook struct {
	t testing.TB
}

func (hook *TestingHook) Fire(e *logrus.Entry) error {
	if len(e.Data) == 0 {
		hook.t.Log(e.Level, e.Message)
		return nil
	}
	hook.t.Log(e.Level, e.Message, fmt.Sprint(e.Data))
	return nil
}

// Levels returns logging levels supported by logrus
func (hook *TestingHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// NewTestLogger returns logger which prints everything to the test log
func NewTestLogger(t testing.TB) logrus.FieldLogger {
	log := logrus.New()
	log.Level = logrus.TraceLevel
	log.Out = discard{}
	log.Hooks.Add(&TestingHook{t})
	return log.WithField("test", t.Name())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
