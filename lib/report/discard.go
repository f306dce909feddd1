package report

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Discard is a reporter that drops everything
type Discard struct{}

func (Discard) Step(context.Context, Step) error                 { return nil }
func (Discard) Test(context.Context, TestResult) error           { return nil }
func (Discard) DisableCommandReports(context.Context, bool) error { return nil }
func (Discard) ExcludeTestNames(...string)                        {}
func (Discard) Close(context.Context) error                       { return nil }

// NewLogReporter returns a reporter that logs every step and test result
// before forwarding it to next
func NewLogReporter(log logrus.FieldLogger, next Reporter) *LogReporter {
	if next == nil {
		next = Discard{}
	}
	return &LogReporter{FieldLogger: log, next: next, excluded: map[string]bool{}}
}

// LogReporter mirrors reports into the structured log
type LogReporter struct {
	logrus.FieldLogger
	next Reporter

	mu       sync.Mutex
	excluded map[string]bool
}

// Step logs the step and forwards it
func (r *LogReporter) Step(ctx context.Context, step Step) error {
	log := r.WithField("step", step.Description)
	if step.Passed {
		log.Info(step.Message)
	} else {
		log.Error(step.Message)
	}
	return r.next.Step(ctx, step)
}

// Test logs the test result and forwards it
func (r *LogReporter) Test(ctx context.Context, result TestResult) error {
	if r.isExcluded(result.Name) {
		return nil
	}
	log := r.WithField("test", result.Name)
	if result.Passed {
		log.Info("Test passed.")
	} else {
		log.WithField("reason", result.Message).Error("Test failed.")
	}
	return r.next.Test(ctx, result)
}

// DisableCommandReports forwards the setting
func (r *LogReporter) DisableCommandReports(ctx context.Context, disabled bool) error {
	r.WithField("disabled", disabled).Debug("Command reports.")
	return r.next.DisableCommandReports(ctx, disabled)
}

// ExcludeTestNames remembers the names and forwards them
func (r *LogReporter) ExcludeTestNames(names ...string) {
	r.mu.Lock()
	for _, name := range names {
		r.excluded[name] = true
	}
	r.mu.Unlock()
	r.next.ExcludeTestNames(names...)
}

// Close closes the underlying reporter
func (r *LogReporter) Close(ctx context.Context) error {
	return r.next.Close(ctx)
}

func (r *LogReporter) isExcluded(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.excluded[name]
}
