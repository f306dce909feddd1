// Package runner executes keyword suites read from YAML files.
//
// A suite initializes the driver session, runs its setup steps, every test
// and finally its teardown steps. A test stops at its first failing step
// and its outcome is reported through the test-end listener of the library.
package runner

import (
	"context"
	"time"

	"github.com/testproject-io/robotkeywords/lib/constants"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// InitKeyword is the keyword run with the suite settings before setup
const InitKeyword = "init_testproject_driver"

// Library runs keywords by name
type Library interface {
	// Run runs the keyword with string arguments and returns its value
	Run(ctx context.Context, name string, args ...string) (interface{}, error)
	// EndTest reports the outcome of a finished test
	EndTest(ctx context.Context, name string, passed bool, message string)
}

// Config defines the runner configuration
type Config struct {
	// Library runs the keywords
	Library Library
	// Clock returns the current time, time.Now when nil
	Clock func() time.Time
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// CheckAndSetDefaults validates the config and fills in defaults
func (r *Config) CheckAndSetDefaults() error {
	if r.Library == nil {
		return trace.BadParameter("missing keyword library")
	}
	if r.Clock == nil {
		r.Clock = time.Now
	}
	if r.FieldLogger == nil {
		r.FieldLogger = logrus.StandardLogger()
	}
	return nil
}

// New returns a new suite runner
func New(config Config) (*Runner, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Runner{Config: config}, nil
}

// Runner runs suites with a keyword library
type Runner struct {
	Config
}

// Result is the outcome of a suite run
type Result struct {
	// Suite names the suite
	Suite string
	// Tests lists test outcomes in execution order
	Tests []TestResult
	// Duration is the wall time of the whole run
	Duration time.Duration
}

// TestResult is the outcome of a single test
type TestResult struct {
	Name string
	// Passed is true when every step of the test succeeded
	Passed bool
	// Message is the failure message of a failed test
	Message string
	// Skipped is true when the test did not run because setup failed
	Skipped  bool
	Duration time.Duration
}

// Failed returns the number of failed tests, skipped tests included
func (r Result) Failed() int {
	var failed int
	for _, test := range r.Tests {
		if !test.Passed {
			failed++
		}
	}
	return failed
}

// Run executes the suite.
//
// Teardown always runs, also after ctx is cancelled. Returns an error when
// init, setup, teardown or any test failed; the result is returned in either case.
func (r *Runner) Run(ctx context.Context, suite Suite) (*Result, error) {
	start := r.Clock()
	log := r.WithField("suite", suite.Name)
	vars := newVariables(suite.Variables)
	vars.set("SUITE_NAME", suite.Name)

	result := &Result{Suite: suite.Name}
	var errors []error

	err := r.setup(ctx, suite, vars)
	if err != nil {
		log.WithError(err).Warn("Suite setup failed.")
		errors = append(errors, trace.Wrap(err, "suite setup failed"))
	}
	for _, test := range suite.Tests {
		if err != nil || ctx.Err() != nil {
			message := "Skipped because suite setup failed."
			if err == nil {
				message = "Skipped because the run was interrupted."
			}
			result.Tests = append(result.Tests, TestResult{Name: test.Name, Message: message, Skipped: true})
			continue
		}
		result.Tests = append(result.Tests, r.runTest(ctx, test, vars.clone()))
	}
	if err := r.steps(detached{ctx}, suite.Teardown, vars, true); err != nil {
		log.WithError(err).Warn("Suite teardown failed.")
		errors = append(errors, trace.Wrap(err, "suite teardown failed"))
	}
	result.Duration = r.Clock().Sub(start)

	failed := result.Failed()
	log.WithFields(logrus.Fields{
		"total":  len(result.Tests),
		"passed": len(result.Tests) - failed,
		"failed": failed,
		"took":   result.Duration,
	}).Info("Suite finished.")
	if failed != 0 {
		errors = append(errors, trace.CompareFailed("%v of %v tests failed", failed, len(result.Tests)))
	}
	if err := ctx.Err(); err != nil {
		errors = append(errors, trace.Wrap(err))
	}
	if len(errors) == 1 {
		return result, errors[0]
	}
	return result, trace.NewAggregate(errors...)
}

func (r *Runner) setup(ctx context.Context, suite Suite, vars Variables) error {
	if !suite.SkipInit {
		args, err := vars.expandAll(settingArgs(suite.Settings))
		if err != nil {
			return trace.Wrap(err)
		}
		if _, err := r.Library.Run(ctx, InitKeyword, args...); err != nil {
			return trace.Wrap(err)
		}
	}
	return trace.Wrap(r.steps(ctx, suite.Setup, vars, false))
}

func (r *Runner) runTest(ctx context.Context, test Test, vars Variables) TestResult {
	start := r.Clock()
	log := r.WithField(constants.FieldTest, test.Name)
	log.Info("Test started.")
	vars.set("TEST_NAME", test.Name)

	result := TestResult{Name: test.Name, Passed: true}
	if err := r.steps(ctx, test.Steps, vars, false); err != nil {
		result.Passed = false
		result.Message = trace.UserMessage(err)
	}
	result.Duration = r.Clock().Sub(start)
	r.Library.EndTest(ctx, test.Name, result.Passed, result.Message)

	log = log.WithField("took", result.Duration)
	if result.Passed {
		log.Info("Test passed.")
	} else {
		log.WithField("reason", result.Message).Warn("Test failed.")
	}
	return result
}

// steps runs steps in order. Without keepGoing, the first failure stops the
// run; otherwise all failures are collected.
func (r *Runner) steps(ctx context.Context, steps []Step, vars Variables, keepGoing bool) error {
	var errors []error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return trace.Wrap(err)
		}
		err := r.step(ctx, step, vars)
		if err == nil {
			continue
		}
		if !keepGoing {
			return trace.Wrap(err)
		}
		errors = append(errors, err)
	}
	return trace.NewAggregate(errors...)
}

func (r *Runner) step(ctx context.Context, step Step, vars Variables) error {
	keyword, err := vars.expand(step.Keyword)
	if err != nil {
		return trace.Wrap(err)
	}
	args, err := vars.expandAll(step.Args)
	if err != nil {
		return trace.Wrap(err)
	}
	r.WithField(constants.FieldKeyword, keyword).Debugf("Running %v.", args)
	value, err := r.Library.Run(ctx, keyword, args...)
	if err != nil {
		return trace.Wrap(err)
	}
	if step.Assign != "" {
		vars.set(step.Assign, stringValue(value))
	}
	return nil
}

// detached carries the values of the parent context but is never cancelled
type detached struct {
	context.Context
}

func (detached) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detached) Done() <-chan struct{}       { return nil }
func (detached) Err() error                  { return nil }
