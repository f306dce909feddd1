package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/testproject-io/robotkeywords/lib/defaults"

	"github.com/cenkalti/backoff"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Abort causes Retry function to stop with error
func Abort(err error) AbortRetry {
	return AbortRetry{Err: err}
}

// Continue causes Retry function to continue trying and logging message
func Continue(format string, args ...interface{}) ContinueRetry {
	message := fmt.Sprintf(format, args...)
	return ContinueRetry{Message: message}
}

// AbortRetry if returned from Retry, will lead to retries to be stopped,
// but the Retry function will return internal Error
type AbortRetry struct {
	Err error
}

func (r AbortRetry) Error() string {
	return fmt.Sprintf("Abort(%v)", r.Err)
}

// ContinueRetry if returned from Retry, will be lead to retry next time
type ContinueRetry struct {
	Message string
}

func (r ContinueRetry) Error() string {
	return fmt.Sprintf("ContinueRetry(%v)", r.Message)
}

// Retry attempts to execute fn with default delay retrying it for a default number of attempts.
// fn can return AbortRetry to abort or ContinueRetry to continue the execution.
func Retry(ctx context.Context, fn func() error) error {
	r := Retryer{
		Delay:    defaults.RetryDelay,
		Attempts: defaults.RetryAttempts,
	}
	return r.Do(ctx, fn)
}

// Retryer is a process that can retry a function
type Retryer struct {
	// Delay specifies the initial interval between retry attempts,
	// doubled after every failed attempt
	Delay time.Duration
	// Attempts specifies the number of attempts to execute before failing.
	// Should be >= 1, zero value is not useful
	Attempts int
	// FieldLogger specifies the log sink
	log.FieldLogger
}

// Do retries the given function fn for the configured number of attempts until it succeeds
// or all attempts have been exhausted
func (r Retryer) Do(ctx context.Context, fn func() error) error {
	if r.FieldLogger == nil {
		r.FieldLogger = log.NewEntry(log.StandardLogger())
	}
	if r.Attempts < 1 {
		r.Attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.Delay
	b.MaxInterval = defaults.RetryMaxDelay
	b.MaxElapsedTime = 0

	return trace.Wrap(run(ctx, backoff.WithMaxRetries(b, uint64(r.Attempts-1)), fn, r.FieldLogger))
}

// Until polls fn every interval until it succeeds, aborts, or the timeout expires.
// fn is always called at least once. Any error other than an abort that is
// still present at the deadline is wrapped into a LimitExceeded error.
func Until(ctx context.Context, timeout, interval time.Duration, fn func() error) error {
	if interval <= 0 {
		interval = defaults.PollInterval
	}
	logger := log.NewEntry(log.StandardLogger())
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		err := fn()
		switch origErr := err.(type) {
		case nil:
			return nil
		case AbortRetry:
			logger.WithError(origErr.Err).Debug("aborted")
			return trace.Wrap(origErr.Err)
		case ContinueRetry:
			logger.Debugf("%v, attempt %v", origErr.Message, attempt)
		default:
			logger.Debugf("unsuccessful attempt %v: %v", attempt, trace.UserMessage(err))
		}
		left := time.Until(deadline)
		if left <= 0 {
			return trace.LimitExceeded("timed out after %v: %v", timeout, trace.UserMessage(err))
		}
		if left > interval {
			left = interval
		}
		select {
		case <-time.After(left):
		case <-ctx.Done():
			return trace.Wrap(ctx.Err())
		}
	}
}

func run(ctx context.Context, b backoff.BackOff, fn func() error, logger log.FieldLogger) error {
	if ctx.Err() != nil {
		return trace.Wrap(ctx.Err())
	}

	attempt := 0
	op := func() error {
		attempt++
		err := fn()
		switch origErr := err.(type) {
		case nil:
			return nil
		case AbortRetry:
			logger.WithError(origErr.Err).Debug("aborted")
			return backoff.Permanent(origErr.Err)
		case ContinueRetry:
			logger.Debugf("%v, attempt %v", origErr.Message, attempt)
		default:
			logger.Debugf("unsuccessful attempt %v: %v", attempt, trace.UserMessage(err))
		}
		return err
	}
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}
