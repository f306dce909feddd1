package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestRetryerStopsAfterAttempts(t *testing.T) {
	var calls int
	r := Retryer{Delay: time.Millisecond, Attempts: 3}
	err := r.Do(context.Background(), func() error {
		calls++
		return trace.ConnectionProblem(nil, "agent unavailable")
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryerSucceedsEventually(t *testing.T) {
	var calls int
	r := Retryer{Delay: time.Millisecond, Attempts: 5}
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return Continue("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryerAborts(t *testing.T) {
	var calls int
	r := Retryer{Delay: time.Millisecond, Attempts: 5}
	err := r.Do(context.Background(), func() error {
		calls++
		return Abort(trace.AccessDenied("token rejected"))
	})
	require.True(t, trace.IsAccessDenied(err), "got %v", err)
	require.Equal(t, 1, calls)
}

func TestUntilTimesOut(t *testing.T) {
	err := Until(context.Background(), 50*time.Millisecond, 10*time.Millisecond, func() error {
		return errors.New("element not visible")
	})
	require.True(t, trace.IsLimitExceeded(err), "got %v", err)
	require.Contains(t, err.Error(), "element not visible")
}

func TestUntilTimesOutAtDeadline(t *testing.T) {
	var calls int
	start := time.Now()
	err := Until(context.Background(), 100*time.Millisecond, 40*time.Millisecond, func() error {
		calls++
		return Continue("condition not met")
	})
	require.True(t, trace.IsLimitExceeded(err), "got %v", err)
	require.True(t, time.Since(start) >= 100*time.Millisecond)
	require.True(t, calls >= 3, "expected a final attempt at the deadline, got %v", calls)
}

func TestUntilTriesOnceWithoutTimeout(t *testing.T) {
	var calls int
	err := Until(context.Background(), 0, time.Second, func() error {
		calls++
		return errors.New("no such alert")
	})
	require.True(t, trace.IsLimitExceeded(err), "got %v", err)
	require.Equal(t, 1, calls)
}

func TestUntilAborts(t *testing.T) {
	var calls int
	err := Until(context.Background(), time.Second, time.Millisecond, func() error {
		calls++
		return Abort(trace.NotFound("no browser is open"))
	})
	require.True(t, trace.IsNotFound(err), "got %v", err)
	require.Equal(t, 1, calls)
}

func TestUntilStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Until(ctx, time.Minute, time.Millisecond, func() error {
		return errors.New("not yet")
	})
	require.Error(t, err)
	require.False(t, trace.IsLimitExceeded(err))
}

func TestUntilSucceeds(t *testing.T) {
	var calls int
	err := Until(context.Background(), time.Second, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
}

func TestSleepIsInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	Sleep(ctx, time.Minute)
	require.True(t, time.Since(start) < time.Second)
}
