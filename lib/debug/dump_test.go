package debug

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/stretchr/testify/require"
)

func TestInterruptCancelsContext(t *testing.T) {
	ctx, stop := WatchInterrupts(context.Background(), xlog.NewTestLogger(t))
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestStopReleasesContext(t *testing.T) {
	ctx, stop := WatchInterrupts(context.Background(), xlog.NewTestLogger(t))
	stop()
	require.Error(t, ctx.Err())
}
