package debug

import (
	"context"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/sirupsen/logrus"
)

// WatchInterrupts cancels the returned context on the first interrupt.
// Further interrupts dump goroutine stacks to stderr.
// The returned function stops watching and releases the context.
func WatchInterrupts(ctx context.Context, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		var interrupts int
		for {
			select {
			case sig := <-interrupt:
				interrupts++
				if interrupts == 1 {
					log.WithField("signal", sig).Warn("Interrupted, stopping. Interrupt again to dump goroutine stacks.")
					cancel()
					continue
				}
				pprof.Lookup("goroutine").WriteTo(os.Stderr, 1)
			case <-done:
				return
			}
		}
	}()

	return ctx, func() {
		signal.Stop(interrupt)
		close(done)
		cancel()
	}
}
