//go:build !windows

package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reel-cli/reel/log"
)

// WatchSignals publishes job-control transitions until ctx ends.
// SIGTSTP publishes Backgrounded and then actually stops the process;
// SIGCONT publishes Foregrounded.
func WatchSignals(ctx context.Context, n *Notifier) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTSTP, syscall.SIGCONT)

	go func() {
		defer signal.Stop(signals)

		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				switch sig {
				case syscall.SIGTSTP:
					n.Publish(Backgrounded)
					suspend()
				case syscall.SIGCONT:
					n.Publish(Foregrounded)
				}
			}
		}
	}()
}

// suspend stops the process. Catching SIGTSTP suppressed the default stop,
// SIGSTOP cannot be caught.
func suspend() {
	if err := syscall.Kill(os.Getpid(), syscall.SIGSTOP); err != nil {
		log.Warnf("stopping process: %v", err)
	}
}
