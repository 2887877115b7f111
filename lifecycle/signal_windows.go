//go:build windows

package lifecycle

import "context"

// WatchSignals is a no-op: Windows has no job-control signals.
func WatchSignals(ctx context.Context, n *Notifier) {}
