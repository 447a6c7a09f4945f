package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// GracefulShutdown runs cleanup once when ctx ends or an interrupt arrives, then cancels.
func GracefulShutdown(ctx context.Context, cancel context.CancelFunc, cleanup func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
	case <-ctx.Done():
	}

	if cleanup != nil {
		cleanup()
	}
	cancel()
}
