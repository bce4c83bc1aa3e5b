// Package clock holds the waiting helpers of the worker loop.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d. It returns the context error when ctx ends first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
