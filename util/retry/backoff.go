package retry

import (
	"context"
	"time"
)

var sleepFunc = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// BackoffAndSleep sleeps for (backoffMultiplier*retries + 1) * durationType,
// returning early with ctx's error when it is done.
func BackoffAndSleep(ctx context.Context, retries int, backoffMultiplier int, durationType time.Duration) error {
	backoff := (backoffMultiplier * retries) + 1
	backoffPeriod := time.Duration(backoff) * durationType
	return sleepFunc(ctx, backoffPeriod)
}
