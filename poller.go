// poller.go implements the bounded wait for a vendor task to leave the
// pending states.
package main

import (
	"context"
	"time"
)

// checkFunc asks the vendor for the current state of one task.
type checkFunc func(ctx context.Context) (*Task, error)

// waitForTask polls check at a fixed interval until the task reaches a
// terminal state or the attempt budget runs out. No backoff, no jitter:
// check, wait one interval, check again. The wait suspends only the
// calling goroutine, so concurrent polls for different tasks never
// serialize against one another.
//
// Returns the completed task, a *GenerationFailedError when the vendor
// reports FAILED, or a *TimeoutError naming the task after maxAttempts
// checks. A check error ends the wait immediately; transport failures
// are not retried. Cancelling ctx stops the loop between attempts.
func waitForTask(ctx context.Context, taskID string, check checkFunc, interval time.Duration, maxAttempts int) (*Task, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		task, err := check(ctx)
		if err != nil {
			return nil, err
		}
		switch task.Status {
		case StatusCompleted:
			return task, nil
		case StatusFailed:
			return nil, &GenerationFailedError{TaskID: taskID}
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, &TimeoutError{TaskID: taskID, Attempts: maxAttempts}
}
