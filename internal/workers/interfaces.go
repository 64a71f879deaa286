// Package workers runs the terminal's scheduled background tasks.
//
// Each task is wrapped in a [Job]: a timer loop that recomputes its delay
// after every run, skips a run while the previous one is still in flight and
// can be nudged with [Job.Trigger]. [Workers] starts and stops a set of jobs
// together.
package workers

import (
	"context"
	"time"
)

// Worker is the interface implemented by every background worker.
//
// Start launches the worker and returns immediately. Stop halts scheduling,
// lets in-flight work finish for up to grace and then cancels it. Stop is
// safe to call more than once and before Start.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Start(ctx context.Context) { /* spawn goroutines */ }
//	func (w *MyWorker) Stop(grace time.Duration)  { /* wait, then cancel */ }
type Worker interface {
	Start(ctx context.Context)
	Stop(grace time.Duration)
}

// Task is the unit of work executed by a [Job].
type Task func(ctx context.Context) error

// DelayFunc returns the delay before the next scheduled run. It is called
// after every run so the schedule can follow backoff or server-issued
// intervals.
type DelayFunc func() time.Duration

// Every returns a DelayFunc with a fixed period.
func Every(d time.Duration) DelayFunc {
	return func() time.Duration { return d }
}
