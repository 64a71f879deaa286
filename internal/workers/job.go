// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// Job runs a [Task] on a timer. The first run happens right after Start.
type Job struct {
	name  string
	task  Task
	delay DelayFunc

	// busy is shared by scheduled runs and Trigger.
	busy atomic.Bool

	mu      sync.Mutex
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	stop    chan struct{}

	loopDone sync.WaitGroup
	inflight sync.WaitGroup

	logger *logger.Logger
}

// NewJob creates a stopped job. Call Start to begin scheduling.
func NewJob(name string, task Task, delay DelayFunc, logger *logger.Logger) *Job {
	return &Job{
		name:   name,
		task:   task,
		delay:  delay,
		stop:   make(chan struct{}),
		logger: logger.WithComponent("job." + name),
	}
}

// Start implements [Worker].
func (j *Job) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started || j.stopped {
		return
	}

	j.started = true
	j.ctx, j.cancel = context.WithCancel(ctx)
	j.loopDone.Add(1)
	go j.loop(j.ctx)
}

// Trigger runs the task now in its own goroutine unless a run is already in
// flight or the job is not running. It reports whether a run was started.
func (j *Job) Trigger() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.started || j.stopped {
		return false
	}
	if !j.busy.CompareAndSwap(false, true) {
		return false
	}

	j.inflight.Add(1)
	go func() {
		defer j.inflight.Done()
		defer j.busy.Store(false)
		j.execute(j.ctx, "trigger")
	}()
	return true
}

// Busy reports whether a run is in flight.
func (j *Job) Busy() bool {
	return j.busy.Load()
}

// Stop implements [Worker]. The timer stops first; a run in flight gets
// grace to finish before its context is cancelled.
func (j *Job) Stop(grace time.Duration) {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	j.stopped = true
	close(j.stop)
	started := j.started
	j.mu.Unlock()

	if !started {
		return
	}

	done := make(chan struct{})
	go func() {
		j.loopDone.Wait()
		j.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		j.logger.Warn().Dur("grace", grace).Msg("run did not finish in time, cancelling")
		j.cancel()
		<-done
	}
	j.cancel()
}

func (j *Job) loop(ctx context.Context) {
	defer j.loopDone.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
			j.tick(ctx)
			timer.Reset(j.delay())
		}
	}
}

func (j *Job) tick(ctx context.Context) {
	if !j.busy.CompareAndSwap(false, true) {
		j.logger.Debug().Msg("previous run still in flight, skipping tick")
		return
	}
	j.inflight.Add(1)
	defer j.inflight.Done()
	defer j.busy.Store(false)

	j.execute(ctx, "timer")
}

func (j *Job) execute(ctx context.Context, source string) {
	started := time.Now()
	err := j.task(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Str("source", source).Dur("took", time.Since(started)).Msg("run failed")
		return
	}
	j.logger.Debug().Str("source", source).Dur("took", time.Since(started)).Msg("run finished")
}
