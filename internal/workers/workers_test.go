// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingWorker is a test implementation of the Worker interface
// that records lifecycle calls into a shared log.
type recordingWorker struct {
	id  int
	mu  *sync.Mutex
	log *[]string
}

func (r *recordingWorker) Start(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.log = append(*r.log, "start")
}

func (r *recordingWorker) Stop(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.log = append(*r.log, "stop")
}

func newRecorders(n int) ([]Worker, *[]string) {
	var mu sync.Mutex
	log := []string{}
	ws := make([]Worker, 0, n)
	for i := 0; i < n; i++ {
		ws = append(ws, &recordingWorker{id: i, mu: &mu, log: &log})
	}
	return ws, &log
}

func TestWorkers_StartAndStopAll(t *testing.T) {
	ws, log := newRecorders(3)
	group := NewWorkers(ws...)

	group.Start(context.Background())
	group.Stop(time.Second)

	assert.Equal(t, []string{"start", "start", "start", "stop", "stop", "stop"}, *log)
}

func TestWorkers_SkipsNil(t *testing.T) {
	ws, log := newRecorders(1)
	group := NewWorkers(nil, ws[0], nil)

	group.Start(context.Background())
	group.Stop(time.Second)

	assert.Len(t, *log, 2)
}

func TestWorkers_Empty(t *testing.T) {
	group := NewWorkers()

	// Should not panic on an empty group
	group.Start(context.Background())
	group.Stop(time.Second)
}
