// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/familylists/familylists-go/internal/syncer"
)

// SyncJob periodically asks the sync engine to drain the pending mutation
// queue. The engine itself decides whether a pass actually runs (it no-ops
// while paused or already draining), so overlapping triggers are harmless.
type SyncJob struct {
	engine   *syncer.Engine
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that calls engine.Drain on a ticker. If
// interval is zero or negative it defaults to 1 minute. The job is idle
// until Run is called.
func NewSyncJob(engine *syncer.Engine, interval time.Duration) *SyncJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SyncJob{engine: engine, interval: interval}
}

// Run starts the background drain loop.
func (j *SyncJob) Run() {
	j.Stop()

	j.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				j.engine.Drain(ctx)
			}
		}
	}()
}

// Stop cancels the drain loop and blocks until it has exited. Safe to call
// when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
