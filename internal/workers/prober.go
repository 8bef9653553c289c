// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/connectivity"
	"github.com/familylists/familylists-go/internal/logger"
)

// probeTimeout bounds one health request so a hung connection is reported
// as offline instead of stalling the prober.
const probeTimeout = 5 * time.Second

// Prober polls the server health endpoint on a fixed interval and feeds the
// result into the connectivity signal. It is the only writer of that signal.
type Prober struct {
	adapter  adapter.ServerAdapter
	signal   *connectivity.Signal
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProber creates a Prober. If interval is zero or negative it defaults to
// 30 seconds. The prober is idle until Run is called.
func NewProber(srv adapter.ServerAdapter, sig *connectivity.Signal, interval time.Duration, log *logger.Logger) *Prober {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Prober{adapter: srv, signal: sig, interval: interval, logger: log}
}

// Run starts the probe loop. It probes once immediately so the signal
// reflects reality before the first tick, then continues on the interval.
func (p *Prober) Run() {
	p.Stop()

	p.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.probe(ctx)

		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.probe(ctx)
			}
		}
	}()
}

// Stop cancels the probe loop and blocks until it has exited. Safe to call
// when the prober is not running.
func (p *Prober) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *Prober) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := p.adapter.Health(probeCtx)
	if err != nil && ctx.Err() != nil {
		return
	}
	p.signal.SetOnline(err == nil)
}
