// SPDX-License-Identifier: Apache-2.0

// Package syncer implements the sync engine: it drains the persistent
// mutation queue against the backend, preserving order and classifying
// failures.
//
// The engine is a three-state machine: idle → draining → (idle | paused).
// Draining replays mutations strictly in insertion order and stops at the
// first failure, because mutation N+1 may depend on mutation N (an update
// after a create) and because replaying a whole backlog against a down or
// unauthorized endpoint helps nobody. A 401 pauses the queue entirely until
// an explicit resume; any other failure leaves the engine idle with the
// failing mutation still at the head, to be retried on the next trigger.
package syncer

import (
	"context"
	"errors"
	"sync"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/queue"
)

// Engine drains the mutation queue. There is exactly one per process.
type Engine struct {
	adapter adapter.ServerAdapter
	queue   *queue.Queue
	cache   cache.Cache
	logger  *logger.Logger

	mu      sync.Mutex
	syncing bool
	paused  bool
}

// NewEngine constructs an idle Engine.
func NewEngine(srv adapter.ServerAdapter, q *queue.Queue, c cache.Cache, log *logger.Logger) *Engine {
	return &Engine{
		adapter: srv,
		queue:   q,
		cache:   c,
		logger:  log,
	}
}

// Drain replays queued mutations in insertion order until the queue is empty
// or a mutation fails. It is a no-op while another drain pass is running or
// while the engine is paused. Safe to call from any goroutine.
func (e *Engine) Drain(ctx context.Context) {
	e.mu.Lock()
	if e.syncing || e.paused {
		e.mu.Unlock()
		return
	}
	e.syncing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	for {
		ops := e.queue.All()
		if len(ops) == 0 {
			return
		}
		op := ops[0]

		err := e.adapter.Replay(ctx, op)
		if err == nil {
			e.queue.Dequeue(op.ID)
			e.invalidate(op.ListID)
			e.logger.Debug().
				Str("mutation_id", op.ID).
				Str("kind", op.Kind).
				Msg("queued mutation replayed")
			continue
		}

		if errors.Is(err, adapter.ErrUnauthorized) {
			e.mu.Lock()
			e.paused = true
			e.mu.Unlock()
			e.logger.Warn().
				Str("mutation_id", op.ID).
				Msg("drain paused: authentication failure")
			return
		}

		// Transient or unclassified: the mutation stays at the head and the
		// next trigger retries from here.
		e.logger.Warn().
			Err(err).
			Str("mutation_id", op.ID).
			Int("remaining", e.queue.Len()).
			Msg("drain stopped at failing mutation")
		return
	}
}

// Resume clears the auth pause and runs one drain pass. Call it once
// re-authentication has provisioned a fresh token.
func (e *Engine) Resume(ctx context.Context) {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()

	e.Drain(ctx)
}

// Paused reports whether the queue is paused on an authentication failure.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

// Syncing reports whether a drain pass is currently running.
func (e *Engine) Syncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.syncing
}

// PendingCount returns the number of queued mutations.
func (e *Engine) PendingCount() int {
	return e.queue.Len()
}

func (e *Engine) invalidate(listID string) {
	if listID != "" {
		e.cache.Invalidate(cache.ListDetailKey(listID))
	}
	e.cache.Invalidate(cache.ListIndexKey())
}
