// SPDX-License-Identifier: Apache-2.0

// Package queue implements the persistent mutation queue: a durable FIFO of
// not-yet-confirmed writes that survives process restarts.
//
// Entries are immutable once enqueued (removal is the only mutation) and are
// replayed in strict insertion order; two mutations against the same item are
// both preserved, never merged. Every mutating operation persists the full
// queue through the durable key-value store synchronously, so a queued write
// is not lost on crash. Persistence failures are logged and swallowed: the
// in-memory queue stays authoritative for the session.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/models"
)

// storageKey is the key the serialized queue lives under in the KV store.
const storageKey = "mutation_queue"

// Queue is the process-wide pending-mutation queue.
type Queue struct {
	kv     store.KVStore
	logger *logger.Logger

	mu    sync.Mutex
	items []models.PendingMutation
}

// New constructs a Queue hydrated from the KV store. A missing key yields an
// empty queue; a malformed payload is discarded with a warning rather than
// wedging startup.
func New(kv store.KVStore, log *logger.Logger) *Queue {
	q := &Queue{
		kv:     kv,
		logger: log,
	}

	payload, err := kv.Get(context.Background(), storageKey)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			log.Err(err).Msg("failed to load persisted mutation queue")
		}
		return q
	}

	items, err := decodeQueue(payload)
	if err != nil {
		log.Err(err).Msg("persisted mutation queue is malformed, starting empty")
		return q
	}
	q.items = items

	return q
}

// Enqueue appends op to the queue, assigning a fresh id and creation
// timestamp when unset, and returns the id.
func (q *Queue) Enqueue(op models.PendingMutation) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}

	q.items = append(q.items, op)
	q.persistLocked()

	q.logger.Debug().
		Str("mutation_id", op.ID).
		Str("kind", op.Kind).
		Str("path", op.Path).
		Int("pending", len(q.items)).
		Msg("mutation enqueued")

	return op.ID
}

// Dequeue removes the mutation with the given id. Removing an absent id is a
// no-op.
func (q *Queue) Dequeue(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, op := range q.items {
		if op.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.persistLocked()
			return
		}
	}
}

// Clear empties the queue (e.g. on sign-out).
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
	q.persistLocked()
}

// ListForTarget returns the pending mutations whose item id equals itemID, in
// insertion order. Used only to render per-row "pending" markers.
func (q *Queue) ListForTarget(itemID string) []models.PendingMutation {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []models.PendingMutation
	for _, op := range q.items {
		if op.ItemID == itemID {
			out = append(out, op)
		}
	}
	return out
}

// All returns a copy of the queue in insertion order.
func (q *Queue) All() []models.PendingMutation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.PendingMutation, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of pending mutations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// persistLocked writes the full queue to the KV store. Failures are logged
// and swallowed; durability is best-effort. Caller must hold q.mu.
func (q *Queue) persistLocked() {
	payload, err := encodeQueue(q.items)
	if err != nil {
		q.logger.Err(err).Msg("failed to encode mutation queue")
		return
	}

	if err = q.kv.Set(context.Background(), storageKey, payload); err != nil {
		q.logger.Err(err).Msg("failed to persist mutation queue")
	}
}
