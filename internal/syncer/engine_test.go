// SPDX-License-Identifier: Apache-2.0

package syncer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/mock"
	"github.com/familylists/familylists-go/internal/queue"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/models"
)

func newTestEngine(t *testing.T) (*Engine, *mock.MockServerAdapter, *queue.Queue, cache.Cache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	srv := mock.NewMockServerAdapter(ctrl)
	q := queue.New(store.NewMemoryKV(), logger.Nop())
	c := cache.NewMemory()
	return NewEngine(srv, q, c, logger.Nop()), srv, q, c
}

func enqueueCheck(q *queue.Queue, listID, itemID string) string {
	return q.Enqueue(models.PendingMutation{
		Kind:   models.MutationCheck,
		Method: http.MethodPost,
		Path:   "/api/items/" + itemID + "/check",
		ListID: listID,
		ItemID: itemID,
	})
}

// ── Drain ────────────────────────────────────────────────────────────────────

func TestEngine_Drain_ReplaysInInsertionOrder(t *testing.T) {
	e, srv, q, _ := newTestEngine(t)

	enqueueCheck(q, "l1", "a")
	enqueueCheck(q, "l1", "b")
	enqueueCheck(q, "l1", "c")

	var replayed []string
	srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, op models.PendingMutation) error {
			replayed = append(replayed, op.ItemID)
			return nil
		})

	e.Drain(context.Background())

	assert.Equal(t, []string{"a", "b", "c"}, replayed)
	assert.Equal(t, 0, q.Len())
	assert.False(t, e.Paused())
}

func TestEngine_Drain_StopsAtFirstFailure(t *testing.T) {
	e, srv, q, _ := newTestEngine(t)

	enqueueCheck(q, "l1", "a")
	enqueueCheck(q, "l1", "b")
	enqueueCheck(q, "l1", "c")

	gomock.InOrder(
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(nil),
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(adapter.ErrNetwork),
	)

	e.Drain(context.Background())

	// The failing mutation stays at the head; nothing after it was attempted.
	ops := q.All()
	require.Len(t, ops, 2)
	assert.Equal(t, "b", ops[0].ItemID)
	assert.Equal(t, "c", ops[1].ItemID)
	assert.False(t, e.Paused(), "a network failure must not pause the queue")
}

func TestEngine_Drain_RetriesHeadOnNextTrigger(t *testing.T) {
	e, srv, q, _ := newTestEngine(t)

	enqueueCheck(q, "l1", "a")

	gomock.InOrder(
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(errors.New("boom")),
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(nil),
	)

	e.Drain(context.Background())
	require.Equal(t, 1, q.Len())

	e.Drain(context.Background())
	assert.Equal(t, 0, q.Len())
}

func TestEngine_Drain_InvalidatesTouchedViews(t *testing.T) {
	e, srv, q, c := newTestEngine(t)

	enqueueCheck(q, "l1", "a")
	srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(nil)

	var invalidated []string
	c.OnInvalidate(func(key string) { invalidated = append(invalidated, key) })

	e.Drain(context.Background())

	assert.Contains(t, invalidated, cache.ListDetailKey("l1"))
	assert.Contains(t, invalidated, cache.ListIndexKey())
}

func TestEngine_Drain_EmptyQueue_NoCalls(t *testing.T) {
	e, _, _, _ := newTestEngine(t)

	// No Replay expectation: any call would fail the controller.
	e.Drain(context.Background())
}

// ── auth pause / Resume ──────────────────────────────────────────────────────

func TestEngine_Drain_PausesOnUnauthorized(t *testing.T) {
	e, srv, q, _ := newTestEngine(t)

	// A check followed by an update of the same item: the 401 on the first
	// replay must freeze both, not just the failing one.
	enqueueCheck(q, "l1", "a")
	q.Enqueue(models.PendingMutation{
		Kind:   models.MutationUpdate,
		Method: http.MethodPut,
		Path:   "/api/items/a",
		Body:   []byte(`{"quantity":2}`),
		ListID: "l1",
		ItemID: "a",
	})

	srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(adapter.ErrUnauthorized)

	e.Drain(context.Background())

	assert.True(t, e.Paused())
	assert.Equal(t, 2, q.Len())

	// Further triggers are no-ops while paused.
	e.Drain(context.Background())
	e.Drain(context.Background())
	assert.Equal(t, 2, q.Len())
}

func TestEngine_Resume_ClearsPauseAndDrains(t *testing.T) {
	e, srv, q, _ := newTestEngine(t)

	enqueueCheck(q, "l1", "a")
	enqueueCheck(q, "l1", "b")

	gomock.InOrder(
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(adapter.ErrUnauthorized),
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(nil),
		srv.EXPECT().Replay(gomock.Any(), gomock.Any()).Return(nil),
	)

	e.Drain(context.Background())
	require.True(t, e.Paused())

	e.Resume(context.Background())

	assert.False(t, e.Paused())
	assert.Equal(t, 0, q.Len())
}

func TestEngine_Resume_Idempotent(t *testing.T) {
	e, _, _, _ := newTestEngine(t)

	// Resuming a never-paused engine with an empty queue is harmless.
	e.Resume(context.Background())
	e.Resume(context.Background())

	assert.False(t, e.Paused())
}

// ── status ───────────────────────────────────────────────────────────────────

func TestEngine_PendingCount(t *testing.T) {
	e, _, q, _ := newTestEngine(t)

	assert.Equal(t, 0, e.PendingCount())
	enqueueCheck(q, "l1", "a")
	assert.Equal(t, 1, e.PendingCount())
}
