// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/mock"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/models"
)

func newTestQueue(t *testing.T) (*Queue, store.KVStore) {
	t.Helper()
	kv := store.NewMemoryKV()
	return New(kv, logger.Nop()), kv
}

func checkMutation(itemID string) models.PendingMutation {
	return models.PendingMutation{
		Kind:   models.MutationCheck,
		Method: http.MethodPost,
		Path:   "/api/items/" + itemID + "/check",
		ItemID: itemID,
	}
}

// ── Enqueue / ordering ───────────────────────────────────────────────────────

func TestQueue_Enqueue_AssignsIDAndTimestamp(t *testing.T) {
	q, _ := newTestQueue(t)

	id := q.Enqueue(checkMutation("item-1"))
	require.NotEmpty(t, id)

	ops := q.All()
	require.Len(t, ops, 1)
	assert.Equal(t, id, ops[0].ID)
	assert.False(t, ops[0].CreatedAt.IsZero())
}

func TestQueue_All_PreservesInsertionOrder(t *testing.T) {
	q, _ := newTestQueue(t)

	q.Enqueue(checkMutation("a"))
	q.Enqueue(checkMutation("b"))
	q.Enqueue(checkMutation("c"))

	ops := q.All()
	require.Len(t, ops, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ops[0].ItemID, ops[1].ItemID, ops[2].ItemID})
}

func TestQueue_Enqueue_SameItemTwice_KeepsBoth(t *testing.T) {
	q, _ := newTestQueue(t)

	// Two mutations against the same item are both preserved, never merged.
	q.Enqueue(checkMutation("item-1"))
	q.Enqueue(models.PendingMutation{
		Kind:   models.MutationUpdate,
		Method: http.MethodPut,
		Path:   "/api/items/item-1",
		Body:   []byte(`{"name":"Milk 2%"}`),
		ItemID: "item-1",
	})

	require.Equal(t, 2, q.Len())
	ops := q.ListForTarget("item-1")
	require.Len(t, ops, 2)
	assert.Equal(t, models.MutationCheck, ops[0].Kind)
	assert.Equal(t, models.MutationUpdate, ops[1].Kind)
}

// ── Dequeue / Clear ──────────────────────────────────────────────────────────

func TestQueue_Dequeue_RemovesOnlyGivenID(t *testing.T) {
	q, _ := newTestQueue(t)

	first := q.Enqueue(checkMutation("a"))
	q.Enqueue(checkMutation("b"))

	q.Dequeue(first)

	ops := q.All()
	require.Len(t, ops, 1)
	assert.Equal(t, "b", ops[0].ItemID)
}

func TestQueue_Dequeue_AbsentID_NoOp(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Enqueue(checkMutation("a"))

	q.Dequeue("no-such-id")

	assert.Equal(t, 1, q.Len())
}

func TestQueue_Clear_EmptiesQueue(t *testing.T) {
	q, _ := newTestQueue(t)
	q.Enqueue(checkMutation("a"))
	q.Enqueue(checkMutation("b"))

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.All())
}

// ── persistence ──────────────────────────────────────────────────────────────

func TestQueue_Persistence_SurvivesRestart(t *testing.T) {
	kv := store.NewMemoryKV()
	q := New(kv, logger.Nop())

	q.Enqueue(checkMutation("a"))
	q.Enqueue(models.PendingMutation{
		Kind:   models.MutationCreate,
		Method: http.MethodPost,
		Path:   "/api/lists/l1/items",
		Body:   []byte(`{"name":"Bread"}`),
		ListID: "l1",
		ItemID: "b",
	})
	q.Enqueue(checkMutation("c"))

	// Fresh queue over the same store stands in for a process restart.
	restarted := New(kv, logger.Nop())
	ops := restarted.All()
	require.Len(t, ops, 3)
	assert.Equal(t, "a", ops[0].ItemID)
	assert.Equal(t, "b", ops[1].ItemID)
	assert.Equal(t, "c", ops[2].ItemID)
	assert.Equal(t, []byte(`{"name":"Bread"}`), ops[1].Body)
}

func TestQueue_New_MalformedPayload_StartsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), storageKey, []byte("{not json")))

	q := New(kv, logger.Nop())

	assert.Equal(t, 0, q.Len())
}

func TestQueue_Enqueue_PersistFailure_KeepsInMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKVStore(ctrl)
	kv.EXPECT().Get(gomock.Any(), storageKey).Return(nil, store.ErrKeyNotFound)
	kv.EXPECT().Set(gomock.Any(), storageKey, gomock.Any()).Return(errors.New("disk full"))

	q := New(kv, logger.Nop())
	q.Enqueue(checkMutation("a"))

	// Storage failure degrades durability, never availability.
	assert.Equal(t, 1, q.Len())
}

// ── codec ────────────────────────────────────────────────────────────────────

func TestCodec_RoundTrip(t *testing.T) {
	in := []models.PendingMutation{
		{
			ID:        "m-1",
			Kind:      models.MutationUpdate,
			Method:    http.MethodPut,
			Path:      "/api/items/i1",
			Body:      []byte(`{"quantity":2}`),
			ListID:    "l1",
			ItemID:    "i1",
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	payload, err := encodeQueue(in)
	require.NoError(t, err)

	out, err := decodeQueue(payload)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCodec_Decode_EmptyPayload_ReturnsNil(t *testing.T) {
	out, err := decodeQueue(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
