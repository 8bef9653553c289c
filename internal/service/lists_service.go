// SPDX-License-Identifier: Apache-2.0

// Package service implements the client-side application services: the
// optimistic cache updater for list and item writes, the per-list stream
// manager, and the aggregate sync status surfaced to the UI.
//
// Every write follows the same contract: snapshot the affected cached views
// at dispatch time, apply the speculative change synchronously, then issue
// the network request. Success reconciles the cache with the authoritative
// server response; an HTTP-level failure restores the exact pre-mutation
// snapshot and surfaces the error; a transport-level failure (offline) keeps
// the speculative state and appends the mutation to the persistent queue for
// replay.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/connectivity"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/queue"
	"github.com/familylists/familylists-go/models"
)

// ListsService owns the list/item views in the cache and funnels every
// mutation through the optimistic-update protocol.
type ListsService struct {
	adapter adapter.ServerAdapter
	queue   *queue.Queue
	cache   cache.Cache
	views   *ViewStore
	signal  *connectivity.Signal
	logger  *logger.Logger

	// now is the client-side timestamp source for speculative fields,
	// overridable in tests.
	now func() time.Time
}

// NewListsService constructs a ListsService.
func NewListsService(srv adapter.ServerAdapter, q *queue.Queue, c cache.Cache, views *ViewStore, sig *connectivity.Signal, log *logger.Logger) *ListsService {
	return &ListsService{
		adapter: srv,
		queue:   q,
		cache:   c,
		views:   views,
		signal:  sig,
		logger:  log,
		now:     time.Now,
	}
}

// Hydrate seeds the in-memory cache from the last persisted views so the UI
// has data before the first network round trip, or without one when offline.
func (s *ListsService) Hydrate(ctx context.Context) {
	lists, ok := s.views.LoadIndex(ctx)
	if !ok {
		return
	}
	s.cache.Set(cache.ListIndexKey(), lists)
	for _, l := range lists {
		if detail, ok := s.views.LoadDetail(ctx, l.ID); ok {
			s.cache.Set(cache.ListDetailKey(l.ID), detail)
		}
	}
}

// ── reads ───────────────────────────────────────────────────────────────────

// Lists returns the list index, from cache when fresh, otherwise fetched.
func (s *ListsService) Lists(ctx context.Context) ([]models.List, error) {
	if v, ok := s.cache.Get(cache.ListIndexKey()); ok {
		if lists, ok := v.([]models.List); ok {
			return lists, nil
		}
	}

	lists, err := s.adapter.GetLists(ctx)
	if err != nil {
		// Offline fetch falls back to the last persisted view.
		if stale, ok := s.views.LoadIndex(ctx); ok && s.isOffline(err) {
			s.cache.Set(cache.ListIndexKey(), stale)
			return stale, nil
		}
		return nil, fmt.Errorf("fetch lists: %w", err)
	}
	s.cache.Set(cache.ListIndexKey(), lists)
	s.views.SaveIndex(ctx, lists)

	return lists, nil
}

// List returns one list's detail view, from cache when fresh, otherwise
// fetched.
func (s *ListsService) List(ctx context.Context, listID string) (models.ListDetail, error) {
	if v, ok := s.cache.Get(cache.ListDetailKey(listID)); ok {
		if detail, ok := v.(models.ListDetail); ok {
			return detail, nil
		}
	}

	detail, err := s.adapter.GetList(ctx, listID)
	if err != nil {
		if stale, ok := s.views.LoadDetail(ctx, listID); ok && s.isOffline(err) {
			s.cache.Set(cache.ListDetailKey(listID), stale)
			return stale, nil
		}
		return models.ListDetail{}, fmt.Errorf("fetch list %s: %w", listID, err)
	}
	s.cache.Set(cache.ListDetailKey(listID), detail)
	s.views.SaveDetail(ctx, detail)

	return detail, nil
}

// PendingForItem returns the queued mutations targeting itemID, used to
// render per-row pending markers.
func (s *ListsService) PendingForItem(itemID string) []models.PendingMutation {
	return s.queue.ListForTarget(itemID)
}

// ── item mutations ──────────────────────────────────────────────────────────

// CheckItem optimistically marks an item checked.
func (s *ListsService) CheckItem(ctx context.Context, listID, itemID string) error {
	snap := s.snapshotDetail(listID)

	now := s.now().UTC().Format(time.RFC3339)
	s.patchItem(listID, itemID, func(it *models.Item) {
		it.IsChecked = true
		it.CheckedAt = &now
	})

	item, err := s.adapter.CheckItem(ctx, itemID)
	if err == nil {
		s.reconcileItem(listID, item)
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationCheck,
			Method: http.MethodPost,
			Path:   "/api/items/" + itemID + "/check",
			ListID: listID,
			ItemID: itemID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("check item: %w", err)
}

// UncheckItem optimistically clears an item's checked state.
func (s *ListsService) UncheckItem(ctx context.Context, listID, itemID string) error {
	snap := s.snapshotDetail(listID)

	s.patchItem(listID, itemID, func(it *models.Item) {
		it.IsChecked = false
		it.CheckedAt = nil
		it.CheckedBy = nil
	})

	item, err := s.adapter.UncheckItem(ctx, itemID)
	if err == nil {
		s.reconcileItem(listID, item)
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationUncheck,
			Method: http.MethodPost,
			Path:   "/api/items/" + itemID + "/uncheck",
			ListID: listID,
			ItemID: itemID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("uncheck item: %w", err)
}

// AddItem optimistically appends an item with a client-generated id. On
// success the speculative row is replaced by the server's items (the backend
// may split one request into several).
func (s *ListsService) AddItem(ctx context.Context, listID string, create models.ItemCreate) error {
	snap := s.snapshotDetail(listID)

	speculativeID := uuid.NewString()
	now := s.now().UTC().Format(time.RFC3339)
	quantity := create.Quantity
	if quantity == 0 {
		quantity = 1
	}
	s.patchDetail(listID, func(d *models.ListDetail) {
		d.Items = append(d.Items, models.Item{
			ID:        speculativeID,
			ListID:    listID,
			Name:      create.Name,
			Quantity:  quantity,
			Unit:      create.Unit,
			Notes:     create.Notes,
			Priority:  create.Priority,
			DueDate:   create.DueDate,
			SortOrder: len(d.Items),
			CreatedAt: now,
			UpdatedAt: now,
		})
	})

	items, err := s.adapter.CreateItem(ctx, listID, create)
	if err == nil {
		s.patchDetail(listID, func(d *models.ListDetail) {
			kept := d.Items[:0]
			for _, it := range d.Items {
				if it.ID != speculativeID {
					kept = append(kept, it)
				}
			}
			d.Items = append(kept, items...)
		})
		s.cache.Invalidate(cache.ListIndexKey())
		return nil
	}

	if s.isOffline(err) {
		body, mErr := json.Marshal(create)
		if mErr != nil {
			s.restoreDetail(listID, snap)
			return fmt.Errorf("encode create item: %w", mErr)
		}
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationCreate,
			Method: http.MethodPost,
			Path:   "/api/lists/" + listID + "/items",
			Body:   body,
			ListID: listID,
			ItemID: speculativeID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("add item: %w", err)
}

// UpdateItem optimistically applies a partial item update.
func (s *ListsService) UpdateItem(ctx context.Context, listID, itemID string, update models.ItemUpdate) error {
	snap := s.snapshotDetail(listID)

	s.patchItem(listID, itemID, func(it *models.Item) {
		applyItemUpdate(it, update)
	})

	item, err := s.adapter.UpdateItem(ctx, itemID, update)
	if err == nil {
		s.reconcileItem(listID, item)
		return nil
	}

	if s.isOffline(err) {
		body, mErr := json.Marshal(update)
		if mErr != nil {
			s.restoreDetail(listID, snap)
			return fmt.Errorf("encode update item: %w", mErr)
		}
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationUpdate,
			Method: http.MethodPut,
			Path:   "/api/items/" + itemID,
			Body:   body,
			ListID: listID,
			ItemID: itemID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("update item: %w", err)
}

// DeleteItem optimistically removes an item.
func (s *ListsService) DeleteItem(ctx context.Context, listID, itemID string) error {
	snap := s.snapshotDetail(listID)

	s.patchDetail(listID, func(d *models.ListDetail) {
		kept := d.Items[:0]
		for _, it := range d.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		d.Items = kept
	})

	err := s.adapter.DeleteItem(ctx, itemID)
	if err == nil {
		s.cache.Invalidate(cache.ListIndexKey())
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationDelete,
			Method: http.MethodDelete,
			Path:   "/api/items/" + itemID,
			ListID: listID,
			ItemID: itemID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("delete item: %w", err)
}

// ── list mutations ──────────────────────────────────────────────────────────

// CreateList creates a list. List creation is not speculative: the detail
// screen needs the server-assigned id, so offline creation is queued without
// an optimistic row.
func (s *ListsService) CreateList(ctx context.Context, create models.ListCreate) (models.ListDetail, error) {
	detail, err := s.adapter.CreateList(ctx, create)
	if err == nil {
		s.cache.Set(cache.ListDetailKey(detail.ID), detail)
		s.cache.Invalidate(cache.ListIndexKey())
		return detail, nil
	}

	if s.isOffline(err) {
		body, mErr := json.Marshal(create)
		if mErr != nil {
			return models.ListDetail{}, fmt.Errorf("encode create list: %w", mErr)
		}
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationCreate,
			Method: http.MethodPost,
			Path:   "/api/lists",
			Body:   body,
		})
		return models.ListDetail{}, nil
	}

	return models.ListDetail{}, fmt.Errorf("create list: %w", err)
}

// UpdateList optimistically applies a partial list update.
func (s *ListsService) UpdateList(ctx context.Context, listID string, update models.ListUpdate) error {
	detailSnap := s.snapshotDetail(listID)
	indexSnap := s.snapshotIndex()

	apply := func(l *models.List) {
		if update.Name != nil {
			l.Name = *update.Name
		}
		if update.Icon != nil {
			l.Icon = update.Icon
		}
		if update.Color != nil {
			l.Color = update.Color
		}
	}
	s.patchDetail(listID, func(d *models.ListDetail) { apply(&d.List) })
	s.patchIndex(func(lists []models.List) []models.List {
		for i := range lists {
			if lists[i].ID == listID {
				apply(&lists[i])
			}
		}
		return lists
	})

	_, err := s.adapter.UpdateList(ctx, listID, update)
	if err == nil {
		s.cache.Invalidate(cache.ListDetailKey(listID))
		s.cache.Invalidate(cache.ListIndexKey())
		return nil
	}

	if s.isOffline(err) {
		body, mErr := json.Marshal(update)
		if mErr != nil {
			s.restoreDetail(listID, detailSnap)
			s.restoreIndex(indexSnap)
			return fmt.Errorf("encode update list: %w", mErr)
		}
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationUpdate,
			Method: http.MethodPut,
			Path:   "/api/lists/" + listID,
			Body:   body,
			ListID: listID,
		})
		return nil
	}

	s.restoreDetail(listID, detailSnap)
	s.restoreIndex(indexSnap)
	return fmt.Errorf("update list: %w", err)
}

// DeleteList optimistically removes a list from the index.
func (s *ListsService) DeleteList(ctx context.Context, listID string) error {
	indexSnap := s.snapshotIndex()

	s.patchIndex(func(lists []models.List) []models.List {
		kept := lists[:0]
		for _, l := range lists {
			if l.ID != listID {
				kept = append(kept, l)
			}
		}
		return kept
	})
	s.cache.Invalidate(cache.ListDetailKey(listID))

	err := s.adapter.DeleteList(ctx, listID)
	if err == nil {
		s.views.DeleteDetail(ctx, listID)
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationDelete,
			Method: http.MethodDelete,
			Path:   "/api/lists/" + listID,
			ListID: listID,
		})
		return nil
	}

	s.restoreIndex(indexSnap)
	return fmt.Errorf("delete list: %w", err)
}

// DuplicateList copies a list server-side; there is no speculative variant
// because the copy's content is server-defined.
func (s *ListsService) DuplicateList(ctx context.Context, listID string) (models.ListDetail, error) {
	detail, err := s.adapter.DuplicateList(ctx, listID)
	if err != nil {
		return models.ListDetail{}, fmt.Errorf("duplicate list: %w", err)
	}

	s.cache.Set(cache.ListDetailKey(detail.ID), detail)
	s.cache.Invalidate(cache.ListIndexKey())
	return detail, nil
}

// ClearList optimistically removes all checked items from a list.
func (s *ListsService) ClearList(ctx context.Context, listID string) error {
	snap := s.snapshotDetail(listID)

	s.patchDetail(listID, func(d *models.ListDetail) {
		kept := d.Items[:0]
		for _, it := range d.Items {
			if !it.IsChecked {
				kept = append(kept, it)
			}
		}
		d.Items = kept
	})

	err := s.adapter.ClearList(ctx, listID)
	if err == nil {
		s.cache.Invalidate(cache.ListDetailKey(listID))
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationClear,
			Method: http.MethodPost,
			Path:   "/api/lists/" + listID + "/clear",
			ListID: listID,
		})
		return nil
	}

	s.restoreDetail(listID, snap)
	return fmt.Errorf("clear list: %w", err)
}

// RestoreList undoes the last clear. The restored rows are unknown locally,
// so there is no speculative apply; success invalidates for a refetch.
func (s *ListsService) RestoreList(ctx context.Context, listID string) error {
	err := s.adapter.RestoreList(ctx, listID)
	if err == nil {
		s.cache.Invalidate(cache.ListDetailKey(listID))
		return nil
	}

	if s.isOffline(err) {
		s.enqueue(models.PendingMutation{
			Kind:   models.MutationRestore,
			Method: http.MethodPost,
			Path:   "/api/lists/" + listID + "/restore",
			ListID: listID,
		})
		return nil
	}

	return fmt.Errorf("restore list: %w", err)
}

// ── helpers ─────────────────────────────────────────────────────────────────

// isOffline classifies a mutation failure. Transport-level errors mean the
// write may never have reached the server: the speculative state stays and
// the mutation is queued. A definitive server answer rolls back instead.
// When the connectivity signal already reports offline, any failure queues.
func (s *ListsService) isOffline(err error) bool {
	if errors.Is(err, adapter.ErrNetwork) {
		return true
	}
	return !s.signal.IsOnline()
}

func (s *ListsService) enqueue(op models.PendingMutation) {
	id := s.queue.Enqueue(op)
	s.logger.Info().
		Str("mutation_id", id).
		Str("kind", op.Kind).
		Str("path", op.Path).
		Msg("offline, mutation queued for replay")
}

func applyItemUpdate(it *models.Item, update models.ItemUpdate) {
	if update.Name != nil {
		it.Name = *update.Name
	}
	if update.Quantity != nil {
		it.Quantity = *update.Quantity
	}
	if update.Unit != nil {
		it.Unit = update.Unit
	}
	if update.Notes != nil {
		it.Notes = update.Notes
	}
	if update.CategoryID != nil {
		it.CategoryID = update.CategoryID
	}
	if update.Magnitude != nil {
		it.Magnitude = update.Magnitude
	}
	if update.AssignedTo != nil {
		it.AssignedTo = update.AssignedTo
	}
	if update.Priority != nil {
		it.Priority = update.Priority
	}
	if update.DueDate != nil {
		it.DueDate = update.DueDate
	}
	if update.Status != nil {
		it.Status = update.Status
	}
	if update.SortOrder != nil {
		it.SortOrder = *update.SortOrder
	}
}
