// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/models"
)

// detailSnapshot is the pre-mutation copy of one list's detail view, captured
// at dispatch time. present distinguishes "view was cached as empty" from
// "view was not cached at all" so a rollback can recreate either state.
type detailSnapshot struct {
	detail  models.ListDetail
	present bool
}

type indexSnapshot struct {
	lists   []models.List
	present bool
}

func (s *ListsService) snapshotDetail(listID string) detailSnapshot {
	v, ok := s.cache.Get(cache.ListDetailKey(listID))
	if !ok {
		return detailSnapshot{}
	}
	detail, ok := v.(models.ListDetail)
	if !ok {
		return detailSnapshot{}
	}
	return detailSnapshot{detail: copyDetail(detail), present: true}
}

func (s *ListsService) restoreDetail(listID string, snap detailSnapshot) {
	if !snap.present {
		s.cache.Invalidate(cache.ListDetailKey(listID))
		return
	}
	s.cache.Set(cache.ListDetailKey(listID), snap.detail)
}

func (s *ListsService) snapshotIndex() indexSnapshot {
	v, ok := s.cache.Get(cache.ListIndexKey())
	if !ok {
		return indexSnapshot{}
	}
	lists, ok := v.([]models.List)
	if !ok {
		return indexSnapshot{}
	}
	return indexSnapshot{lists: copyLists(lists), present: true}
}

func (s *ListsService) restoreIndex(snap indexSnapshot) {
	if !snap.present {
		s.cache.Invalidate(cache.ListIndexKey())
		return
	}
	s.cache.Set(cache.ListIndexKey(), snap.lists)
}

// patchDetail applies fn to a fresh copy of the cached detail view and stores
// the result. A missing view is left missing: there is nothing to speculate
// on, the next read fetches from the server.
func (s *ListsService) patchDetail(listID string, fn func(*models.ListDetail)) {
	v, ok := s.cache.Get(cache.ListDetailKey(listID))
	if !ok {
		return
	}
	detail, ok := v.(models.ListDetail)
	if !ok {
		return
	}
	next := copyDetail(detail)
	fn(&next)
	s.cache.Set(cache.ListDetailKey(listID), next)
}

func (s *ListsService) patchItem(listID, itemID string, fn func(*models.Item)) {
	s.patchDetail(listID, func(d *models.ListDetail) {
		for i := range d.Items {
			if d.Items[i].ID == itemID {
				fn(&d.Items[i])
			}
		}
	})
}

// patchIndex applies fn to a fresh copy of the cached list index and stores
// the returned slice.
func (s *ListsService) patchIndex(fn func([]models.List) []models.List) {
	v, ok := s.cache.Get(cache.ListIndexKey())
	if !ok {
		return
	}
	lists, ok := v.([]models.List)
	if !ok {
		return
	}
	s.cache.Set(cache.ListIndexKey(), fn(copyLists(lists)))
}

// reconcileItem replaces the cached row with the server's authoritative item.
func (s *ListsService) reconcileItem(listID string, item models.Item) {
	s.patchDetail(listID, func(d *models.ListDetail) {
		for i := range d.Items {
			if d.Items[i].ID == item.ID {
				d.Items[i] = item
			}
		}
	})
}

// copyDetail deep-copies a detail view, including every pointer field, so a
// retained snapshot can never alias the live cache entry.
func copyDetail(d models.ListDetail) models.ListDetail {
	out := d
	out.Items = make([]models.Item, len(d.Items))
	for i, it := range d.Items {
		out.Items[i] = copyItem(it)
	}
	out.List = copyList(d.List)
	return out
}

func copyLists(lists []models.List) []models.List {
	out := make([]models.List, len(lists))
	for i, l := range lists {
		out[i] = copyList(l)
	}
	return out
}

func copyList(l models.List) models.List {
	out := l
	out.Icon = copyStrPtr(l.Icon)
	out.Color = copyStrPtr(l.Color)
	out.OwnerID = copyStrPtr(l.OwnerID)
	return out
}

func copyItem(it models.Item) models.Item {
	out := it
	out.CategoryID = copyStrPtr(it.CategoryID)
	out.Unit = copyStrPtr(it.Unit)
	out.Notes = copyStrPtr(it.Notes)
	out.CheckedBy = copyStrPtr(it.CheckedBy)
	out.CheckedAt = copyStrPtr(it.CheckedAt)
	out.Magnitude = copyStrPtr(it.Magnitude)
	out.AssignedTo = copyStrPtr(it.AssignedTo)
	out.Priority = copyStrPtr(it.Priority)
	out.DueDate = copyStrPtr(it.DueDate)
	out.Status = copyStrPtr(it.Status)
	out.CreatedBy = copyStrPtr(it.CreatedBy)
	return out
}

func copyStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
