// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/models"
)

const (
	viewIndexKey     = "view:lists"
	viewDetailPrefix = "view:list:"
)

// ViewStore persists the list views to the key-value store so the client
// starts with data before (or without) the first network round trip.
// Persistence is best effort: storage failures are logged and swallowed.
type ViewStore struct {
	kv     store.KVStore
	logger *logger.Logger
}

// NewViewStore constructs a ViewStore over the given key-value store.
func NewViewStore(kv store.KVStore, log *logger.Logger) *ViewStore {
	return &ViewStore{kv: kv, logger: log}
}

// SaveIndex persists the list index view.
func (v *ViewStore) SaveIndex(ctx context.Context, lists []models.List) {
	v.save(ctx, viewIndexKey, lists)
}

// SaveDetail persists one list's detail view.
func (v *ViewStore) SaveDetail(ctx context.Context, detail models.ListDetail) {
	v.save(ctx, viewDetailPrefix+detail.ID, detail)
}

// DeleteDetail drops one list's persisted detail view.
func (v *ViewStore) DeleteDetail(ctx context.Context, listID string) {
	if err := v.kv.Delete(ctx, viewDetailPrefix+listID); err != nil {
		v.logger.Warn().Err(err).Str("list_id", listID).Msg("delete persisted view")
	}
}

// LoadIndex returns the persisted list index, if any.
func (v *ViewStore) LoadIndex(ctx context.Context) ([]models.List, bool) {
	var lists []models.List
	if !v.load(ctx, viewIndexKey, &lists) {
		return nil, false
	}
	return lists, true
}

// LoadDetail returns one list's persisted detail view, if any.
func (v *ViewStore) LoadDetail(ctx context.Context, listID string) (models.ListDetail, bool) {
	var detail models.ListDetail
	if !v.load(ctx, viewDetailPrefix+listID, &detail) {
		return models.ListDetail{}, false
	}
	return detail, true
}

func (v *ViewStore) save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		v.logger.Warn().Err(err).Str("key", key).Msg("encode view")
		return
	}
	if err := v.kv.Set(ctx, key, raw); err != nil {
		v.logger.Warn().Err(err).Str("key", key).Msg("persist view")
	}
}

func (v *ViewStore) load(ctx context.Context, key string, dst any) bool {
	raw, err := v.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			v.logger.Warn().Err(err).Str("key", key).Msg("load persisted view")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		v.logger.Warn().Err(err).Str("key", key).Msg("decode persisted view")
		return false
	}
	return true
}
