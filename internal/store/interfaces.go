// SPDX-License-Identifier: Apache-2.0

// Package store provides the durable local persistence layer of the
// familylists client: a small key-value contract used by the mutation queue
// and the cache dehydration path, backed by a local SQLite database.
//
// Storage is best-effort by design. Callers keep their in-memory state
// authoritative for the session; a persistence failure degrades durability,
// never availability.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is the durable key-value capability the sync core persists through.
type KVStore interface {
	// Get returns the value stored under key. Returns ErrKeyNotFound if the
	// key has never been set or has been deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
