// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer for communicating with the
// familylists backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service and
// sync layers from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// A bearer token is fetched fresh from the [auth.TokenProvider] for every
// request attempt: a token cached when a mutation was enqueued may be stale
// by the time the queue replays it. Error values defined in errors.go are
// mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g. [ErrUnauthorized]
// for 401, [ErrNetwork] for transport failures).
package adapter

import (
	"context"

	"github.com/familylists/familylists-go/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the familylists
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// GetLists fetches the list index.
	GetLists(ctx context.Context) ([]models.List, error)

	// GetList fetches one list with all of its items.
	GetList(ctx context.Context, listID string) (models.ListDetail, error)

	// CreateList creates a new list and returns it with its (empty) items.
	CreateList(ctx context.Context, req models.ListCreate) (models.ListDetail, error)

	// UpdateList updates the mutable fields of a list.
	UpdateList(ctx context.Context, listID string, req models.ListUpdate) (models.List, error)

	// DeleteList removes a list and all of its items.
	DeleteList(ctx context.Context, listID string) error

	// DuplicateList creates a copy of a list including its items.
	DuplicateList(ctx context.Context, listID string) (models.ListDetail, error)

	// GetItems fetches the items of a list in sort order.
	GetItems(ctx context.Context, listID string) ([]models.Item, error)

	// CreateItem adds an item to a list. The backend may split one request
	// into several created items (e.g. "milk, eggs"), so it returns a slice.
	CreateItem(ctx context.Context, listID string, req models.ItemCreate) ([]models.Item, error)

	// UpdateItem updates the mutable fields of an item.
	UpdateItem(ctx context.Context, itemID string, req models.ItemUpdate) (models.Item, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, itemID string) error

	// CheckItem marks an item checked and returns the authoritative item,
	// including server-assigned checked_by/checked_at.
	CheckItem(ctx context.Context, itemID string) (models.Item, error)

	// UncheckItem clears an item's checked state and returns the
	// authoritative item.
	UncheckItem(ctx context.Context, itemID string) (models.Item, error)

	// ClearList removes all checked items from a list.
	ClearList(ctx context.Context, listID string) error

	// RestoreList restores the items removed by the last clear.
	RestoreList(ctx context.Context, listID string) error

	// Replay re-issues a queued mutation exactly as recorded: same method,
	// path and body. Used by the sync engine's drain pass.
	Replay(ctx context.Context, op models.PendingMutation) error

	// Health probes the backend health endpoint without authentication.
	// Used by the connectivity prober.
	Health(ctx context.Context) error
}
