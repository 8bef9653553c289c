// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/connectivity"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/queue"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/internal/syncer"
	"github.com/familylists/familylists-go/models"
)

// ClientServices bundles the client's long-lived collaborators behind one
// constructor so the application and the CLI commands wire them identically.
type ClientServices struct {
	Lists   *ListsService
	Engine  *syncer.Engine
	Streams *StreamManager
	Signal  *connectivity.Signal
	Queue   *queue.Queue
	Cache   cache.Cache
}

// NewClientServices assembles the sync core on top of the given storages and
// server adapter.
func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, srv adapter.ServerAdapter, tokens auth.TokenProvider, log *logger.Logger) *ClientServices {
	c := cache.NewMemory()
	sig := connectivity.NewSignal(log)
	q := queue.New(storages.KV, log)
	views := NewViewStore(storages.KV, log)

	return &ClientServices{
		Lists:   NewListsService(srv, q, c, views, sig, log),
		Engine:  syncer.NewEngine(srv, q, c, log),
		Streams: NewStreamManager(cfg.Adapter.BaseURL, cfg.Stream, tokens, c, log),
		Signal:  sig,
		Queue:   q,
		Cache:   c,
	}
}

// Status rolls the sync-layer state for one list into the value the UI
// renders in its status bar.
func (s *ClientServices) Status(listID string) models.SyncStatus {
	status := models.SyncStatus{
		Online:       s.Signal.IsOnline(),
		Syncing:      s.Engine.Syncing(),
		Paused:       s.Engine.Paused(),
		PendingCount: s.Queue.Len(),
		StreamState:  models.StreamClosed,
	}
	if listID != "" {
		status.StreamState = s.Streams.State(listID)
	}
	return status
}

// Close releases long-lived resources: open streams and the local database.
func (s *ClientServices) Close(storages *store.ClientStorages) {
	s.Streams.CloseAll()
	if storages != nil {
		storages.Close()
	}
}

// HandleOnline reacts to a connectivity transition. Coming online drains the
// pending queue and then drops every cached view so reads refetch fresh
// server state; going offline only records the state.
func (s *ClientServices) HandleOnline(ctx context.Context, online bool) {
	if !online {
		return
	}
	s.Engine.Drain(ctx)
	s.Cache.InvalidateAll()
}
