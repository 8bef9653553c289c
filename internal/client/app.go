// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/service"
	"github.com/familylists/familylists-go/internal/store"
	"github.com/familylists/familylists-go/internal/tui"
	"github.com/familylists/familylists-go/internal/workers"
)

// App is the interactive familylists client: TUI on top of the sync core,
// with the connectivity prober and the periodic drain job running beside it.
type App struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	services *service.ClientServices
	tui      *tui.TUI
}

// NewApp assembles the client from configuration: storages, token provider,
// server adapter, services and the terminal UI.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	tokens := auth.NewFileTokenProvider(cfg.Auth.TokenFile)

	srv, err := adapter.NewHTTPServerAdapter(cfg.Adapter, tokens, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	svcs := service.NewClientServices(cfg, storages, srv, tokens, log)

	ui, err := tui.New(svcs, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	return &App{
		cfg:      cfg,
		log:      log,
		storages: storages,
		adapter:  srv,
		services: svcs,
		tui:      ui,
	}, nil
}

// Run starts the background workers and blocks in the UI main loop until the
// user quits.
func (a *App) Run() error {
	ctx := context.Background()
	defer a.services.Close(a.storages)

	// Seed the cache from the last persisted views so the first screen has
	// data even before the server answers.
	a.services.Lists.Hydrate(ctx)

	// Reconnect transitions drain the queue and drop cached views.
	unsubscribe := a.services.Signal.Subscribe(func(online bool) {
		go a.services.HandleOnline(ctx, online)
	})
	defer unsubscribe()

	ws := workers.NewWorkers(
		workers.NewProber(a.adapter, a.services.Signal, a.cfg.Workers.ProbeInterval, a.log),
		workers.NewSyncJob(a.services.Engine, a.cfg.Workers.SyncInterval),
	)
	ws.Run()
	defer ws.Stop()

	// Mutations queued in a previous session replay as soon as we start.
	go a.services.Engine.Drain(ctx)

	return a.tui.MainLoop(ctx)
}
