// SPDX-License-Identifier: Apache-2.0

// Package tui implements the terminal user interface: the list index and
// list detail screens, the sync status bar, and the key bindings that drive
// optimistic mutations through the service layer.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/service"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// MainLoop runs the interactive UI and blocks until the user quits.
func (t *TUI) MainLoop(ctx context.Context) error {
	invalidated := make(chan string, 16)
	unsubscribe := t.services.Cache.OnInvalidate(func(key string) {
		select {
		case invalidated <- key:
		default:
		}
	})
	defer unsubscribe()

	model := newAppModel(ctx, t.services, invalidated)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
