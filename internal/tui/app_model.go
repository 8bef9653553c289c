// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/service"
	"github.com/familylists/familylists-go/models"
)

type screen int

const (
	screenLists screen = iota
	screenDetail
	screenInput
)

// inputTarget records what the text input submits to.
type inputTarget int

const (
	inputNewList inputTarget = iota
	inputNewItem
)

type appModel struct {
	ctx         context.Context
	services    *service.ClientServices
	invalidated <-chan string

	screen      screen
	inputFor    inputTarget
	inputReturn screen

	lists     []models.List
	listIdx   int
	detail    models.ListDetail
	detailIdx int

	input   textinput.Model
	spinner spinner.Model
	status  models.SyncStatus
	notice  string
	lastErr error
	loading bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, invalidated <-chan string) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	in := textinput.New()
	in.CharLimit = 120

	return appModel{
		ctx:         ctx,
		services:    services,
		invalidated: invalidated,
		spinner:     s,
		input:       in,
		loading:     true,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadListsCmd(),
		m.spinner.Tick,
		m.waitInvalidateCmd(),
		statusTickCmd(),
	)
}

// ── commands ────────────────────────────────────────────────────────────────

func (m appModel) loadListsCmd() tea.Cmd {
	return func() tea.Msg {
		lists, err := m.services.Lists.Lists(m.ctx)
		return listsLoadedMsg{lists: lists, err: err}
	}
}

func (m appModel) loadDetailCmd(listID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.services.Lists.List(m.ctx, listID)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

func (m appModel) mutateCmd(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: fn(m.ctx)}
	}
}

func (m appModel) waitInvalidateCmd() tea.Cmd {
	return func() tea.Msg {
		key, ok := <-m.invalidated
		if !ok {
			return nil
		}
		return cacheInvalidatedMsg{key: key}
	}
}

func statusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// ── update ──────────────────────────────────────────────────────────────────

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusTickMsg:
		m.status = m.services.Status(m.currentListID())
		return m, statusTickCmd()

	case cacheInvalidatedMsg:
		return m, tea.Batch(m.reloadCmd(msg.key), m.waitInvalidateCmd())

	case listsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.lists = msg.lists
		if m.listIdx >= len(m.lists) {
			m.listIdx = max(0, len(m.lists)-1)
		}
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.detail = msg.detail
		if m.detailIdx >= len(m.detail.Items) {
			m.detailIdx = max(0, len(m.detail.Items)-1)
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
		} else {
			m.lastErr = nil
		}
		m.status = m.services.Status(m.currentListID())
		return m, m.reloadCurrentCmd()

	case copiedMsg:
		m.notice = "copied"
		return m, clearNoticeCmd()

	case clearNoticeMsg:
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenInput {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.resume):
		// One key recovers both halves of the sync layer: a queue paused by
		// an auth failure and streams that exhausted their reconnects.
		return m, m.mutateCmd(func(ctx context.Context) error {
			m.services.Streams.Retry(ctx)
			m.services.Engine.Resume(ctx)
			return nil
		})

	case key.Matches(msg, keys.refresh):
		m.services.Cache.InvalidateAll()
		return m, m.reloadCurrentCmd()
	}

	if m.screen == screenLists {
		return m.handleListsKey(msg)
	}
	return m.handleDetailKey(msg)
}

func (m appModel) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.listIdx > 0 {
			m.listIdx--
		}
	case key.Matches(msg, keys.down):
		if m.listIdx < len(m.lists)-1 {
			m.listIdx++
		}
	case key.Matches(msg, keys.enter):
		if l, ok := m.currentList(); ok {
			m.screen = screenDetail
			m.detailIdx = 0
			m.loading = true
			m.services.Streams.Watch(m.ctx, l.ID)
			return m, m.loadDetailCmd(l.ID)
		}
	case key.Matches(msg, keys.newItem):
		m.inputFor = inputNewList
		m.inputReturn = screenLists
		m.screen = screenInput
		m.input.Placeholder = "new list name"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.delete):
		if l, ok := m.currentList(); ok {
			listID := l.ID
			return m, m.mutateCmd(func(ctx context.Context) error {
				return m.services.Lists.DeleteList(ctx, listID)
			})
		}
	}
	return m, nil
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.services.Streams.Unwatch(m.detail.ID)
		m.screen = screenLists
		return m, m.loadListsCmd()

	case key.Matches(msg, keys.up):
		if m.detailIdx > 0 {
			m.detailIdx--
		}
	case key.Matches(msg, keys.down):
		if m.detailIdx < len(m.detail.Items)-1 {
			m.detailIdx++
		}

	case key.Matches(msg, keys.check):
		if it, ok := m.currentItem(); ok {
			listID, itemID, checked := m.detail.ID, it.ID, it.IsChecked
			return m, m.mutateCmd(func(ctx context.Context) error {
				if checked {
					return m.services.Lists.UncheckItem(ctx, listID, itemID)
				}
				return m.services.Lists.CheckItem(ctx, listID, itemID)
			})
		}

	case key.Matches(msg, keys.newItem):
		m.inputFor = inputNewItem
		m.inputReturn = screenDetail
		m.screen = screenInput
		m.input.Placeholder = "new item"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.delete):
		if it, ok := m.currentItem(); ok {
			listID, itemID := m.detail.ID, it.ID
			return m, m.mutateCmd(func(ctx context.Context) error {
				return m.services.Lists.DeleteItem(ctx, listID, itemID)
			})
		}

	case key.Matches(msg, keys.clear):
		listID := m.detail.ID
		return m, m.mutateCmd(func(ctx context.Context) error {
			return m.services.Lists.ClearList(ctx, listID)
		})

	case key.Matches(msg, keys.undo):
		listID := m.detail.ID
		return m, m.mutateCmd(func(ctx context.Context) error {
			return m.services.Lists.RestoreList(ctx, listID)
		})

	case key.Matches(msg, keys.copy):
		if it, ok := m.currentItem(); ok {
			name := it.Name
			return m, func() tea.Msg {
				_ = clipboard.WriteAll(name)
				return copiedMsg{}
			}
		}
	}
	return m, nil
}

func (m appModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = m.inputReturn
		return m, nil

	case key.Matches(msg, keys.enter):
		value := strings.TrimSpace(m.input.Value())
		m.screen = m.inputReturn
		if value == "" {
			return m, nil
		}
		switch m.inputFor {
		case inputNewList:
			return m, m.mutateCmd(func(ctx context.Context) error {
				_, err := m.services.Lists.CreateList(ctx, models.ListCreate{Name: value, Type: models.ListTypeGrocery})
				return err
			})
		case inputNewItem:
			listID := m.detail.ID
			return m, m.mutateCmd(func(ctx context.Context) error {
				return m.services.Lists.AddItem(ctx, listID, models.ItemCreate{Name: value})
			})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (m appModel) currentListID() string {
	if m.screen == screenDetail || (m.screen == screenInput && m.inputReturn == screenDetail) {
		return m.detail.ID
	}
	return ""
}

func (m appModel) currentList() (models.List, bool) {
	if len(m.lists) == 0 || m.listIdx < 0 || m.listIdx >= len(m.lists) {
		return models.List{}, false
	}
	return m.lists[m.listIdx], true
}

func (m appModel) currentItem() (models.Item, bool) {
	if len(m.detail.Items) == 0 || m.detailIdx < 0 || m.detailIdx >= len(m.detail.Items) {
		return models.Item{}, false
	}
	return m.detail.Items[m.detailIdx], true
}

// reloadCmd refetches the view a cache invalidation touched, but only when
// that view is on screen.
func (m appModel) reloadCmd(key string) tea.Cmd {
	switch {
	case key == cache.ListIndexKey() && m.screen == screenLists:
		return m.loadListsCmd()
	case m.screen == screenDetail && key == cache.ListDetailKey(m.detail.ID):
		return m.loadDetailCmd(m.detail.ID)
	}
	return nil
}

func (m appModel) reloadCurrentCmd() tea.Cmd {
	if m.screen == screenDetail {
		return m.loadDetailCmd(m.detail.ID)
	}
	return m.loadListsCmd()
}
