// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sync"

	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/internal/stream"
	"github.com/familylists/familylists-go/models"
)

// StreamManager keeps at most one live event stream per list. Screens call
// Watch when a list becomes visible and Unwatch when it leaves the screen.
type StreamManager struct {
	baseURL string
	cfg     config.ClientStream
	tokens  auth.TokenProvider
	cache   cache.Cache
	logger  *logger.Logger

	mu      sync.Mutex
	clients map[string]*stream.Client
}

// NewStreamManager constructs a StreamManager.
func NewStreamManager(baseURL string, cfg config.ClientStream, tokens auth.TokenProvider, c cache.Cache, log *logger.Logger) *StreamManager {
	return &StreamManager{
		baseURL: baseURL,
		cfg:     cfg,
		tokens:  tokens,
		cache:   c,
		logger:  log,
		clients: make(map[string]*stream.Client),
	}
}

// Watch ensures a stream client is running for listID. Watching an already
// watched list is a no-op, except that a failed stream is restarted.
func (m *StreamManager) Watch(ctx context.Context, listID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[listID]; ok {
		if c.State() == models.StreamFailed {
			c.Retry(ctx)
		}
		return
	}

	c := stream.NewClient(m.baseURL, listID, m.cfg, m.tokens, m.cache, m.logger)
	m.clients[listID] = c
	c.Start(ctx)
}

// Unwatch closes and forgets the stream for listID, if any.
func (m *StreamManager) Unwatch(listID string) {
	m.mu.Lock()
	c, ok := m.clients[listID]
	delete(m.clients, listID)
	m.mu.Unlock()

	if ok {
		c.Close()
	}
}

// Retry restarts every stream that has exhausted its reconnect attempts.
// Fresh streams are untouched; their attempt counters keep running.
func (m *StreamManager) Retry(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.clients {
		if c.State() == models.StreamFailed {
			c.Retry(ctx)
		}
	}
}

// State reports the stream state for listID. Lists without a stream report
// StreamClosed.
func (m *StreamManager) State(listID string) models.StreamState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[listID]; ok {
		return c.State()
	}
	return models.StreamClosed
}

// AnyFailed reports whether at least one stream has given up reconnecting.
func (m *StreamManager) AnyFailed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.clients {
		if c.State() == models.StreamFailed {
			return true
		}
	}
	return false
}

// CloseAll shuts down every stream. Used on application exit.
func (m *StreamManager) CloseAll() {
	m.mu.Lock()
	clients := make([]*stream.Client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	m.clients = make(map[string]*stream.Client)
	m.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}
