// SPDX-License-Identifier: Apache-2.0

// Package stream implements the per-list realtime stream client over
// Server-Sent Events.
//
// The stream is a best-effort invalidation signal, not a source of truth:
// event payloads are never applied to the cache directly. Any change event
// only schedules a debounced invalidation of the affected list's detail view
// and the list index; the refetch that follows is authoritative. Debouncing
// matters because server-side batch operations ("clear all completed") emit
// one event per affected item, and each would otherwise trigger a redundant
// full refetch.
//
// Lifecycle per connection: connecting → open → (closed → reconnecting →
// connecting) | failed. Reconnects back off exponentially with jitter and
// are capped; after the cap the client reports a failed state and waits for
// a manual Retry.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/models"
)

// Client is one realtime channel for one list. At most one live connection
// per list id at a time: Start is rejected while the client is running.
type Client struct {
	listID string
	cfg    config.ClientStream
	tokens auth.TokenProvider
	cache  cache.Cache
	httpc  *resty.Client
	logger *logger.Logger

	// jitter returns the random component added to each backoff delay.
	// Overridable in tests for determinism.
	jitter func() time.Duration

	mu       sync.Mutex
	state    models.StreamState
	attempts int
	debounce *time.Timer // single cancellable slot, reset per event burst
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewClient constructs a stopped stream client for listID. The dedicated
// resty client carries no timeout: an SSE connection is supposed to stay open
// indefinitely.
func NewClient(baseURL, listID string, cfg config.ClientStream, tokens auth.TokenProvider, c cache.Cache, log *logger.Logger) *Client {
	httpc := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))

	return &Client{
		listID: listID,
		cfg:    cfg,
		tokens: tokens,
		cache:  c,
		httpc:  httpc,
		logger: log,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(250 * time.Millisecond)))
		},
		state: models.StreamClosed,
	}
}

// Start launches the connect/reconnect loop. Calling Start while the client
// is already running is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.attempts = 0
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(runCtx)
}

// Close tears down the connection, cancels the pending debounce timer and
// waits for the loop to exit. Safe to call on a stopped client.
func (c *Client) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	c.setState(models.StreamClosed)
}

// Retry resets the attempt counter and dials again. It only acts when the
// client has exhausted its automatic reconnects (state failed).
func (c *Client) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.state != models.StreamFailed {
		c.mu.Unlock()
		return
	}
	c.attempts = 0
	c.cancel = nil
	c.mu.Unlock()

	c.wg.Wait() // previous loop has already returned in failed state
	c.Start(ctx)
}

// State returns the current connection state.
func (c *Client) State() models.StreamState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// ListID returns the list this client is subscribed to.
func (c *Client) ListID() string {
	return c.listID
}

func (c *Client) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		c.setState(models.StreamConnecting)

		err := c.connectAndConsume(ctx)
		if ctx.Err() != nil {
			c.setState(models.StreamClosed)
			return
		}

		c.mu.Lock()
		c.attempts++
		attempts := c.attempts
		c.mu.Unlock()

		if attempts >= c.cfg.MaxAttempts {
			c.logger.Warn().
				Err(err).
				Str("list_id", c.listID).
				Int("attempts", attempts).
				Msg("stream reconnect attempts exhausted")
			c.mu.Lock()
			c.state = models.StreamFailed
			c.cancel = nil
			c.mu.Unlock()
			return
		}

		delay := c.backoffDelay(attempts)
		c.logger.Debug().
			Err(err).
			Str("list_id", c.listID).
			Int("attempt", attempts).
			Dur("delay", delay).
			Msg("stream disconnected, reconnecting")
		c.setState(models.StreamReconnecting)

		select {
		case <-ctx.Done():
			c.setState(models.StreamClosed)
			return
		case <-time.After(delay):
		}
	}
}

// connectAndConsume dials the SSE endpoint with a freshly fetched token and
// consumes events until the connection drops. Tokens are not refreshed
// mid-connection; an expired token surfaces as an immediate error and takes
// the normal backoff path.
func (c *Client) connectAndConsume(ctx context.Context) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("stream token: %w", err)
	}

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParam("token", token).
		Get("/api/lists/" + c.listID + "/stream")
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return fmt.Errorf("stream connect: http %d", resp.StatusCode())
	}

	// Connection established.
	c.mu.Lock()
	c.attempts = 0
	c.state = models.StreamOpen
	c.mu.Unlock()
	c.logger.Debug().Str("list_id", c.listID).Msg("stream open")

	return readEvents(body, c.handleEvent)
}

func (c *Client) handleEvent(ev wireEvent) {
	switch ev.name {
	case models.EventConnected, models.EventError, "":
		return
	}

	// The payload is informational only, but a payload that does not even
	// parse is dropped without scheduling a refetch.
	var event models.StreamEvent
	if err := json.Unmarshal([]byte(ev.data), &event); err != nil {
		c.logger.Warn().
			Str("list_id", c.listID).
			Str("event", ev.name).
			Msg("dropping malformed stream event")
		return
	}

	c.scheduleInvalidate()
}

// scheduleInvalidate arms (or re-arms) the debounce timer. A burst of events
// inside the window collapses into a single invalidation of the list detail
// view and the list index after the window closes.
func (c *Client) scheduleInvalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.cfg.DebounceWindow, func() {
		c.cache.Invalidate(cache.ListDetailKey(c.listID))
		c.cache.Invalidate(cache.ListIndexKey())
	})
}

func (c *Client) backoffDelay(attempts int) time.Duration {
	delay := c.cfg.BackoffBase
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= c.cfg.BackoffCap {
			delay = c.cfg.BackoffCap
			break
		}
	}
	return delay + c.jitter()
}

func (c *Client) setState(state models.StreamState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}
