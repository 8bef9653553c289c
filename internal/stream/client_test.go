// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/cache"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/models"
)

func testStreamConfig() config.ClientStream {
	return config.ClientStream{
		BackoffBase:    time.Millisecond,
		BackoffCap:     5 * time.Millisecond,
		MaxAttempts:    3,
		DebounceWindow: 50 * time.Millisecond,
	}
}

// invalidationCounter counts cache invalidations per key.
type invalidationCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func countInvalidations(c cache.Cache) *invalidationCounter {
	ic := &invalidationCounter{counts: make(map[string]int)}
	c.OnInvalidate(func(key string) {
		ic.mu.Lock()
		ic.counts[key]++
		ic.mu.Unlock()
	})
	return ic
}

func (ic *invalidationCounter) count(key string) int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.counts[key]
}

func newTestClient(serverURL string, cfg config.ClientStream, c cache.Cache) *Client {
	client := NewClient(serverURL, "l1", cfg, auth.StaticTokenProvider("tok-123"), c, logger.Nop())
	client.jitter = func() time.Duration { return 0 }
	return client
}

func writeEvent(w http.ResponseWriter, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, timeout, 2*time.Millisecond, msg)
}

// ── debounce ─────────────────────────────────────────────────────────────────

func TestClient_EventBurst_CoalescesIntoSingleInvalidation(t *testing.T) {
	payload := `{"event_type":"item_checked","list_id":"l1"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventConnected, `{}`)
		// A server-side "clear" emits one event per item, in a tight burst.
		for i := 0; i < 5; i++ {
			writeEvent(w, models.EventItemChecked, payload)
		}
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	ic := countInvalidations(c)

	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())
	defer client.Close()

	eventually(t, time.Second, func() bool {
		return ic.count(cache.ListDetailKey("l1")) > 0
	}, "debounced invalidation never fired")

	// Give a second debounce window a chance to fire spuriously.
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, ic.count(cache.ListDetailKey("l1")), "burst must collapse into one invalidation")
	assert.Equal(t, 1, ic.count(cache.ListIndexKey()))
}

func TestClient_EventsAcrossWindows_InvalidateTwice(t *testing.T) {
	payload := `{"event_type":"item_checked","list_id":"l1"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventItemChecked, payload)
		time.Sleep(120 * time.Millisecond) // past the 50ms debounce window
		writeEvent(w, models.EventItemChecked, payload)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	ic := countInvalidations(c)

	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())
	defer client.Close()

	eventually(t, time.Second, func() bool {
		return ic.count(cache.ListDetailKey("l1")) == 2
	}, "expected one invalidation per debounce window")
}

func TestClient_ConnectedAndMalformedEvents_NoInvalidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventConnected, `{}`)
		writeEvent(w, models.EventItemChecked, `{not json`)
		writeEvent(w, models.EventError, `{"detail":"oops"}`)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	ic := countInvalidations(c)

	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())
	defer client.Close()

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamOpen
	}, "stream never opened")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, ic.count(cache.ListDetailKey("l1")))
}

// ── reconnect / failure / retry ──────────────────────────────────────────────

func TestClient_ReconnectsUntilAttemptCapThenFails(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := cache.NewMemory()
	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamFailed
	}, "client never gave up")

	assert.Equal(t, int32(3), dials.Load(), "one dial per allowed attempt")

	// Failed is terminal without manual intervention.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), dials.Load())
}

func TestClient_Retry_ResetsAttemptsAndReconnects(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventConnected, `{}`)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())
	defer client.Close()

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamFailed
	}, "client never exhausted its attempts")

	// Retry before recovery does nothing lasting; after recovery it opens.
	healthy.Store(true)
	client.Retry(context.Background())

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamOpen
	}, "manual retry did not reconnect")
}

func TestClient_Retry_NoOpUnlessFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventConnected, `{}`)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())
	defer client.Close()

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamOpen
	}, "stream never opened")

	client.Retry(context.Background())
	assert.Equal(t, models.StreamOpen, client.State())
}

func TestClient_Close_StopsLoopAndReportsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, models.EventConnected, `{}`)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := cache.NewMemory()
	client := newTestClient(srv.URL, testStreamConfig(), c)
	client.Start(context.Background())

	eventually(t, time.Second, func() bool {
		return client.State() == models.StreamOpen
	}, "stream never opened")

	client.Close()
	assert.Equal(t, models.StreamClosed, client.State())

	// Close is idempotent.
	client.Close()
}

// ── backoff ──────────────────────────────────────────────────────────────────

func TestClient_BackoffDelay_DoublesAndCaps(t *testing.T) {
	c := cache.NewMemory()
	client := newTestClient("http://localhost", config.ClientStream{
		BackoffBase:    100 * time.Millisecond,
		BackoffCap:     time.Second,
		MaxAttempts:    10,
		DebounceWindow: time.Millisecond,
	}, c)

	assert.Equal(t, 200*time.Millisecond, client.backoffDelay(1))
	assert.Equal(t, 400*time.Millisecond, client.backoffDelay(2))
	assert.Equal(t, 800*time.Millisecond, client.backoffDelay(3))
	assert.Equal(t, time.Second, client.backoffDelay(4))
	assert.Equal(t, time.Second, client.backoffDelay(20))
}
