// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func streamCfg() config.ClientStream {
	return config.ClientStream{
		BackoffBase:    time.Millisecond,
		BackoffCap:     5 * time.Millisecond,
		MaxAttempts:    2,
		DebounceWindow: 10 * time.Millisecond,
	}
}

// holdingStreamServer accepts SSE connections and keeps them open until the
// client disconnects. dials counts accepted connections.
func holdingStreamServer(t *testing.T, dials *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newStreamManager(baseURL string) *StreamManager {
	return NewStreamManager(
		baseURL,
		streamCfg(),
		auth.StaticTokenProvider("tok-123"),
		cache.NewMemory(),
		logger.Nop(),
	)
}

// ── Watch / Unwatch ───────────────────────────────────────────────────────────

func TestStreamManager_Watch_OneStreamPerList(t *testing.T) {
	var dials atomic.Int64
	srv := holdingStreamServer(t, &dials)

	m := newStreamManager(srv.URL)
	defer m.CloseAll()

	ctx := context.Background()
	m.Watch(ctx, "l1")
	m.Watch(ctx, "l1")
	m.Watch(ctx, "l1")

	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)

	assert.Equal(t, int64(1), dials.Load())
}

func TestStreamManager_Watch_SeparateStreamsPerList(t *testing.T) {
	var dials atomic.Int64
	srv := holdingStreamServer(t, &dials)

	m := newStreamManager(srv.URL)
	defer m.CloseAll()

	ctx := context.Background()
	m.Watch(ctx, "l1")
	m.Watch(ctx, "l2")

	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen && m.State("l2") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)

	assert.Equal(t, int64(2), dials.Load())
}

func TestStreamManager_Unwatch_ClosesStream(t *testing.T) {
	var dials atomic.Int64
	srv := holdingStreamServer(t, &dials)

	m := newStreamManager(srv.URL)
	defer m.CloseAll()

	ctx := context.Background()
	m.Watch(ctx, "l1")
	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)

	m.Unwatch("l1")
	assert.Equal(t, models.StreamClosed, m.State("l1"))
}

func TestStreamManager_Unwatch_UnknownListIsNoOp(t *testing.T) {
	m := newStreamManager("http://localhost:1")
	m.Unwatch("never-watched")
}

func TestStreamManager_State_UnknownListIsClosed(t *testing.T) {
	m := newStreamManager("http://localhost:1")
	assert.Equal(t, models.StreamClosed, m.State("l1"))
}

// ── failure and manual retry ──────────────────────────────────────────────────

func TestStreamManager_Retry_RestartsFailedStreams(t *testing.T) {
	var healthy atomic.Bool
	var dials atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	m := newStreamManager(srv.URL)
	defer m.CloseAll()

	ctx := context.Background()
	m.Watch(ctx, "l1")

	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamFailed
	}, 3*time.Second, time.Millisecond)
	require.True(t, m.AnyFailed())

	healthy.Store(true)
	m.Retry(ctx)

	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)
	assert.False(t, m.AnyFailed())
}

func TestStreamManager_Watch_RestartsFailedStream(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	m := newStreamManager(srv.URL)
	defer m.CloseAll()

	ctx := context.Background()
	m.Watch(ctx, "l1")
	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamFailed
	}, 3*time.Second, time.Millisecond)

	healthy.Store(true)
	m.Watch(ctx, "l1")

	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)
}

func TestStreamManager_CloseAll(t *testing.T) {
	var dials atomic.Int64
	srv := holdingStreamServer(t, &dials)

	m := newStreamManager(srv.URL)

	ctx := context.Background()
	m.Watch(ctx, "l1")
	m.Watch(ctx, "l2")
	require.Eventually(t, func() bool {
		return m.State("l1") == models.StreamOpen && m.State("l2") == models.StreamOpen
	}, 3*time.Second, time.Millisecond)

	m.CloseAll()

	assert.Equal(t, models.StreamClosed, m.State("l1"))
	assert.Equal(t, models.StreamClosed, m.State("l2"))
}
