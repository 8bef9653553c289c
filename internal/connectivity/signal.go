// SPDX-License-Identifier: Apache-2.0

// Package connectivity provides the single source of truth for the client's
// online/offline state.
//
// No other component keeps its own view of connectivity: the prober worker
// feeds SetOnline, and everyone else either asks IsOnline or subscribes to
// transitions. All subscribers observe the same value at the same logical
// time because transitions are delivered synchronously under one lock.
package connectivity

import (
	"sort"
	"sync"

	"github.com/familylists/familylists-go/internal/logger"
)

// Signal tracks online/offline transitions and fans them out to subscribers.
type Signal struct {
	logger *logger.Logger

	mu          sync.Mutex
	online      bool
	subscribers map[int]func(online bool)
	nextID      int
}

// NewSignal returns a Signal that starts in the online state. The first probe
// corrects it within one probe interval; starting pessimistic would queue
// every write issued during startup for no reason.
func NewSignal(log *logger.Logger) *Signal {
	return &Signal{
		logger:      log,
		online:      true,
		subscribers: make(map[int]func(online bool)),
	}
}

// IsOnline reports the current connectivity state.
func (s *Signal) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.online
}

// SetOnline records a new connectivity observation. Subscribers are notified
// only on actual transitions, in subscription order.
func (s *Signal) SetOnline(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online

	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fns := make([]func(bool), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.mu.Unlock()

	s.logger.Info().Bool("online", online).Msg("connectivity transition")
	for _, fn := range fns {
		fn(online)
	}
}

// Subscribe registers fn to run on every transition. The returned function
// unsubscribes.
func (s *Signal) Subscribe(fn func(online bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
