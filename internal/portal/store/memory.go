// Package store persists per-session portal state, either in process memory
// or in redis for multi-replica deployments.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/portal/internal/clock"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
)

type memoryEntry struct {
	state     portaldomain.SessionState
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clock.Clock
	entries map[string]memoryEntry
}

// NewMemory returns an in-process session store. State expires after ttl of
// inactivity; every Put refreshes the deadline.
func NewMemory(ttl time.Duration, clk clock.Clock) portaldomain.Store {
	return &memoryStore{
		ttl:     ttl,
		clock:   clk,
		entries: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) (portaldomain.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return portaldomain.SessionState{}, false, nil
	}
	if s.ttl > 0 && s.clock.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return portaldomain.SessionState{}, false, nil
	}
	return cloneState(entry.state), true, nil
}

func (s *memoryStore) Put(ctx context.Context, key string, state portaldomain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		state:     cloneState(state),
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

// cloneState copies the slice-backed fields so callers never share a backing
// array with the stored entry. Selection reconciliation compacts IDs in place;
// without the copy, two requests on the same session could race on it.
func cloneState(state portaldomain.SessionState) portaldomain.SessionState {
	if state.Selection.IDs != nil {
		state.Selection.IDs = append([]string(nil), state.Selection.IDs...)
	}
	if state.Query.Statuses != nil {
		state.Query.Statuses = append([]invoicedomain.StatusFilter(nil), state.Query.Statuses...)
	}
	return state
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
