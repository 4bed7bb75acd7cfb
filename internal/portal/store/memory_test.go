package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/smallbiznis/portal/internal/clock"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	s := NewMemory(time.Hour, clk)
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("expected miss, found=%v err=%v", found, err)
	}

	state := portaldomain.NewSessionState()
	state.Mode = portaldomain.ModeDownloading
	if err := s.Put(ctx, "k", state); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if got.Mode != portaldomain.ModeDownloading {
		t.Fatalf("unexpected state %+v", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected key gone after delete")
	}
}

// Reconcile compacts the ID slice in place, so a returned state that still
// aliased the stored backing array would let two requests on the same session
// race on it.
func TestMemoryStoreGetReturnsIsolatedState(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	s := NewMemory(time.Hour, clk)
	ctx := context.Background()

	state := portaldomain.NewSessionState()
	state.Selection.Set([]string{"a", "b", "c"})
	if err := s.Put(ctx, "k", state); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	pages := [][]string{{"a"}, {"b"}, {"c"}, nil}
	var wg sync.WaitGroup
	for _, page := range pages {
		wg.Add(1)
		go func(page []string) {
			defer wg.Done()
			got, found, err := s.Get(ctx, "k")
			if err != nil || !found {
				t.Errorf("expected hit, found=%v err=%v", found, err)
				return
			}
			got.Selection.Reconcile(page)
		}(page)
	}
	wg.Wait()

	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if len(got.Selection.IDs) != 3 {
		t.Fatalf("stored selection mutated through a returned copy: %v", got.Selection.IDs)
	}

	// Mutating the state handed to Put must not reach the store either.
	state.Selection.IDs[0] = "z"
	got, _, _ = s.Get(ctx, "k")
	if got.Selection.IDs[0] != "a" {
		t.Fatalf("stored selection shares the caller's backing array: %v", got.Selection.IDs)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	s := NewMemory(time.Hour, clk)
	ctx := context.Background()

	if err := s.Put(ctx, "k", portaldomain.NewSessionState()); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	clk.Advance(30 * time.Minute)
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatal("expected state alive before ttl")
	}

	// Every Put refreshes the deadline.
	if err := s.Put(ctx, "k", portaldomain.NewSessionState()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	clk.Advance(45 * time.Minute)
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatal("expected refreshed state alive")
	}

	clk.Advance(2 * time.Hour)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected state expired")
	}
}
