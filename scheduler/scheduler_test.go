package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
)

type fakeHistoryRepo struct {
	datastore.HistoryRepository

	mu      sync.Mutex
	calls   []time.Time
	deleted int64
	err     error
}

func (f *fakeHistoryRepo) DeleteExpired(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.deleted, f.err
}

func (f *fakeHistoryRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSweep(t *testing.T) {
	repo := &fakeHistoryRepo{deleted: 3}
	s := NewSweeper(repo, nil, time.Minute)
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	n, err := s.Sweep()
	if err != nil || n != 3 {
		t.Fatalf("Sweep() = %d, %v", n, err)
	}
	if !repo.calls[0].Equal(fixed) {
		t.Errorf("DeleteExpired called with %v, want %v", repo.calls[0], fixed)
	}

	repo.err = errors.New("db down")
	if _, err := s.Sweep(); err == nil {
		t.Error("Sweep() should surface repository errors")
	}
}

func TestSweeper_StartStop(t *testing.T) {
	repo := &fakeHistoryRepo{}
	s := NewSweeper(repo, nil, 5*time.Millisecond)
	s.Start()

	deadline := time.Now().Add(2 * time.Second)
	for repo.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if repo.callCount() < 3 {
		t.Fatalf("sweeper ran %d times, want at least 3", repo.callCount())
	}
	after := repo.callCount()
	time.Sleep(20 * time.Millisecond)
	if repo.callCount() != after {
		t.Error("sweeper kept running after Stop")
	}
}

func TestSweeper_MemoryStore(t *testing.T) {
	store := datastore.NewMemoryHistoryStore()
	live := models.NewHistorySession(time.Hour)
	dead := models.NewHistorySession(time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	store.Create(live)
	store.Create(dead)

	n, err := NewSweeper(store, nil, time.Hour).Sweep()
	if err != nil || n != 1 {
		t.Fatalf("Sweep() = %d, %v; want 1", n, err)
	}
	if _, err := store.Get(live.SessionID); err != nil {
		t.Errorf("live session removed: %v", err)
	}
}
