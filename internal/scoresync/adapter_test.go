package scoresync

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

type memStore struct {
	mu     sync.Mutex
	scores map[string]int
	writes []int
	delay  map[int]time.Duration
	err    error
}

func newMemStore() *memStore {
	return &memStore{scores: make(map[string]int), delay: make(map[int]time.Duration)}
}

func (m *memStore) Score(ctx context.Context, address string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[address], nil
}

func (m *memStore) SetScore(ctx context.Context, address string, score int) error {
	m.mu.Lock()
	d := m.delay[score]
	m.mu.Unlock()
	time.Sleep(d)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.scores[address] = score
	m.writes = append(m.writes, score)
	return nil
}

func quietAdapter(store Store) *Adapter {
	return NewAdapter(store, log.New(io.Discard, "", 0))
}

func TestLoadNormalizesAddress(t *testing.T) {
	store := newMemStore()
	store.scores["0xabc"] = 70

	score, current := quietAdapter(store).Load(context.Background(), "0xABC")
	if score != 70 || !current {
		t.Fatalf("Load = %d, %v", score, current)
	}
}

func TestLoadErrorIsZero(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("boom")

	score, current := quietAdapter(store).Load(context.Background(), "0xabc")
	if score != 0 || !current {
		t.Fatalf("Load = %d, %v", score, current)
	}
}

func TestSaveIsAsyncAndLogged(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("boom")
	a := quietAdapter(store)

	a.Save("0xABC", 10)
	a.Wait()

	if len(store.writes) != 0 {
		t.Fatalf("writes = %v", store.writes)
	}
}

func TestLaterSaveWins(t *testing.T) {
	store := newMemStore()
	store.delay[100] = 30 * time.Millisecond
	a := quietAdapter(store)

	a.Save("0xabc", 100)
	time.Sleep(5 * time.Millisecond)
	a.Save("0xabc", 200)
	a.Wait()

	got, _ := store.Score(context.Background(), "0xabc")
	if got != 200 {
		t.Fatalf("stored = %d, want 200 (writes %v)", got, store.writes)
	}
}

func TestSaveSupersedesPendingLoad(t *testing.T) {
	store := newMemStore()
	a := quietAdapter(store)

	gen := a.bump()
	a.Save("0xabc", 50)
	a.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen == gen {
		t.Fatal("save did not invalidate the earlier load")
	}
}

func TestEmptyAddressNotSaved(t *testing.T) {
	store := newMemStore()
	a := quietAdapter(store)

	a.Save("", 10)
	a.Wait()
	if len(store.writes) != 0 {
		t.Fatalf("writes = %v", store.writes)
	}
}

func TestLoadWaitsForPendingSave(t *testing.T) {
	store := newMemStore()
	store.scores["0xabc"] = 40
	store.delay[190] = 50 * time.Millisecond
	a := quietAdapter(store)

	a.Save("0xabc", 190)
	score, _ := a.Load(context.Background(), "0xABC")
	if score != 190 {
		t.Fatalf("Load = %d, want 190 from the pending save", score)
	}

	a.mu.Lock()
	n := len(a.inflight)
	a.mu.Unlock()
	if n != 0 {
		t.Fatalf("inflight = %d after save finished", n)
	}
}

func TestLoadGivesUpWhenContextEnds(t *testing.T) {
	store := newMemStore()
	store.delay[10] = 200 * time.Millisecond
	a := quietAdapter(store)

	a.Save("0xabc", 10)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	score, current := a.Load(ctx, "0xabc")
	if score != 0 || current {
		t.Fatalf("Load = %d, %v, want 0, false", score, current)
	}
	a.Wait()
}
