package scoresync

import (
	"context"
	"log"
	"sync"
	"time"

	"blackjack21/internal/player"
)

// Adapter bridges round outcomes to a Store. Loads resolve last-call-wins and
// saves are fire-and-forget: failures are logged and never reach the caller.
type Adapter struct {
	store   Store
	logger  *log.Logger
	timeout time.Duration

	mu       sync.Mutex
	gen      uint64
	saveSeq  uint64
	saveMu   sync.Mutex
	written  map[string]uint64
	// inflight holds, per address, a channel closed when the latest save ends.
	inflight map[string]chan struct{}
	wg       sync.WaitGroup
}

func NewAdapter(store Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		store:    store,
		logger:   logger,
		timeout:  10 * time.Second,
		written:  make(map[string]uint64),
		inflight: make(map[string]chan struct{}),
	}
}

// Load fetches the stored score for address. It returns 0 when the store has
// nothing or fails. current is false when a later Load, Save or Supersede was
// issued while this one was in flight; the caller must then drop the value.
// A save for the same address still running is waited for first, so the
// value read is never older than the last score handed to Save.
func (a *Adapter) Load(ctx context.Context, address string) (score int, current bool) {
	address = player.NormalizeAddress(address)
	gen := a.bump()

	if address != "" {
		if err := a.awaitSave(ctx, address); err != nil {
			a.logger.Printf("Failed to load score for %s: %v", address, err)
			return 0, false
		}

		s, err := a.store.Score(ctx, address)
		if err != nil {
			a.logger.Printf("Failed to load score for %s: %v", address, err)
		} else {
			score = s
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return score, a.gen == gen
}

// Save writes score for address in the background. For one address, a write
// issued later always wins over an earlier one that is still pending.
func (a *Adapter) Save(address string, score int) {
	address = player.NormalizeAddress(address)
	if address == "" {
		return
	}

	a.bump()
	done := make(chan struct{})
	a.mu.Lock()
	a.saveSeq++
	seq := a.saveSeq
	a.inflight[address] = done
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.finishSave(address, done)

		a.saveMu.Lock()
		defer a.saveMu.Unlock()

		if seq < a.written[address] {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.store.SetScore(ctx, address, score); err != nil {
			a.logger.Printf("Failed to save score for %s: %v", address, err)
		}
		a.written[address] = seq
	}()
}

// Supersede invalidates any Load still in flight.
func (a *Adapter) Supersede() {
	a.bump()
}

// Wait blocks until every pending Save has finished.
func (a *Adapter) Wait() {
	a.wg.Wait()
}

func (a *Adapter) finishSave(address string, done chan struct{}) {
	close(done)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inflight[address] == done {
		delete(a.inflight, address)
	}
}

// awaitSave blocks until the latest save issued for address has finished.
// Saves are serialized, so earlier ones for the address are finished or will skip.
func (a *Adapter) awaitSave(ctx context.Context, address string) error {
	a.mu.Lock()
	done := a.inflight[address]
	a.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Adapter) bump() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	return a.gen
}
