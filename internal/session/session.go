package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"blackjack21/internal/game"
	"blackjack21/internal/player"
	"blackjack21/internal/scoresync"
)

const (
	MsgConnectFirst     = "🔌 Connect your wallet first."
	MsgConnected        = "👛 Wallet connected. Start a new round."
	MsgSwitched         = "🔁 Account switched. Press Reset or Start to begin a new round."
	MsgRoundStarted     = "🎮 Round started! Hit or Stand?"
	MsgReachedTwentyOne = "✅ You reached 21, dealer's turn..."
	MsgDealerTurn       = "⏳ Dealer is drawing..."
	MsgLoadingScore     = "⌛ Loading your score, try again in a moment."
)

type Options struct {
	Deck game.Drawer
	// Sync persists scores. Nil keeps scores in memory only.
	Sync *scoresync.Adapter

	// DrawDelay and RevealDelay pace the dealer: one DrawDelay before each
	// dealer card, one RevealDelay before the result. Zero plays instantly.
	DrawDelay   time.Duration
	RevealDelay time.Duration

	// OnEvent is called outside the session lock, in emission order.
	OnEvent func(Event)

	NewRoundID func() string
}

// Session is one player's table: the wallet identity, the current round and
// the authoritative in-memory score. Actions that are not valid in the
// current state are ignored and report false.
type Session struct {
	mu      sync.Mutex
	round   *game.Round
	address string
	score   int
	message string
	// epoch changes whenever the round is dealt or cleared, so a dealer
	// turn running in the background notices it was abandoned.
	epoch   uint64
	pending []Event
	// loading is set while the score for address is being fetched.
	loading bool
	loadSeq uint64

	scores      *scoresync.Adapter
	drawDelay   time.Duration
	revealDelay time.Duration
	onEvent     func(Event)
	newRoundID  func() string
}

func New(opts Options) *Session {
	deck := opts.Deck
	if deck == nil {
		deck = game.NewInfiniteDeck(nil)
	}
	newID := opts.NewRoundID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Session{
		round:       game.NewRound(deck),
		message:     MsgConnectFirst,
		scores:      opts.Sync,
		drawDelay:   opts.DrawDelay,
		revealDelay: opts.RevealDelay,
		onEvent:     opts.OnEvent,
		newRoundID:  newID,
	}
}

// Connect sets the player identifier and loads its stored score. Switching to
// a different address ends the current round without dealing a new one. An
// empty address is a disconnect.
func (s *Session) Connect(ctx context.Context, address string) {
	address = player.NormalizeAddress(address)
	if address == "" {
		s.Disconnect()
		return
	}

	s.mu.Lock()
	if address == s.address {
		s.mu.Unlock()
		return
	}
	switched := s.address != ""
	s.address = address
	s.score = 0
	s.loadSeq++
	token := s.loadSeq
	s.loading = s.scores != nil
	s.clearLocked()
	if switched {
		s.message = MsgSwitched
	} else {
		s.message = MsgConnected
	}
	s.emit(Event{Kind: EventConnected, Address: address})
	s.unlockAndFlush()

	if s.scores == nil {
		return
	}

	score, current := s.scores.Load(ctx, address)

	s.mu.Lock()
	if s.loadSeq == token {
		s.loading = false
	}
	if !current || s.address != address {
		s.mu.Unlock()
		return
	}
	s.score = score
	s.emit(Event{Kind: EventScoreChanged, Address: address, Score: score})
	s.unlockAndFlush()
}

// Disconnect drops the identifier and all round state, including a dealer
// turn in progress. Nothing is saved.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.address = ""
	s.score = 0
	s.loadSeq++
	s.loading = false
	s.clearLocked()
	s.message = MsgConnectFirst
	if s.scores != nil {
		s.scores.Supersede()
	}
	s.emit(Event{Kind: EventCleared})
	s.unlockAndFlush()
}

// Start deals a fresh round. It needs a connected wallet.
func (s *Session) Start() bool {
	s.mu.Lock()
	ok := s.startLocked()
	s.unlockAndFlush()
	return ok
}

// Reset clears the table and deals again right away.
func (s *Session) Reset() bool {
	s.mu.Lock()
	if s.address != "" {
		s.clearLocked()
	}
	ok := s.startLocked()
	s.unlockAndFlush()
	return ok
}

func (s *Session) Hit() bool {
	s.mu.Lock()
	defer s.unlockAndFlush()

	if s.address == "" {
		return false
	}

	card, err := s.round.Hit()
	if err != nil {
		return false
	}
	s.emit(Event{Kind: EventCardDealt, RoundID: s.round.ID, Seat: SeatPlayer, Card: card, Phase: game.PhasePlayerTurn})

	switch s.round.Phase {
	case game.PhaseConcluded:
		s.concludeLocked()
	case game.PhaseDealerTurn:
		s.message = MsgReachedTwentyOne
		s.emit(Event{Kind: EventTurnChanged, RoundID: s.round.ID, Phase: game.PhaseDealerTurn})
	}
	return true
}

// Stand hands the turn to the dealer. Drive the dealer with PlayDealer or DealerStep.
func (s *Session) Stand() bool {
	s.mu.Lock()
	defer s.unlockAndFlush()

	if s.address == "" {
		return false
	}
	if err := s.round.Stand(); err != nil {
		return false
	}

	s.message = MsgDealerTurn
	s.emit(Event{Kind: EventTurnChanged, RoundID: s.round.ID, Phase: game.PhaseDealerTurn})
	return true
}

// DealerStep performs one dealer transition: draw a card while below 17,
// otherwise settle the round. It reports false outside the dealer's turn.
func (s *Session) DealerStep() bool {
	s.mu.Lock()
	defer s.unlockAndFlush()

	if s.round.Phase != game.PhaseDealerTurn {
		return false
	}
	s.dealerStepLocked()
	return true
}

// PlayDealer runs the dealer's turn to the end with the configured pacing.
// It stops early, returning ResultNone, if ctx ends or the round is cleared
// or redealt meanwhile.
func (s *Session) PlayDealer(ctx context.Context) game.Result {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.epoch != epoch {
			s.mu.Unlock()
			return game.ResultNone
		}
		if s.round.Phase != game.PhaseDealerTurn {
			result := s.round.Result
			s.mu.Unlock()
			return result
		}
		delay := s.revealDelay
		if s.round.DealerNeedsCard() {
			delay = s.drawDelay
		}
		s.mu.Unlock()

		if !sleep(ctx, delay) {
			return game.ResultNone
		}

		s.mu.Lock()
		if s.epoch == epoch && s.round.Phase == game.PhaseDealerTurn {
			s.dealerStepLocked()
		}
		s.unlockAndFlush()
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Address:     s.address,
		Connected:   s.address != "",
		RoundID:     s.round.ID,
		Phase:       s.round.Phase,
		Result:      s.round.Result,
		Player:      append([]game.Card(nil), s.round.Player.Cards...),
		PlayerTotal: s.round.Player.Total(),
		Dealer:      append([]game.Card(nil), s.round.Dealer.Cards...),
		DealerTotal: s.round.Dealer.Total(),
		Score:       s.score,
		Message:     s.message,
	}
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Wait blocks until the score writes issued by this session have finished.
func (s *Session) Wait() {
	if s.scores != nil {
		s.scores.Wait()
	}
}

func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

func (s *Session) startLocked() bool {
	if s.address == "" {
		s.message = MsgConnectFirst
		return false
	}
	if s.loading {
		s.message = MsgLoadingScore
		return false
	}

	s.epoch++
	id := s.newRoundID()
	s.round.Deal(id)
	s.message = MsgRoundStarted

	s.emit(Event{Kind: EventRoundStarted, RoundID: id, Address: s.address})
	for _, c := range s.round.Dealer.Cards {
		s.emit(Event{Kind: EventCardDealt, RoundID: id, Seat: SeatDealer, Card: c, Phase: game.PhasePlayerTurn})
	}
	for _, c := range s.round.Player.Cards {
		s.emit(Event{Kind: EventCardDealt, RoundID: id, Seat: SeatPlayer, Card: c, Phase: game.PhasePlayerTurn})
	}

	if s.round.Phase == game.PhaseConcluded {
		s.concludeLocked()
	}
	return true
}

func (s *Session) dealerStepLocked() {
	if s.round.DealerNeedsCard() {
		card, err := s.round.DealerDraw()
		if err == nil {
			s.emit(Event{Kind: EventCardDealt, RoundID: s.round.ID, Seat: SeatDealer, Card: card, Phase: game.PhaseDealerTurn})
		}
		return
	}

	if _, err := s.round.Settle(); err == nil {
		s.concludeLocked()
	}
}

// concludeLocked applies the score policy once the round has a result.
func (s *Session) concludeLocked() {
	result := s.round.Result
	delta := game.ScoreDelta(result)

	if delta != 0 {
		s.score = game.ApplyDelta(s.score, delta)
		if s.scores != nil {
			s.scores.Save(s.address, s.score)
		}
	}
	s.message = result.Message()

	s.emit(Event{
		Kind:    EventRoundConcluded,
		RoundID: s.round.ID,
		Address: s.address,
		Phase:   game.PhaseConcluded,
		Result:  result,
		Delta:   delta,
		Score:   s.score,
	})
	if delta != 0 {
		s.emit(Event{Kind: EventScoreChanged, Address: s.address, Score: s.score})
	}
}

func (s *Session) clearLocked() {
	s.epoch++
	s.round.Clear()
}

func (s *Session) emit(ev Event) {
	if s.onEvent != nil {
		s.pending = append(s.pending, ev)
	}
}

func (s *Session) unlockAndFlush() {
	evs := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, ev := range evs {
		s.onEvent(ev)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
