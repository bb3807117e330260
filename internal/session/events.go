package session

import "blackjack21/internal/game"

// EventKind identifies events emitted to presentation layers.
type EventKind string

const (
	EventConnected      EventKind = "connected"
	EventRoundStarted   EventKind = "round_started"
	EventCardDealt      EventKind = "card_dealt"
	EventTurnChanged    EventKind = "turn_changed"
	EventRoundConcluded EventKind = "round_concluded"
	EventScoreChanged   EventKind = "score_changed"
	EventCleared        EventKind = "session_cleared"
)

// Seat names the hand a card went to.
type Seat string

const (
	SeatDealer Seat = "dealer"
	SeatPlayer Seat = "player"
)

// Event describes one state change. For EventCardDealt, Phase is the phase
// the card was dealt in.
type Event struct {
	Kind    EventKind
	RoundID string
	Address string

	Seat   Seat
	Card   game.Card
	Phase  game.Phase
	Result game.Result
	Delta  int
	Score  int
}
