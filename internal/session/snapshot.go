package session

import "blackjack21/internal/game"

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Address   string
	Connected bool
	RoundID   string
	Phase     game.Phase
	Result    game.Result

	Player      []game.Card
	PlayerTotal int
	Dealer      []game.Card
	DealerTotal int

	Score   int
	Message string
}

// HideHoleCard reports whether the dealer's second card must stay face down.
func (s Snapshot) HideHoleCard() bool {
	return s.Phase == game.PhasePlayerTurn
}

// CanAct reports whether hit and stand are currently accepted.
func (s Snapshot) CanAct() bool {
	return s.Connected && s.Phase == game.PhasePlayerTurn
}

// VisibleDealerTotal is the dealer total the player is allowed to see.
func (s Snapshot) VisibleDealerTotal() int {
	if s.HideHoleCard() && len(s.Dealer) > 0 {
		return game.CalculateScore(s.Dealer[:1])
	}
	return s.DealerTotal
}
