package game

import "errors"

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseConcluded
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseConcluded:
		return "concluded"
	default:
		return "idle"
	}
}

var (
	ErrNotPlayerTurn  = errors.New("not the player's turn")
	ErrNotDealerTurn  = errors.New("not the dealer's turn")
	ErrDealerMustDraw = errors.New("dealer must draw below 17")
	ErrDealerStands   = errors.New("dealer stands on 17 or more")
)

// Hand is an append-only run of cards. Its total is always derived from the cards.
type Hand struct {
	Cards []Card
}

func NewHand() Hand {
	return Hand{Cards: make([]Card, 0, 10)}
}

func (h *Hand) Add(c Card) {
	h.Cards = append(h.Cards, c)
}

func (h Hand) Total() int {
	return CalculateScore(h.Cards)
}

func (h Hand) Len() int {
	return len(h.Cards)
}

func (h Hand) IsBlackjack() bool {
	return IsBlackjack(h.Cards)
}

func (h Hand) IsBust() bool {
	return IsBust(h.Cards)
}

// Round holds one round of play: both hands, whose turn it is and the result
// once decided. Its methods are synchronous transitions; pacing the dealer is
// left to the caller.
type Round struct {
	ID     string
	Dealer Hand
	Player Hand
	Phase  Phase
	Result Result

	deck Drawer
}

func NewRound(deck Drawer) *Round {
	return &Round{
		Dealer: NewHand(),
		Player: NewHand(),
		Phase:  PhaseIdle,
		deck:   deck,
	}
}

// Deal discards the previous hands, deals two cards each to the dealer and
// the player, and opens the player's turn. A natural concludes the round at once.
func (r *Round) Deal(id string) Result {
	r.Clear()
	r.ID = id

	r.Dealer.Add(r.deck.Draw())
	r.Dealer.Add(r.deck.Draw())
	r.Player.Add(r.deck.Draw())
	r.Player.Add(r.deck.Draw())

	r.Phase = PhasePlayerTurn

	if r.Player.IsBlackjack() {
		r.conclude(ResultBlackjack)
	}
	return r.Result
}

// Hit draws one card for the player. A bust concludes the round; reaching 21
// hands the turn to the dealer.
func (r *Round) Hit() (Card, error) {
	if r.Phase != PhasePlayerTurn {
		return Card{}, ErrNotPlayerTurn
	}

	card := r.deck.Draw()
	r.Player.Add(card)

	total := r.Player.Total()
	switch {
	case total > 21:
		r.conclude(ResultPlayerBust)
	case total == 21:
		r.Phase = PhaseDealerTurn
	}
	return card, nil
}

func (r *Round) Stand() error {
	if r.Phase != PhasePlayerTurn {
		return ErrNotPlayerTurn
	}
	r.Phase = PhaseDealerTurn
	return nil
}

// DealerNeedsCard reports whether the dealer still has to draw.
func (r *Round) DealerNeedsCard() bool {
	return r.Phase == PhaseDealerTurn && r.Dealer.Total() < 17
}

// DealerDraw adds one card to the dealer's hand.
func (r *Round) DealerDraw() (Card, error) {
	if r.Phase != PhaseDealerTurn {
		return Card{}, ErrNotDealerTurn
	}
	if r.Dealer.Total() >= 17 {
		return Card{}, ErrDealerStands
	}

	card := r.deck.Draw()
	r.Dealer.Add(card)
	return card, nil
}

// Settle fixes the result once the dealer stands on 17 or more.
func (r *Round) Settle() (Result, error) {
	if r.Phase != PhaseDealerTurn {
		return ResultNone, ErrNotDealerTurn
	}
	if r.Dealer.Total() < 17 {
		return ResultNone, ErrDealerMustDraw
	}

	r.conclude(Evaluate(r.Player.Total(), r.Dealer.Total()))
	return r.Result, nil
}

// PlayDealer runs the whole dealer turn without pauses.
func (r *Round) PlayDealer() (Result, error) {
	for r.DealerNeedsCard() {
		if _, err := r.DealerDraw(); err != nil {
			return ResultNone, err
		}
	}
	return r.Settle()
}

// Clear drops both hands and returns the round to idle.
func (r *Round) Clear() {
	r.ID = ""
	r.Dealer = NewHand()
	r.Player = NewHand()
	r.Phase = PhaseIdle
	r.Result = ResultNone
}

func (r *Round) Active() bool {
	return r.Phase == PhasePlayerTurn || r.Phase == PhaseDealerTurn
}

func (r *Round) conclude(result Result) {
	r.Result = result
	r.Phase = PhaseConcluded
}
