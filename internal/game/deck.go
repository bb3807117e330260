package game

import (
	"math/rand"
	"sync"
	"time"
)

type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

type Rank string

var Ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var CardValues = map[Rank]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 10, "Q": 10, "K": 10, "A": 11,
}

// Card is a single drawn card. Suit only matters for display.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// Value returns the base value of the card, counting an Ace as 11.
func (c Card) Value() int {
	return CardValues[c.Rank]
}

func (c Card) IsAce() bool {
	return c.Rank == "A"
}

func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// Drawer is the card source used by a round.
type Drawer interface {
	Draw() Card
}

// InfiniteDeck draws every card independently and uniformly over 13 ranks
// and 4 suits, with replacement.
type InfiniteDeck struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewInfiniteDeck builds a deck over rng, or over a time-seeded source when rng is nil.
func NewInfiniteDeck(rng *rand.Rand) *InfiniteDeck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &InfiniteDeck{rng: rng}
}

func (d *InfiniteDeck) Draw() Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Card{
		Rank: Ranks[d.rng.Intn(len(Ranks))],
		Suit: Suits[d.rng.Intn(len(Suits))],
	}
}

// StackedDeck hands out a fixed sequence of cards and starts over once it
// runs out. Used for reproducible rounds.
type StackedDeck struct {
	mu    sync.Mutex
	cards []Card
	next  int
}

func NewStackedDeck(cards ...Card) *StackedDeck {
	return &StackedDeck{cards: cards}
}

func (d *StackedDeck) Draw() Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.cards) == 0 {
		return Card{Rank: "2", Suit: Clubs}
	}

	card := d.cards[d.next%len(d.cards)]
	d.next++
	return card
}

// Drawn reports how many cards have been handed out.
func (d *StackedDeck) Drawn() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.next
}

// StackRanks is a shortcut for stacking spades of the given ranks.
func StackRanks(ranks ...Rank) *StackedDeck {
	cards := make([]Card, 0, len(ranks))
	for _, r := range ranks {
		cards = append(cards, Card{Rank: r, Suit: Spades})
	}
	return NewStackedDeck(cards...)
}
