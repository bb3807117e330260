package game

import "testing"

func hand(ranks ...Rank) []Card {
	cards := make([]Card, 0, len(ranks))
	for i, r := range ranks {
		cards = append(cards, Card{Rank: r, Suit: Suits[i%len(Suits)]})
	}
	return cards
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  int
	}{
		{name: "empty", cards: nil, want: 0},
		{name: "numbers", cards: hand("2", "3", "4"), want: 9},
		{name: "faces", cards: hand("J", "Q", "K"), want: 30},
		{name: "ten ace", cards: hand("10", "A"), want: 21},
		{name: "ace ten", cards: hand("A", "10"), want: 21},
		{name: "soft seventeen", cards: hand("A", "6"), want: 17},
		{name: "soft hand goes hard", cards: hand("A", "6", "9"), want: 16},
		{name: "two aces", cards: hand("A", "A"), want: 12},
		{name: "four aces", cards: hand("A", "A", "A", "A"), want: 14},
		{name: "aces and nine", cards: hand("A", "A", "9"), want: 21},
		{name: "bust after demotion", cards: hand("A", "K", "Q", "5"), want: 26},
		{name: "plain bust", cards: hand("K", "Q", "2"), want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateScore(tt.cards); got != tt.want {
				t.Fatalf("CalculateScore(%v) = %d, want %d", tt.cards, got, tt.want)
			}
		})
	}
}

func TestCalculateScoreIsPure(t *testing.T) {
	cards := hand("A", "A", "K", "7")
	first := CalculateScore(cards)
	for i := 0; i < 5; i++ {
		if got := CalculateScore(cards); got != first {
			t.Fatalf("call %d = %d, want %d", i, got, first)
		}
	}
	if cards[0].Rank != "A" || len(cards) != 4 {
		t.Fatalf("hand was modified: %v", cards)
	}
}

func TestAllAcesKeepOneSoft(t *testing.T) {
	for n := 1; n <= 11; n++ {
		cards := make([]Card, n)
		for i := range cards {
			cards[i] = Card{Rank: "A", Suit: Spades}
		}
		want := 11 + (n - 1)
		if got := CalculateScore(cards); got != want {
			t.Fatalf("%d aces = %d, want %d", n, got, want)
		}
	}
}

func TestLowCardsNeverGoNegative(t *testing.T) {
	var cards []Card
	prev := 0
	for i := 0; i < 20; i++ {
		cards = append(cards, Card{Rank: Ranks[i%3], Suit: Clubs})
		got := CalculateScore(cards)
		if got < 0 {
			t.Fatalf("total went negative: %d", got)
		}
		if got < prev-10 {
			t.Fatalf("total dropped from %d to %d", prev, got)
		}
		prev = got
	}
}

func TestIsBlackjack(t *testing.T) {
	if !IsBlackjack(hand("A", "K")) {
		t.Fatal("A K should be blackjack")
	}
	if IsBlackjack(hand("7", "7", "7")) {
		t.Fatal("three cards to 21 is not blackjack")
	}
	if IsBlackjack(hand("10", "9")) {
		t.Fatal("19 is not blackjack")
	}
}
