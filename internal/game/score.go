package game

func CalculateScore(hand []Card) int {
	score := 0
	aces := 0

	for _, card := range hand {
		score += card.Value()
		if card.IsAce() {
			aces++
		}
	}

	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// IsBlackjack reports a natural: 21 on exactly the first two cards.
func IsBlackjack(cards []Card) bool {
	return len(cards) == 2 && CalculateScore(cards) == 21
}

func IsBust(cards []Card) bool {
	return CalculateScore(cards) > 21
}
