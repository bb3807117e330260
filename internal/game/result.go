package game

type Result int

const (
	ResultNone Result = iota
	ResultBlackjack
	ResultPlayerWin
	ResultDealerBust
	ResultDealerWin
	ResultPlayerBust
	ResultPush
)

const (
	BlackjackBonus = 150
	WinBonus       = 100
	LossPenalty    = 50
)

func (r Result) String() string {
	switch r {
	case ResultBlackjack:
		return "blackjack"
	case ResultPlayerWin:
		return "player_win"
	case ResultDealerBust:
		return "dealer_bust"
	case ResultDealerWin:
		return "dealer_win"
	case ResultPlayerBust:
		return "player_bust"
	case ResultPush:
		return "push"
	default:
		return "none"
	}
}

// Message is the line shown to the player when the round ends with r.
func (r Result) Message() string {
	switch r {
	case ResultBlackjack:
		return "🎊 BLACKJACK! Perfect 21!"
	case ResultPlayerWin:
		return "🎉 Player wins!"
	case ResultDealerBust:
		return "🎉 Dealer busts! Player wins!"
	case ResultDealerWin:
		return "😔 Dealer wins!"
	case ResultPlayerBust:
		return "💥 Player busts! Dealer wins!"
	case ResultPush:
		return "🤝 Push!"
	default:
		return ""
	}
}

func (r Result) PlayerWon() bool {
	return r == ResultBlackjack || r == ResultPlayerWin || r == ResultDealerBust
}

func (r Result) PlayerLost() bool {
	return r == ResultDealerWin || r == ResultPlayerBust
}

// ScoreDelta maps a finished round to its score adjustment.
func ScoreDelta(r Result) int {
	switch {
	case r == ResultBlackjack:
		return BlackjackBonus
	case r.PlayerWon():
		return WinBonus
	case r.PlayerLost():
		return -LossPenalty
	default:
		return 0
	}
}

// ApplyDelta adds delta to score, never going below zero.
func ApplyDelta(score, delta int) int {
	score += delta
	if score < 0 {
		return 0
	}
	return score
}

// Evaluate compares final totals once the dealer has stood.
func Evaluate(playerTotal, dealerTotal int) Result {
	switch {
	case playerTotal > 21:
		return ResultPlayerBust
	case dealerTotal > 21:
		return ResultDealerBust
	case dealerTotal > playerTotal:
		return ResultDealerWin
	case playerTotal > dealerTotal:
		return ResultPlayerWin
	default:
		return ResultPush
	}
}

// RewardProgress reports whether score has reached the reward threshold and
// how many points are still missing otherwise.
func RewardProgress(score, threshold int) (bool, int) {
	if score >= threshold {
		return true, 0
	}
	return false, threshold - score
}
