package game

import "testing"

func TestScoreDelta(t *testing.T) {
	tests := []struct {
		result Result
		want   int
	}{
		{ResultBlackjack, 150},
		{ResultPlayerWin, 100},
		{ResultDealerBust, 100},
		{ResultDealerWin, -50},
		{ResultPlayerBust, -50},
		{ResultPush, 0},
		{ResultNone, 0},
	}

	for _, tt := range tests {
		if got := ScoreDelta(tt.result); got != tt.want {
			t.Errorf("ScoreDelta(%s) = %d, want %d", tt.result, got, tt.want)
		}
	}
}

func TestApplyDeltaFloorsAtZero(t *testing.T) {
	if got := ApplyDelta(30, -50); got != 0 {
		t.Fatalf("30-50 = %d, want 0", got)
	}
	if got := ApplyDelta(0, -50); got != 0 {
		t.Fatalf("0-50 = %d, want 0", got)
	}
	if got := ApplyDelta(120, -50); got != 70 {
		t.Fatalf("120-50 = %d, want 70", got)
	}
	if got := ApplyDelta(0, 150); got != 150 {
		t.Fatalf("0+150 = %d, want 150", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		player, dealer int
		want           Result
	}{
		{"dealer bust", 18, 23, ResultDealerBust},
		{"dealer higher", 19, 20, ResultDealerWin},
		{"player higher", 20, 17, ResultPlayerWin},
		{"push", 18, 18, ResultPush},
		{"player bust first", 22, 25, ResultPlayerBust},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.player, tt.dealer); got != tt.want {
				t.Fatalf("Evaluate(%d, %d) = %s, want %s", tt.player, tt.dealer, got, tt.want)
			}
		})
	}
}

func TestRewardProgress(t *testing.T) {
	tests := []struct {
		score    int
		eligible bool
		left     int
	}{
		{0, false, 1000},
		{850, false, 150},
		{1000, true, 0},
		{1250, true, 0},
	}

	for _, tt := range tests {
		ok, left := RewardProgress(tt.score, 1000)
		if ok != tt.eligible || left != tt.left {
			t.Errorf("RewardProgress(%d) = (%v, %d), want (%v, %d)", tt.score, ok, left, tt.eligible, tt.left)
		}
	}
}
