package terminal

import (
	"strings"

	"blackjack21/internal/game"
	"blackjack21/internal/player"
	"blackjack21/internal/session"

	"github.com/pterm/pterm"
)

// renderCard colours red suits the way a physical deck does.
func renderCard(c game.Card) string {
	if c.IsRed() {
		return string(c.Rank) + pterm.LightRed(string(c.Suit))
	}
	return string(c.Rank) + pterm.Black(string(c.Suit))
}

func renderHand(cards []game.Card, hideHole bool) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cards))
	for i, c := range cards {
		if hideHole && i == 1 {
			parts = append(parts, pterm.Gray("??"))
			continue
		}
		parts = append(parts, renderCard(c))
	}
	return strings.Join(parts, " - ")
}

// renderTable draws the dealer and player hands in one box titled with the phase.
func renderTable(snap session.Snapshot) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)

	wallet := pterm.Gray("not connected")
	if snap.Connected {
		wallet = pterm.LightCyan(player.ShortAddress(snap.Address))
	}

	body := pterm.Sprintfln("Dealer: %s (%d)", renderHand(snap.Dealer, snap.HideHoleCard()), snap.VisibleDealerTotal()) +
		pterm.Sprintfln("You:    %s (%d)", renderHand(snap.Player, false), snap.PlayerTotal) +
		pterm.Sprintfln("") +
		pterm.Sprintfln("%s", snap.Message) +
		pterm.Sprintf("Wallet: %s  Score: %d", wallet, snap.Score)

	title := pterm.LightYellow("|" + strings.ToUpper(snap.Phase.String()) + "|")
	return pbox.WithTitle(title).WithTitleTopCenter().Sprint(body) + "\n"
}

func renderLeaderboard(scores []player.Score) string {
	if len(scores) == 0 {
		return pterm.Info.Sprintln("Nobody has played yet!")
	}

	var sb strings.Builder
	for i, s := range scores {
		sb.WriteString(pterm.Sprintfln("%2d. %s  %d", i+1, pterm.LightCyan(player.ShortAddress(s.Address)), s.Score))
	}

	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pbox.WithTitle(pterm.LightGreen("|LEADERBOARD|")).WithTitleTopCenter().Sprint(strings.TrimRight(sb.String(), "\n")) + "\n"
}

func renderReward(score, threshold int) string {
	ok, left := game.RewardProgress(score, threshold)
	if ok {
		return pterm.Success.Sprintln("Reward unlocked! You can claim your NFT.")
	}
	return pterm.Info.Sprintfln("%d points to the NFT reward", left)
}

const helpText = `Commands:
  connect <address>  connect a wallet
  disconnect         drop the wallet
  start              deal a new round
  hit                take a card
  stand              let the dealer play
  reset              clear the table and deal again
  score              show your score
  top                show the leaderboard
  help               show this help
  quit               leave the table`
