package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"blackjack21/internal/config"
	"blackjack21/internal/game"
	"blackjack21/internal/player"
	"blackjack21/internal/scoresync"
	"blackjack21/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of the Telegram API the handler talks to.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot      sender
	cfg      *config.Config
	backend  scoresync.Backend
	sessions *session.Manager
	newDeck  func() game.Drawer
}

func NewHandler(bot sender, cfg *config.Config, backend scoresync.Backend) *Handler {
	h := &Handler{
		bot:     bot,
		cfg:     cfg,
		backend: backend,
		newDeck: func() game.Drawer { return game.NewInfiniteDeck(nil) },
	}
	h.sessions = session.NewManager(h.newSession)
	return h
}

func (h *Handler) newSession(chatID int64) *session.Session {
	return session.New(session.Options{
		Deck:        h.newDeck(),
		Sync:        scoresync.NewAdapter(h.backend, nil),
		DrawDelay:   h.cfg.DealerDrawDelay,
		RevealDelay: h.cfg.DealerRevealDelay,
		OnEvent:     func(ev session.Event) { h.onEvent(chatID, ev) },
	})
}

// Wait blocks until all pending score writes are done.
func (h *Handler) Wait() {
	h.sessions.Each(func(s *session.Session) {
		s.Wait()
	})
}

func (h *Handler) onEvent(chatID int64, ev session.Event) {
	switch ev.Kind {
	case session.EventCardDealt:
		if ev.Seat == session.SeatDealer && ev.Phase == game.PhaseDealerTurn {
			h.send(chatID, fmt.Sprintf("🃏 Dealer draws %s", ev.Card))
		}
	case session.EventRoundConcluded:
		log.Printf("[chat %d] round %s for %s: %s (%+d) score %d",
			chatID, ev.RoundID, ev.Address, ev.Result, ev.Delta, ev.Score)
	}
}

// ============== HELPERS ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

// sendTable renders the session with the keyboard matching its phase.
func (h *Handler) sendTable(chatID int64, snap session.Snapshot) {
	switch {
	case snap.CanAct():
		h.sendWithKeyboard(chatID, formatTable(snap), GameKeyboard())
	case snap.Phase == game.PhaseConcluded:
		h.sendWithKeyboard(chatID, formatTable(snap)+"\n"+h.formatReward(snap.Score), EndGameKeyboard())
	default:
		h.send(chatID, formatTable(snap))
	}
}

// ============== FORMATTING ==============

func formatCards(cards []game.Card, hideHole bool) string {
	parts := make([]string, 0, len(cards))
	for i, c := range cards {
		if hideHole && i == 1 {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatTable(snap session.Snapshot) string {
	if len(snap.Player) == 0 {
		return snap.Message
	}

	return fmt.Sprintf("🃏 Dealer: %s (%d)\n🎴 You: %s (%d)\n\n%s\n💰 Score: %d",
		formatCards(snap.Dealer, snap.HideHoleCard()), snap.VisibleDealerTotal(),
		formatCards(snap.Player, false), snap.PlayerTotal,
		snap.Message, snap.Score)
}

func (h *Handler) formatReward(score int) string {
	ok, left := game.RewardProgress(score, h.cfg.RewardThreshold)
	if ok {
		return "🏆 Reward unlocked! You can claim your NFT."
	}
	return fmt.Sprintf("🎯 %d points to the NFT reward", left)
}

// ============== COMMANDS ==============

func (h *Handler) HandleStart(chatID int64) {
	sess := h.sessions.GetOrCreate(chatID)
	snap := sess.Snapshot()

	status := "👛 Wallet: not connected"
	if snap.Connected {
		status = fmt.Sprintf("👛 Wallet: %s\n💰 Score: %d", player.ShortAddress(snap.Address), snap.Score)
	}

	h.send(chatID,
		"🎰 Welcome to Blackjack 21!\n\n"+status+"\n\n"+
			"/connect <address> — connect a wallet\n"+
			"/play — deal a round\n"+
			"/reset — start over\n"+
			"/score — your score\n"+
			"/top — leaderboard\n"+
			"/disconnect — disconnect the wallet\n"+
			"/help — rules")
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Blackjack rules:\n\n"+
			"🎯 Get closer to 21 than the dealer without going over\n\n"+
			"📊 Values:\n"+
			"• 2-10: face value\n"+
			"• J, Q, K: 10\n"+
			"• A: 11 or 1\n\n"+
			"🎮 Actions:\n"+
			"• Hit: take a card\n"+
			"• Stand: let the dealer play (dealer draws to 17)\n\n"+
			fmt.Sprintf("💰 Blackjack +%d · Win +%d · Loss -%d · Push 0\n", game.BlackjackBonus, game.WinBonus, game.LossPenalty)+
			fmt.Sprintf("🏆 Reach %d points to unlock the NFT reward", h.cfg.RewardThreshold))
}

func (h *Handler) HandleConnect(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		h.send(chatID, "❌ Usage: /connect <wallet address>")
		return
	}

	sess := h.sessions.GetOrCreate(chatID)
	sess.Connect(ctx, args[0])

	snap := sess.Snapshot()
	h.send(chatID, fmt.Sprintf("%s\n👛 %s\n💰 Score: %d",
		snap.Message, player.ShortAddress(snap.Address), snap.Score))
}

func (h *Handler) HandleDisconnect(chatID int64) {
	sess := h.sessions.GetOrCreate(chatID)
	sess.Disconnect()
	h.send(chatID, "👋 Wallet disconnected.\n"+sess.Snapshot().Message)
}

func (h *Handler) HandlePlay(ctx context.Context, chatID int64) {
	sess := h.sessions.GetOrCreate(chatID)
	sess.Start()
	h.sendTable(chatID, sess.Snapshot())
}

func (h *Handler) HandleReset(ctx context.Context, chatID int64) {
	sess := h.sessions.GetOrCreate(chatID)
	sess.Reset()
	h.sendTable(chatID, sess.Snapshot())
}

func (h *Handler) HandleScore(chatID int64) {
	snap := h.sessions.GetOrCreate(chatID).Snapshot()
	if !snap.Connected {
		h.send(chatID, session.MsgConnectFirst)
		return
	}

	h.send(chatID, fmt.Sprintf("👛 %s\n💰 Score: %d\n%s",
		player.ShortAddress(snap.Address), snap.Score, h.formatReward(snap.Score)))
}

func (h *Handler) HandleTop(ctx context.Context, chatID int64) {
	scores, err := h.backend.Leaderboard(ctx, h.cfg.LeaderboardLimit)
	if err != nil {
		log.Printf("Failed to load leaderboard: %v", err)
		h.send(chatID, "❌ Error")
		return
	}

	if len(scores) == 0 {
		h.send(chatID, "🏆 Nobody has played yet!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top players:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range scores {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s — %d\n", medal, player.ShortAddress(s.Address), s.Score))
	}

	h.send(chatID, sb.String())
}

// ============== CALLBACKS ==============

func (h *Handler) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// inline-mode messages carry no chat
	if callback.Message == nil || callback.Message.Chat == nil {
		h.answerCallback(callback.ID, "")
		return
	}

	chatID := callback.Message.Chat.ID
	sess := h.sessions.GetOrCreate(chatID)

	switch callback.Data {
	case CallbackReset:
		h.answerCallback(callback.ID, "")
		h.HandleReset(ctx, chatID)
		return

	case CallbackScore:
		h.answerCallback(callback.ID, fmt.Sprintf("💰 %d", sess.Score()))
		return
	}

	var ok bool
	switch callback.Data {
	case CallbackHit:
		ok = sess.Hit()
	case CallbackStand:
		ok = sess.Stand()
	}

	if !ok {
		h.answerCallback(callback.ID, "Round is not active")
		return
	}
	h.answerCallback(callback.ID, "")

	h.afterAction(ctx, chatID, sess)
}

// afterAction shows the table and, when the turn went to the dealer, plays it out.
func (h *Handler) afterAction(ctx context.Context, chatID int64, sess *session.Session) {
	snap := sess.Snapshot()
	h.sendTable(chatID, snap)

	if snap.Phase != game.PhaseDealerTurn {
		return
	}

	if result := sess.PlayDealer(ctx); result == game.ResultNone {
		return
	}
	h.sendTable(chatID, sess.Snapshot())
}

// ============== MESSAGES ==============

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	// strip @botname suffix used in group chats
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/connect":
		h.HandleConnect(ctx, chatID, args)
	case "/disconnect":
		h.HandleDisconnect(chatID)
	case "/play":
		h.HandlePlay(ctx, chatID)
	case "/reset":
		h.HandleReset(ctx, chatID)
	case "/score":
		h.HandleScore(chatID)
	case "/top":
		h.HandleTop(ctx, chatID)
	}
}
