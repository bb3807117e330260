package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit   = "hit"
	CallbackStand = "stand"
	CallbackReset = "reset"
	CallbackScore = "score"
)

func GameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
			tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
		),
	)
}

func EndGameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", CallbackReset),
			tgbotapi.NewInlineKeyboardButtonData("💰 Score", CallbackScore),
		),
	)
}
