package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"notes-backend/api/internal/prompt"
)

func (r *Router) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	cid := cb.Message.Chat.ID
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch {
	case strings.HasPrefix(cb.Data, langCallbackPrefix):
		r.onLanguagePicked(cid, cb.Message.MessageID, strings.TrimPrefix(cb.Data, langCallbackPrefix))
	default:
		log.Debug().Str("data", cb.Data).Msg("unknown callback")
	}
}

func (r *Router) onLanguagePicked(chatID int64, msgID int, lang string) {
	if !prompt.Supported(lang) {
		r.send(chatID, "Unknown language.")
		return
	}
	r.settings.setLanguage(chatID, lang)
	// drop the keyboard
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	_, _ = r.Bot.Send(edit)
	r.send(chatID, "Language set to "+lang)
}
