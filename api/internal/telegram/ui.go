package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"notes-backend/api/internal/prompt"
)

const langCallbackPrefix = "lang:"

// languageKeyboard offers every supported language, two per row.
func languageKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range prompt.Languages() {
		label := strings.ToUpper(lang[:1]) + lang[1:]
		if lang == current {
			label = "✓ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, langCallbackPrefix+lang))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
