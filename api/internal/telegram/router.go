package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"notes-backend/api/internal/logger"
	"notes-backend/api/internal/prompt"
	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
	"notes-backend/api/internal/util"
)

// Telegram caps messages at 4096 characters; leave room for entities.
const maxMessageRunes = 3900

const summarizeTimeout = 3 * time.Minute

var log = logger.New("telegram")

// Sender is the part of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type HistoryStore interface {
	Add(ctx context.Context, e store.Entry) (store.Entry, error)
	List(ctx context.Context, userID string) ([]store.Entry, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

type Router struct {
	Bot     Sender
	Service *summary.Service
	History HistoryStore // optional

	settings settingsStore
}

func NewRouter(bot Sender, svc *summary.Service, history HistoryStore) *Router {
	return &Router{Bot: bot, Service: svc, History: history}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(ctx, upd.Message)
		return
	}
	if strings.TrimSpace(upd.Message.Text) != "" {
		r.summarize(ctx, upd.Message)
	}
}

func (r *Router) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		r.send(cid, r.helpText())
	case "health":
		r.send(cid, "✅ OK")
	case "language":
		if args == "" {
			current := r.settings.get(cid).Language
			msg := tgbotapi.NewMessage(cid, "Current language: "+current+"\nPick another one:")
			msg.ReplyMarkup = languageKeyboard(current)
			if _, err := r.Bot.Send(msg); err != nil {
				log.Warn().Err(err).Int64("chat", cid).Msg("send failed")
			}
			return
		}
		lang := prompt.Normalize(args)
		if !prompt.Supported(lang) {
			r.send(cid, "Unknown language. Available: "+strings.Join(prompt.Languages(), ", "))
			return
		}
		r.settings.setLanguage(cid, lang)
		r.send(cid, "Language set to "+lang)
	case "subject":
		if args == "" {
			r.send(cid, "Current subject: "+r.settings.get(cid).Subject+"\nUsage: /subject <name>")
			return
		}
		r.settings.setSubject(cid, args)
		r.send(cid, "Subject set to "+args)
	case "history":
		r.showHistory(ctx, cid)
	case "clear":
		r.clearHistory(ctx, cid)
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) helpText() string {
	var b strings.Builder
	b.WriteString("Send me the text of your notes and I will reply with a narrative summary.\n\n")
	b.WriteString("/language [name] - show or set the summary language\n")
	b.WriteString("/subject [name] - show or set the subject\n")
	if r.History != nil {
		b.WriteString("/history - your recent summaries\n")
		b.WriteString("/clear - forget your history\n")
	}
	b.WriteString("/health - check the bot")
	return b.String()
}

func (r *Router) summarize(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	cs := r.settings.get(cid)
	_, _ = r.Bot.Request(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	ctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	out, err := r.Service.Summarize(ctx, summary.NewRequest(msg.Text, cs.Language, cs.Subject))
	if err != nil {
		log.Warn().Int64("chat", cid).Str("kind", summary.KindOf(err).String()).Err(err).Msg("summarize failed")
		r.send(cid, "⚠️ "+err.Error())
		return
	}
	for _, part := range util.Chunk(out, maxMessageRunes) {
		r.send(cid, part)
	}

	if r.History != nil {
		_, err := r.History.Add(ctx, store.Entry{
			UserID:        chatUser(cid),
			Language:      cs.Language,
			Subject:       cs.Subject,
			ExtractedText: msg.Text,
			Summary:       out,
		})
		if err != nil {
			log.Warn().Err(err).Int64("chat", cid).Msg("failed to save history")
		}
	}
}

func (r *Router) showHistory(ctx context.Context, cid int64) {
	if r.History == nil {
		r.send(cid, "History is not enabled.")
		return
	}
	entries, err := r.History.List(ctx, chatUser(cid))
	if err != nil {
		r.send(cid, "⚠️ "+err.Error())
		return
	}
	if len(entries) == 0 {
		r.send(cid, "No processing history yet.")
		return
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s · %s · %s\n%s\n\n", i+1,
			e.CreatedAt.Format("2006-01-02 15:04"), e.Subject, e.Language, util.Truncate(e.Summary, 200))
	}
	for _, part := range util.Chunk(b.String(), maxMessageRunes) {
		r.send(cid, part)
	}
}

func (r *Router) clearHistory(ctx context.Context, cid int64) {
	if r.History == nil {
		r.send(cid, "History is not enabled.")
		return
	}
	n, err := r.History.Clear(ctx, chatUser(cid))
	if err != nil {
		r.send(cid, "⚠️ "+err.Error())
		return
	}
	r.send(cid, fmt.Sprintf("Removed %d entries.", n))
}

func chatUser(chatID int64) string { return "tg:" + strconv.FormatInt(chatID, 10) }

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Warn().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}
