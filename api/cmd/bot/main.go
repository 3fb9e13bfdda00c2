package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"

	"notes-backend/api/internal/config"
	"notes-backend/api/internal/httpserver"
	"notes-backend/api/internal/logger"
	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
	"notes-backend/api/internal/summary/gemini"
	"notes-backend/api/internal/telegram"
	"notes-backend/api/internal/util"
)

var log = logger.New("bot")

func main() {
	cfg := config.MustLoad()
	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, closeEngine, err := gemini.NewEngine(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini engine")
	}
	defer closeEngine()

	var (
		db      *sql.DB
		history telegram.HistoryStore
	)
	if cfg.HistoryEnabled() {
		db, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open database")
		}
		defer db.Close()
		history = store.NewHistoryRepo(db, cfg.HistoryLimit)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram")
	}
	log.Info().Str("user", bot.Self.UserName).Msg("authorized")

	r := telegram.NewRouter(bot, summary.NewService(engine), history)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthz(db)).Methods(http.MethodGet)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.WebhookURL != "" {
		path := "/webhook/" + util.ShortHash(bot.Token)
		if err := registerWebhook(bot, strings.TrimRight(cfg.WebhookURL, "/")+path); err != nil {
			log.Fatal().Err(err).Msg("set webhook")
		}
		router.HandleFunc(path, webhook(ctx, bot, r)).Methods(http.MethodPost)
		log.Info().Str("path", path).Msg("webhook mode")
	} else {
		// A webhook left over from an earlier deploy would make getUpdates fail.
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Warn().Err(err).Msg("delete webhook")
		}
		go telegram.RunPolling(ctx, bot, func(upd tgbotapi.Update) { r.HandleUpdate(ctx, upd) })
		log.Info().Msg("polling mode")
	}

	if err := httpserver.Run(ctx, srv); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func registerWebhook(bot *tgbotapi.BotAPI, public string) error {
	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	_, err = bot.Request(wh)
	return err
}

func webhook(ctx context.Context, bot *tgbotapi.BotAPI, r *telegram.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			log.Warn().Err(err).Msg("bad webhook update")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Ack right away; Telegram retries slow webhooks.
		go r.HandleUpdate(ctx, *upd)
		w.WriteHeader(http.StatusOK)
	}
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	}
}
