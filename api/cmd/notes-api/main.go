package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"notes-backend/api/internal/config"
	"notes-backend/api/internal/handle"
	"notes-backend/api/internal/httpserver"
	"notes-backend/api/internal/logger"
	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
	"notes-backend/api/internal/summary/gemini"
)

var log = logger.New("notes-api")

func main() {
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, closeEngine, err := gemini.NewEngine(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini engine")
	}
	defer closeEngine()

	var history handle.HistoryStore
	if cfg.HistoryEnabled() {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open database")
		}
		defer db.Close()
		history = store.NewHistoryRepo(db, cfg.HistoryLimit)
	} else {
		log.Info().Msg("DATABASE_URL not set, history disabled")
	}

	h := handle.New(summary.NewService(engine), history)
	srv := httpserver.New(":"+cfg.Port, h, cfg.AllowedOrigins)
	if err := httpserver.Run(ctx, srv); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
