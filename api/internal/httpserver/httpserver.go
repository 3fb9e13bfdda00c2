package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"notes-backend/api/internal/handle"
	"notes-backend/api/internal/logger"
)

const (
	ReadTimeout     = 30 * time.Second
	MaxHeaderBytes  = 1 << 20
	ShutdownTimeout = 10 * time.Second
)

const apiPrefix = "/api/notes"

var log = logger.New("http")

// NewRouter registers the notes API. History routes exist only when h has a history store.
func NewRouter(h *handle.Handle) *mux.Router {
	// Routes stay on the root router; a PathPrefix subrouter answers a wrong method with 404.
	r := mux.NewRouter()
	r.HandleFunc(apiPrefix+"/summarize", h.Summarize).Methods(http.MethodPost)
	r.HandleFunc(apiPrefix+"/health", h.Health).Methods(http.MethodGet)
	if h.HistoryEnabled() {
		r.HandleFunc(apiPrefix+"/history", h.History).Methods(http.MethodGet)
		r.HandleFunc(apiPrefix+"/history", h.ClearHistory).Methods(http.MethodDelete)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// Handler wraps the router with CORS, access logging and panic recovery.
func Handler(h *handle.Handle, allowedOrigins []string) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"X-Error-Kind"}),
	)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(panicLogger{}))(
		handlers.CustomLoggingHandler(io.Discard, cors(NewRouter(h)), accessLog),
	)
}

// panicLogger routes recovered panics to the component logger.
type panicLogger struct{}

func (panicLogger) Println(v ...interface{}) {
	log.Error().Msg(strings.TrimSpace(fmt.Sprintln(v...)))
}

func accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	log.Info().
		Str("method", p.Request.Method).
		Str("path", p.URL.Path).
		Int("status", p.StatusCode).
		Int("size", p.Size).
		Dur("took", time.Since(p.TimeStamp)).
		Msg("request")
}

func New(addr string, h *handle.Handle, allowedOrigins []string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        Handler(h, allowedOrigins),
		ReadTimeout:    ReadTimeout,
		MaxHeaderBytes: MaxHeaderBytes,
	}
}

// Run serves until ctx is done, then shuts the server down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
