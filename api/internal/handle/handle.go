package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"notes-backend/api/internal/logger"
	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
)

const maxBodyBytes = 4 << 20

var log = logger.New("handle")

// HistoryStore keeps the recent summaries of each user.
type HistoryStore interface {
	Add(ctx context.Context, e store.Entry) (store.Entry, error)
	List(ctx context.Context, userID string) ([]store.Entry, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

type Handle struct {
	svc     *summary.Service
	history HistoryStore
}

// New wires the handlers. history may be nil, which disables the history endpoints.
func New(svc *summary.Service, history HistoryStore) *Handle {
	return &Handle{
		svc:     svc,
		history: history,
	}
}

func (h *Handle) HistoryEnabled() bool { return h.history != nil }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
