package handle

import (
	"net/http"
	"strings"

	"notes-backend/api/internal/store"
)

type historyResponse struct {
	Success bool          `json:"success"`
	History []store.Entry `json:"history,omitempty"`
	Deleted *int64        `json:"deleted,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func userParam(r *http.Request) string {
	if u := strings.TrimSpace(r.URL.Query().Get("userId")); u != "" {
		return u
	}
	return anonymousUser
}

// History handles GET /api/notes/history?userId=<id>.
func (h *Handle) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusNotFound, historyResponse{Error: "history is not enabled"})
		return
	}
	user := userParam(r)
	entries, err := h.history.List(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("list history")
		writeJSON(w, http.StatusInternalServerError, historyResponse{Error: err.Error()})
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		History []store.Entry `json:"history"`
	}{true, entries})
}

// ClearHistory handles DELETE /api/notes/history?userId=<id>.
func (h *Handle) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusNotFound, historyResponse{Error: "history is not enabled"})
		return
	}
	user := userParam(r)
	n, err := h.history.Clear(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("clear history")
		writeJSON(w, http.StatusInternalServerError, historyResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, Deleted: &n})
}
