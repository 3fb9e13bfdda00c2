package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
)

const (
	anonymousUser   = "anonymous"
	errorKindHeader = "X-Error-Kind"
)

// Summarize handles POST /api/notes/summarize. Every failure, whatever its
// kind, is answered with 400 and the {success:false,error} envelope.
func (h *Handle) Summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req summary.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.fail(w, summary.Wrap(summary.KindValidation, err, "bad json: "))
		return
	}

	out, err := h.svc.Summarize(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	log.Info().
		Str("engine", h.svc.EngineName()).
		Str("language", *req.Language).
		Str("subject", *req.Subject).
		Int("text_len", len(*req.ExtractedText)).
		Int("summary_len", len(out)).
		Msg("summary generated")

	h.remember(r, req, out)
	writeJSON(w, http.StatusOK, summary.OK(out))
}

func (h *Handle) fail(w http.ResponseWriter, err error) {
	kind := summary.KindOf(err)
	ev := log.Warn()
	if kind == summary.KindUnknown {
		ev = log.Error()
	}
	ev.Str("kind", kind.String()).Err(err).Msg("summarize failed")

	w.Header().Set(errorKindHeader, kind.String())
	writeJSON(w, http.StatusBadRequest, summary.Fail(err))
}

// remember saves a history entry; failures are logged and never reach the caller.
func (h *Handle) remember(r *http.Request, req summary.Request, out string) {
	if h.history == nil {
		return
	}
	user := strings.TrimSpace(req.UserID)
	if user == "" {
		user = anonymousUser
	}
	_, err := h.history.Add(r.Context(), store.Entry{
		UserID:        user,
		Filename:      req.Filename,
		Language:      *req.Language,
		Subject:       *req.Subject,
		ExtractedText: *req.ExtractedText,
		Summary:       out,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", user).Msg("failed to save history")
	}
}
