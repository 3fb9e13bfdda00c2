package handle

import "net/http"

const healthBody = "Notes Backend is running!"

func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthBody))
}
