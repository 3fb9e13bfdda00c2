package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"

	"notes-backend/api/internal/handle"
	"notes-backend/api/internal/store"
	"notes-backend/api/internal/summary"
	"notes-backend/api/internal/summary/gemini"
)

const testKey = "AIzaSyTEST-0123456789abcdefghij"

type nopHistory struct{}

func (nopHistory) Add(_ context.Context, e store.Entry) (store.Entry, error) { return e, nil }
func (nopHistory) List(context.Context, string) ([]store.Entry, error)      { return nil, nil }
func (nopHistory) Clear(context.Context, string) (int64, error)             { return 0, nil }

func newAPI(t *testing.T, providerReply string, history handle.HistoryStore) *httptest.Server {
	t.Helper()
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, providerReply)
	}))
	t.Cleanup(provider.Close)

	engine := gemini.New(gemini.Config{APIKey: testKey, URL: provider.URL})
	h := handle.New(summary.NewService(engine), history)
	api := httptest.NewServer(Handler(h, []string{"*"}))
	t.Cleanup(api.Close)
	return api
}

func TestSummarizeEndToEnd(t *testing.T) {
	api := newAPI(t, `{"candidates":[{"content":{"parts":[{"text":"Les dérivées mesurent le changement."}]}}]}`, nil)

	resp, err := http.Post(api.URL+"/api/notes/summarize", "application/json",
		strings.NewReader(`{"extractedText":"notes...","language":"french","subject":"Math"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got summary.Response
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Success || got.Summary != "Les dérivées mesurent le changement." {
		t.Fatalf("envelope = %+v", got)
	}
}

func TestSummarizeEndToEndEmptyText(t *testing.T) {
	api := newAPI(t, `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, nil)

	resp, err := http.Post(api.URL+"/api/notes/summarize", "application/json",
		strings.NewReader(`{"extractedText":"notes","language":"english","subject":"Math"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != `{"success":true,"summary":""}` {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
}

func TestSummarizeEndToEndBlocked(t *testing.T) {
	api := newAPI(t, `{"promptFeedback":{"blockReason":"SAFETY"}}`, nil)

	resp, err := http.Post(api.URL+"/api/notes/summarize", "application/json",
		strings.NewReader(`{"extractedText":"notes","language":"english","subject":"Biology"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Error-Kind") != "blocked" {
		t.Fatalf("kind = %q", resp.Header.Get("X-Error-Kind"))
	}
	var got summary.Response
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.Success || !strings.Contains(got.Error, "SAFETY") {
		t.Fatalf("envelope = %+v", got)
	}
}

func TestRoutes(t *testing.T) {
	withoutHistory := newAPI(t, `{}`, nil)
	withHistory := newAPI(t, `{}`, nopHistory{})

	cases := []struct {
		name   string
		base   string
		method string
		path   string
		want   int
	}{
		{"health", withoutHistory.URL, http.MethodGet, "/api/notes/health", http.StatusOK},
		{"healthz", withoutHistory.URL, http.MethodGet, "/healthz", http.StatusOK},
		{"summarize wrong method", withoutHistory.URL, http.MethodGet, "/api/notes/summarize", http.StatusMethodNotAllowed},
		{"unknown path", withoutHistory.URL, http.MethodGet, "/api/notes/nope", http.StatusNotFound},
		{"history disabled", withoutHistory.URL, http.MethodGet, "/api/notes/history", http.StatusNotFound},
		{"history wrong method", withHistory.URL, http.MethodPut, "/api/notes/history", http.StatusMethodNotAllowed},
		{"history list", withHistory.URL, http.MethodGet, "/api/notes/history?userId=u1", http.StatusOK},
		{"history clear", withHistory.URL, http.MethodDelete, "/api/notes/history?userId=u1", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req, _ := http.NewRequest(c.method, c.base+c.path, nil)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("do: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != c.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, c.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	api := newAPI(t, `{}`, nil)
	req, _ := http.NewRequest(http.MethodOptions, api.URL+"/api/notes/summarize", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preflight status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("missing Access-Control-Allow-Origin")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := handle.New(summary.NewService(gemini.New(gemini.Config{})), nil)
	srv := New("127.0.0.1:0", h, []string{"*"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRecoveredPanicIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	log = zerolog.New(&buf)
	t.Cleanup(func() { log = prev })

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	handlers.RecoveryHandler(handlers.RecoveryLogger(panicLogger{}))(boom).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("log = %s", buf.String())
	}
}
