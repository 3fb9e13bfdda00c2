package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notes-backend/api/internal/config"
	"notes-backend/api/internal/logger"
	"notes-backend/api/internal/prompt"
	"notes-backend/api/internal/summary"
)

const DefaultURL = config.DefaultGeminiAPIURL

// Error text prefixes shown to callers.
const (
	servicePrefix = "AI service error: "
	parseFailure  = "Failed to parse AI response: "
)

// minKeyLength is a format heuristic for Gemini keys, not a validity check.
const minKeyLength = 25

const maxResponseBytes = 8 << 20

var log = logger.New("gemini")

type Config struct {
	APIKey string
	URL    string // defaults to DefaultURL
	// HTTPClient defaults to a client with Timeout (zero means no client timeout).
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls the generateContent REST endpoint.
type Client struct {
	apiKey string
	url    string
	httpc  *http.Client
}

func New(cfg Config) *Client {
	u := strings.TrimSpace(cfg.URL)
	if u == "" {
		u = DefaultURL
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{apiKey: cfg.APIKey, url: u, httpc: httpc}
}

func (c *Client) Name() string { return "gemini" }

// CheckAPIKey applies the key heuristic shared by both transports.
func CheckAPIKey(key string) error {
	if strings.TrimSpace(key) == "" || len(key) < minKeyLength {
		return summary.ErrInvalidAPIKey
	}
	return nil
}

// Summarize builds the prompt, posts it once and extracts the first candidate's text.
func (c *Client) Summarize(ctx context.Context, extractedText, language, subject string) (string, error) {
	if err := CheckAPIKey(c.apiKey); err != nil {
		return "", err
	}

	payload, err := encodeRequest(newRequest(prompt.Build(extractedText, language, subject)))
	if err != nil {
		return "", summary.Wrap(summary.KindUnknown, err, servicePrefix)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return "", summary.Wrap(summary.KindConfiguration, err, servicePrefix)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", summary.Wrap(summary.KindTransport, err, servicePrefix)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", summary.Wrap(summary.KindTransport, redact(err, c.apiKey), servicePrefix)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", summary.Wrap(summary.KindTransport, err, servicePrefix)
	}
	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("generateContent")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", summary.Wrap(summary.KindTransport, statusError(resp.StatusCode, body), servicePrefix)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", summary.Wrap(summary.KindParse, err, servicePrefix+parseFailure)
	}
	text, err := out.firstText()
	if err != nil {
		return "", summary.Wrap(summary.KindOf(err), err, servicePrefix)
	}
	return text, nil
}

// encodeRequest marshals without HTML escaping so <, > and & in notes go out verbatim.
func encodeRequest(v generateRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q", c.url)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func statusError(code int, body []byte) error {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != nil && e.Error.Message != "" {
		return fmt.Errorf("gemini %d: %s", code, e.Error.Message)
	}
	return fmt.Errorf("gemini %d: %s", code, strings.TrimSpace(string(body)))
}

// redact strips the key from errors; *url.Error includes the full request URL.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
