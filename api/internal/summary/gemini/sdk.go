package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"notes-backend/api/internal/prompt"
	"notes-backend/api/internal/summary"
)

const DefaultModel = "gemini-2.5-flash"

type SDKConfig struct {
	APIKey   string
	Model    string
	Endpoint string // optional override, mostly for tests
}

// SDKClient talks to Gemini through the official Go SDK. Request and error
// semantics match Client; only the wire framing differs.
type SDKClient struct {
	apiKey string
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewSDK creates the SDK client. A key that fails the heuristic is not an error
// here: like Client, the configuration error is reported on each call.
func NewSDK(ctx context.Context, cfg SDKConfig) (*SDKClient, error) {
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = DefaultModel
	}
	s := &SDKClient{apiKey: cfg.APIKey}
	if CheckAPIKey(cfg.APIKey) != nil {
		return s, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	s.client = cl
	s.model = cl.GenerativeModel(name)
	return s, nil
}

func (s *SDKClient) Name() string { return "gemini-sdk" }

func (s *SDKClient) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *SDKClient) Summarize(ctx context.Context, extractedText, language, subject string) (string, error) {
	if err := CheckAPIKey(s.apiKey); err != nil || s.model == nil {
		return "", summary.ErrInvalidAPIKey
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt.Build(extractedText, language, subject)))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", summary.Errorf(summary.KindBlocked,
				servicePrefix+parseFailure+"Content blocked by safety settings: %s", blockReason(blocked))
		}
		return "", summary.Wrap(summary.KindTransport, redact(err, s.apiKey), servicePrefix)
	}

	text, err := sdkText(resp)
	if err != nil {
		return "", summary.Wrap(summary.KindOf(err), err, servicePrefix)
	}
	return text, nil
}

// sdkText mirrors generateResponse.firstText for SDK response values.
func sdkText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", summary.Errorf(summary.KindParse, parseFailure+"Unexpected response format from AI service")
	}
	if len(resp.Candidates) > 0 {
		c := resp.Candidates[0]
		if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
			return "", summary.Errorf(summary.KindParse, parseFailure+"candidate has no text")
		}
		t, ok := c.Content.Parts[0].(genai.Text)
		if !ok {
			return "", summary.Errorf(summary.KindParse,
				parseFailure+"first part is %T, not text", c.Content.Parts[0])
		}
		return string(t), nil
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", summary.Errorf(summary.KindBlocked,
			parseFailure+"Content blocked by safety settings: %s", resp.PromptFeedback.BlockReason)
	}
	return "", summary.Errorf(summary.KindParse, parseFailure+"Unexpected response format from AI service")
}

func blockReason(e *genai.BlockedError) string {
	switch {
	case e.PromptFeedback != nil:
		return e.PromptFeedback.BlockReason.String()
	case e.Candidate != nil:
		return e.Candidate.FinishReason.String()
	default:
		return e.Error()
	}
}
