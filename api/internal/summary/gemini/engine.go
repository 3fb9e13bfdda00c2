package gemini

import (
	"context"

	"notes-backend/api/internal/config"
	"notes-backend/api/internal/summary"
)

// NewEngine builds the engine selected by GEMINI_TRANSPORT. The returned
// close func releases SDK resources and is a no-op for the REST client.
func NewEngine(ctx context.Context, cfg *config.Config) (summary.Engine, func() error, error) {
	if cfg.GeminiTransport == config.TransportSDK {
		c, err := NewSDK(ctx, SDKConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("model", cfg.GeminiModel).Msg("using gemini sdk transport")
		return c, c.Close, nil
	}
	c := New(Config{APIKey: cfg.GeminiAPIKey, URL: cfg.GeminiAPIURL, Timeout: cfg.HTTPTimeout})
	log.Info().Str("url", cfg.GeminiAPIURL).Msg("using gemini rest transport")
	return c, func() error { return nil }, nil
}
