package summary

import (
	"context"
	"errors"
	"strings"
)

// Service validates requests and hands them to an Engine.
type Service struct {
	engine Engine
}

func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

func (s *Service) EngineName() string { return s.engine.Name() }

// Validate checks the request in the order callers rely on:
// empty text first, then missing language or subject.
func Validate(req Request) error {
	if req.ExtractedText == nil || strings.TrimSpace(*req.ExtractedText) == "" {
		return ErrEmptyText
	}
	if req.Language == nil || req.Subject == nil {
		return ErrMissingMetadata
	}
	return nil
}

// Summarize returns the generated summary or an *Error. The engine is not
// called when validation fails.
func (s *Service) Summarize(ctx context.Context, req Request) (string, error) {
	if err := Validate(req); err != nil {
		return "", err
	}
	out, err := s.engine.Summarize(ctx, *req.ExtractedText, *req.Language, *req.Subject)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return "", err
		}
		return "", Wrap(KindUnknown, err, "")
	}
	return out, nil
}
