package summary

import (
	"context"
	"encoding/json"
)

// Request is one summarize call. Language and Subject are pointers so that an
// absent value can be told apart from an empty string.
type Request struct {
	ExtractedText *string `json:"extractedText"`
	Language      *string `json:"language"`
	Subject       *string `json:"subject"`

	UserID   string `json:"userId,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// NewRequest is a convenience for callers that always have all three fields.
func NewRequest(text, language, subject string) Request {
	return Request{ExtractedText: &text, Language: &language, Subject: &subject}
}

// Response is the envelope returned by the summarize endpoint. A success
// always carries summary, even when it is empty; a failure carries error.
type Response struct {
	Success bool   `json:"success"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Summary string `json:"summary"`
		}{true, r.Summary})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}{false, r.Error})
}

func OK(summary string) Response { return Response{Success: true, Summary: summary} }

func Fail(err error) Response { return Response{Success: false, Error: err.Error()} }

// Engine produces a summary for already validated input.
type Engine interface {
	Name() string
	Summarize(ctx context.Context, extractedText, language, subject string) (string, error)
}
