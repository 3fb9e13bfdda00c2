package gemini

import "notes-backend/api/internal/summary"

// Request side: {"contents":[{"parts":[{"text":"..."}]}]}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func newRequest(text string) generateRequest {
	return generateRequest{Contents: []content{{Parts: []part{{Text: text}}}}}
}

// Response side. Every level is optional so a missing key is a nil check,
// never a zero value mistaken for data.

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content      *candidateContent `json:"content,omitempty"`
	FinishReason string            `json:"finishReason,omitempty"`
}

type candidateContent struct {
	Parts []responsePart `json:"parts"`
}

type responsePart struct {
	Text *string `json:"text,omitempty"`
}

type promptFeedback struct {
	BlockReason *string `json:"blockReason,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// firstText picks the text out of a decoded response.
func (r generateResponse) firstText() (string, error) {
	if len(r.Candidates) > 0 {
		c := r.Candidates[0]
		if c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0].Text == nil {
			return "", summary.Errorf(summary.KindParse,
				parseFailure+"candidate has no text (finishReason=%q)", c.FinishReason)
		}
		return *c.Content.Parts[0].Text, nil
	}
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != nil {
		return "", summary.Errorf(summary.KindBlocked,
			parseFailure+"Content blocked by safety settings: %s", *r.PromptFeedback.BlockReason)
	}
	return "", summary.Errorf(summary.KindParse, parseFailure+"Unexpected response format from AI service")
}
