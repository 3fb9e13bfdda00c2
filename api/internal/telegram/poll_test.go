package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"nil", nil, 0},
		{"retry after", errors.New("Too Many Requests: retry after 7"), 7 * time.Second},
		{"rate limited", errors.New("too many requests"), 3 * time.Second},
		{"timeout", timeoutErr{}, 2 * time.Second},
		{"other", errors.New("boom"), time.Second},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := retryDelay(c.err); got != c.want {
				t.Fatalf("retryDelay = %v, want %v", got, c.want)
			}
		})
	}
	if got := clampDelay(retryDelay(errors.New("too many requests: retry after 60"))); got != maxRetryDelay {
		t.Fatalf("clamp = %v", got)
	}
}

type scriptedGetter struct {
	offsets []int
	cancel  context.CancelFunc
}

func (s *scriptedGetter) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.offsets = append(s.offsets, cfg.Offset)
	switch len(s.offsets) {
	case 1:
		return []tgbotapi.Update{{UpdateID: 10}, {UpdateID: 11}}, nil
	default:
		s.cancel()
		return nil, nil
	}
}

func TestRunPollingAdvancesOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := &scriptedGetter{cancel: cancel}

	var seen []int
	RunPolling(ctx, g, func(u tgbotapi.Update) { seen = append(seen, u.UpdateID) })

	if len(seen) != 2 || seen[0] != 10 || seen[1] != 11 {
		t.Fatalf("handled = %v", seen)
	}
	if len(g.offsets) != 2 || g.offsets[0] != 0 || g.offsets[1] != 12 {
		t.Fatalf("offsets = %v", g.offsets)
	}
}
