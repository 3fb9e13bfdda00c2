package telegram

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeoutSec = 30
	baseRetryDelay = 1 * time.Second
	maxRetryDelay  = 15 * time.Second
	idleDelay      = 200 * time.Millisecond
)

// UpdatesGetter is satisfied by *tgbotapi.BotAPI.
type UpdatesGetter interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return baseRetryDelay
}

func clampDelay(d time.Duration) time.Duration {
	if d < baseRetryDelay {
		return baseRetryDelay
	}
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// RunPolling long-polls for updates until ctx is done. Errors never stop the
// loop; they back off according to retryDelay.
func RunPolling(ctx context.Context, bot UpdatesGetter, handle func(tgbotapi.Update)) {
	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info().Msg("polling: context cancelled")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = pollTimeoutSec

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := clampDelay(retryDelay(err))
			log.Warn().Err(err).Dur("retry_in", d).Msg("polling error")
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}
		if len(updates) == 0 {
			sleep(ctx, idleDelay)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
