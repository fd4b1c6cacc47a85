package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// chatRateLimiter tracks message rates per chat with expiration of idle
// entries.
type chatRateLimiter struct {
	mu       sync.Mutex
	visitors map[int64]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func newChatRateLimiter(perMinute, burst int, ttl time.Duration) *chatRateLimiter {
	return &chatRateLimiter{
		visitors: make(map[int64]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		ttl:      ttl,
	}
}

func (l *chatRateLimiter) allow(chatID int64) bool {
	now := time.Now()

	l.mu.Lock()
	v, ok := l.visitors[chatID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[chatID] = v
	}
	v.lastSeen = now
	for id, vv := range l.visitors {
		if now.Sub(vv.lastSeen) > l.ttl {
			delete(l.visitors, id)
		}
	}
	l.mu.Unlock()

	return v.limiter.Allow()
}

// RateLimit returns middleware that enforces a per-chat message rate.
func RateLimit(perMinute, burst int, ttl time.Duration) bot.Middleware {
	limiter := newChatRateLimiter(perMinute, burst, ttl)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !limiter.allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please wait a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
