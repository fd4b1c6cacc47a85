package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/rohit98064/Tele-Bot/internal/config"
)

// Reporter forwards operational events to an optional Telegram log chat.
// A zero chat ID disables it entirely; sends are best effort and never
// propagate errors to the caller.
type Reporter struct {
	bot    *bot.Bot
	chatID int64
}

func NewReporter(b *bot.Bot, chatID int64) *Reporter {
	return &Reporter{bot: b, chatID: chatID}
}

func (r *Reporter) ReportError(err error, context string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	r.send(msg)
}

func (r *Reporter) ReportDelivery(userID int64, title, resolution string) {
	msg := fmt.Sprintf("✅ *Delivered*\n\n*User:* `%d`\n*Title:* %s\n*Resolution:* %s",
		userID, title, resolution)
	r.send(msg)
}

func (r *Reporter) send(message string) {
	if r == nil || r.chatID == 0 {
		return
	}

	// Truncate if too long
	if len([]rune(message)) > config.MaxTelegramMessageLen {
		message = string([]rune(message)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    r.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send telegram log", "error", err)
	}
}
