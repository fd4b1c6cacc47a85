package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rohit98064/Tele-Bot/internal/config"
)

// Client adapts *bot.Bot to the narrow transport surface the handlers
// need: plain sends, edits, deletes and video uploads.
type Client struct {
	bot *bot.Bot
}

func NewClient(b *bot.Bot) *Client {
	return &Client{bot: b}
}

// SendMessage sends text with Markdown formatting, falling back to plain
// text if Telegram rejects the markup. Returns the message ID for later
// edits.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}
	msg, err := c.bot.SendMessage(ctx, params)
	if err != nil {
		slog.Warn("markdown send failed, falling back to plain text", "error", err)
		params.ParseMode = ""
		msg, err = c.bot.SendMessage(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("send message: %w", err)
		}
	}
	return msg.ID, nil
}

// EditMessage replaces the text of a previously sent message.
func (c *Client) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	if len([]rune(text)) > config.MaxTelegramMessageLen {
		text = string([]rune(text)[:config.MaxTelegramMessageLen-3]) + "..."
	}

	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}
	_, err := c.bot.EditMessageText(ctx, params)
	if err != nil {
		params.ParseMode = ""
		_, err = c.bot.EditMessageText(ctx, params)
	}
	if err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// DeleteMessage removes a message, best effort.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// SendVideo uploads a local file as a playable video attachment. The
// upload runs under a bounded timeout sized for large files, with an
// "uploading video" chat action kept alive while it is in flight.
func (c *Client) SendVideo(ctx context.Context, chatID int64, path, caption string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, config.SendTimeout)
	defer cancel()

	stopAction := c.startUploading(ctx, chatID)
	defer stopAction()

	_, err = c.bot.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:            chatID,
		Video:             &models.InputFileUpload{Filename: filepath.Base(path), Data: f},
		Caption:           caption,
		SupportsStreaming: true,
	})
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

// startUploading sends the upload_video chat action every 4 seconds until
// the returned stop function is called.
func (c *Client) startUploading(ctx context.Context, chatID int64) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		// Send immediately
		c.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionUploadVideo,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.bot.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: models.ChatActionUploadVideo,
				})
			}
		}
	}()
	return cancel
}
