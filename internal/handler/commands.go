package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const startText = "👋 *YouTube Video Downloader Bot*\n\n" +
	"📥 Just send me any YouTube video URL and I'll download it for you!\n\n" +
	"⚡ *Features:*\n" +
	"• Auto 1080p MP4 download\n" +
	"• Multiple resolution options\n" +
	"• Fast downloading\n\n" +
	"📋 *Commands:*\n" +
	"/start - Show this message\n" +
	"/help - Show help\n" +
	"/about - About this bot"

const helpText = "❓ *How to use:*\n\n" +
	"1. Send me a YouTube video URL\n" +
	"2. I'll try to download 1080p MP4 version\n" +
	"3. If 1080p not available, I'll show you all available resolutions\n" +
	"4. Choose a resolution by number\n\n" +
	"📌 *Supported URLs:*\n" +
	"• youtube.com/watch?v=...\n" +
	"• youtu.be/...\n" +
	"• Shorts and playlists (single videos)\n\n" +
	"⚠️ *Limitations:*\n" +
	"• Max 2GB file size (Telegram limit)\n" +
	"• Videos < 50 mins work best"

const aboutText = "🤖 *YT Video Downloader Bot*\n\n" +
	"📅 Version: 1.0\n" +
	"🛠 Created by: Rohit\n\n" +
	"📍 Hosted on: Render Cloud\n" +
	"⚡ Status: Online 24/7"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendStatic(ctx, update, startText)
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendStatic(ctx, update, helpText)
}

func (h *Handler) handleAbout(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendStatic(ctx, update, aboutText)
}

func (h *Handler) sendStatic(ctx context.Context, update *models.Update, text string) {
	if update.Message == nil {
		return
	}
	if _, err := h.tx.SendMessage(ctx, update.Message.Chat.ID, text); err != nil {
		slog.Error("send static text", "error", err)
	}
}
