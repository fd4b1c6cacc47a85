package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rohit98064/Tele-Bot/internal/domain"
	"github.com/rohit98064/Tele-Bot/internal/service"
)

// HandleText routes a non-command message: anything referencing a YouTube
// host is a new request, everything else is treated as a menu reply.
func (h *Handler) HandleText(ctx context.Context, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	if service.ContainsYouTubeHost(text) {
		h.handleVideoURL(ctx, chatID, userID, text)
		return
	}
	h.handleChoice(ctx, chatID, userID, text)
}

// handleVideoURL runs the new-request path. A fresh URL always pre-empts a
// pending menu for the same user, without warning.
func (h *Handler) handleVideoURL(ctx context.Context, chatID, userID int64, url string) {
	h.sessions.Remove(userID)

	processingID, err := h.tx.SendMessage(ctx, chatID, "⏳ Processing URL...")
	if err != nil {
		slog.Error("send processing message", "error", err)
		return
	}
	defer h.tx.DeleteMessage(ctx, chatID, processingID)

	video, err := h.catalog.Resolve(ctx, url)
	if err != nil {
		h.reportResolveError(ctx, chatID, url, err)
		return
	}

	infoID, err := h.tx.SendMessage(ctx, chatID, videoInfoText(video))
	if err != nil {
		slog.Error("send video info", "error", err)
		return
	}

	// Preferred target short-circuit: exact 1080p MP4 skips the menu.
	if v, ok := service.PreferredVariant(video); ok {
		h.tx.EditMessage(ctx, chatID, infoID, fmt.Sprintf(
			"✅ *1080p Quality Available!*\n"+
				"📊 Resolution: 1080p\n"+
				"💾 Size: %s MB\n\n"+
				"⏬ Downloading...",
			service.FormatSize(v.SizeMB),
		))
		h.dispatchDelivery(ctx, chatID, userID, domain.DeliveryRequest{
			VideoID: video.ID,
			Variant: v,
			Title:   video.Title,
		}, 0)
		return
	}

	if err := h.tx.EditMessage(ctx, chatID, infoID, renderMenu(video.Variants)); err != nil {
		slog.Error("edit menu message", "error", err)
		return
	}

	h.sessions.Put(&domain.Session{
		UserID:        userID,
		VideoID:       video.ID,
		Title:         video.Title,
		Variants:      video.Variants,
		MenuMessageID: infoID,
		CreatedAt:     time.Now(),
	})
}

func (h *Handler) reportResolveError(ctx context.Context, chatID int64, url string, err error) {
	var extractionErr *domain.ExtractionError

	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		h.tx.SendMessage(ctx, chatID, "❌ Please send a valid YouTube URL")
	case errors.Is(err, domain.ErrNoStreams):
		h.tx.SendMessage(ctx, chatID, "❌ No MP4 streams available for this video.")
	case errors.As(err, &extractionErr):
		slog.Error("catalog lookup failed", "url", url, "error", err)
		h.tx.SendMessage(ctx, chatID, fmt.Sprintf("❌ Error: %v", extractionErr.Err))
	default:
		slog.Error("catalog lookup failed", "url", url, "error", err)
		h.tx.SendMessage(ctx, chatID, fmt.Sprintf("❌ Error: %v", err))
	}
}

func videoInfoText(video *domain.Video) string {
	return fmt.Sprintf(
		"🎬 *%s*\n"+
			"👤 Channel: %s\n"+
			"⏱ Duration: %d:%02d\n"+
			"👁 Views: %s\n\n"+
			"🔍 Searching for 1080p quality...",
		video.Title, video.Author,
		video.DurationSec/60, video.DurationSec%60,
		formatViews(video.Views),
	)
}

func renderMenu(variants []domain.VideoVariant) string {
	var b strings.Builder
	b.WriteString("📋 *Available Resolutions:*\n\n")
	for i, v := range variants {
		fmt.Fprintf(&b, "%d. %s (%dfps) - %sMB\n", i+1, v.Resolution, v.FPS, service.FormatSize(v.SizeMB))
	}
	b.WriteString("\nReply with number to download (e.g., '1')")
	return b.String()
}

// formatViews renders a view count with comma grouping, e.g. 1,234,567.
func formatViews(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
