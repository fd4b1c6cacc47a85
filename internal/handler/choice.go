package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rohit98064/Tele-Bot/internal/domain"
	"github.com/rohit98064/Tele-Bot/internal/service"
)

// chooseVariant classifies a menu reply against the pending session, if
// any. Rejections never mutate the session.
func chooseVariant(sess *domain.Session, text string) (domain.VideoVariant, error) {
	if sess == nil {
		return domain.VideoVariant{}, domain.ErrNoActiveSession
	}
	choice, err := strconv.Atoi(text)
	if err != nil {
		return domain.VideoVariant{}, domain.ErrInvalidChoice
	}
	variant, ok := sess.VariantAt(choice)
	if !ok {
		return domain.VideoVariant{}, domain.ErrOutOfRange
	}
	return variant, nil
}

// handleChoice runs the menu-reply path. Bad replies leave the session in
// place so the menu stays valid for another try.
func (h *Handler) handleChoice(ctx context.Context, chatID, userID int64, text string) {
	sess, _ := h.sessions.Get(userID)

	variant, err := chooseVariant(sess, text)
	switch {
	case errors.Is(err, domain.ErrNoActiveSession):
		h.tx.SendMessage(ctx, chatID, "❌ No active session. Please send a YouTube URL first.")
		return
	case errors.Is(err, domain.ErrInvalidChoice):
		h.tx.SendMessage(ctx, chatID, "❌ Please enter a valid number")
		return
	case errors.Is(err, domain.ErrOutOfRange):
		h.tx.SendMessage(ctx, chatID, fmt.Sprintf(
			"❌ Please choose a number between 1 and %d", len(sess.Variants)))
		return
	}

	// Consume the session exactly once; a concurrent reply or a newly
	// arrived URL wins and this reply is dropped.
	taken, ok := h.sessions.Take(userID)
	if !ok || taken != sess {
		return
	}

	downloadingID, err := h.tx.SendMessage(ctx, chatID, fmt.Sprintf(
		"⏬ Downloading %s...\n"+
			"📊 Size: %s MB\n"+
			"Please wait...",
		variant.Resolution, service.FormatSize(variant.SizeMB),
	))
	if err != nil {
		slog.Error("send downloading message", "error", err)
		downloadingID = 0
	}

	h.dispatchDelivery(ctx, chatID, userID, domain.DeliveryRequest{
		VideoID: sess.VideoID,
		Variant: variant,
		Title:   sess.Title,
	}, downloadingID)
}

// dispatchDelivery runs the fetch-and-send as its own goroutine so one
// user's large download never stalls other users' messages. progressID,
// when non-zero, is a transient status message removed on completion.
func (h *Handler) dispatchDelivery(ctx context.Context, chatID, userID int64, req domain.DeliveryRequest, progressID int) {
	go func() {
		err := h.delivery.Deliver(ctx, req, chatID)

		if progressID != 0 {
			h.tx.DeleteMessage(ctx, chatID, progressID)
		}

		if err != nil {
			slog.Error("delivery failed",
				"video_id", req.VideoID,
				"itag", req.Variant.Itag,
				"user_id", userID,
				"error", err,
			)
			h.reporter.ReportError(err, "delivery")
			h.tx.SendMessage(ctx, chatID, fmt.Sprintf("❌ Download failed: %v", err))
			return
		}

		h.reporter.ReportDelivery(userID, req.Title, req.Variant.Resolution)
	}()
}
