package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rohit98064/Tele-Bot/internal/config"
	"github.com/rohit98064/Tele-Bot/internal/domain"
)

// Fetcher downloads a variant's bytes into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, itag int, path string) error
}

// VideoSink streams a local file back to a chat as a video attachment.
type VideoSink interface {
	SendVideo(ctx context.Context, chatID int64, path, caption string) error
}

// DeliveryService fetches a chosen variant to local storage, sends the
// file through the chat transport and removes the local copy on every exit
// path. Nothing is retried; the controller surfaces failures to the user.
type DeliveryService struct {
	fetcher Fetcher
	sink    VideoSink
	dir     string
}

func NewDeliveryService(fetcher Fetcher, sink VideoSink, dir string) *DeliveryService {
	return &DeliveryService{fetcher: fetcher, sink: sink, dir: dir}
}

// Deliver runs one fetch-and-send operation. The returned error is a
// *domain.FetchError or *domain.SendError.
func (d *DeliveryService) Deliver(ctx context.Context, req domain.DeliveryRequest, chatID int64) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return &domain.FetchError{VideoID: req.VideoID, Itag: req.Variant.Itag, Err: err}
	}

	path := filepath.Join(d.dir, localFilename(req.Title, req.Variant.Resolution))
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("remove local video", "path", path, "error", err)
		}
	}()

	if err := d.fetcher.Fetch(ctx, req.VideoID, req.Variant.Itag, path); err != nil {
		return err
	}

	caption := fmt.Sprintf("🎬 %s\n📊 Resolution: %s", req.Title, req.Variant.Resolution)
	if err := d.sink.SendVideo(ctx, chatID, path, caption); err != nil {
		return &domain.SendError{VideoID: req.VideoID, Err: err}
	}
	return nil
}

// localFilename builds a filesystem-safe name from the video title. The
// title is reduced to alphanumerics, spaces, hyphens and underscores and
// capped to a bounded prefix; a per-request UUID keeps concurrent
// deliveries of identically-titled videos off the same path.
func localFilename(title, resolution string) string {
	safe := SanitizeTitle(title)
	if safe == "" {
		safe = "video"
	}
	return fmt.Sprintf("%s_%s_%s.mp4", safe, resolution, uuid.NewString()[:8])
}

// SanitizeTitle retains only characters that are safe in a filename and
// trims the result to the configured prefix length.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if len(safe) > config.MaxTitlePrefixLen {
		safe = strings.TrimSpace(safe[:config.MaxTitlePrefixLen])
	}
	return safe
}
