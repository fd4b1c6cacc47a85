package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/famomatic/ytv1/client"
	"github.com/rohit98064/Tele-Bot/internal/config"
	"github.com/rohit98064/Tele-Bot/internal/domain"
)

var watchURLPattern = regexp.MustCompile(`(?:v=|/shorts/|youtu\.be/)([0-9A-Za-z_-]{11})`)

// ContainsYouTubeHost reports whether the message references a YouTube
// host at all. Messages that do are always routed as a new request.
func ContainsYouTubeHost(text string) bool {
	return strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be")
}

// ExtractVideoID pulls the 11-character video ID out of a watch, shorts or
// short-link URL.
func ExtractVideoID(text string) (string, error) {
	m := watchURLPattern.FindStringSubmatch(text)
	if m == nil {
		return "", domain.ErrInvalidURL
	}
	return m[1], nil
}

// CatalogService resolves video metadata and variant lists through the
// ytv1 extraction client, and downloads chosen variants. The extraction
// itself is entirely the client's business.
type CatalogService struct {
	yt *client.Client
}

func NewCatalogService() *CatalogService {
	return &CatalogService{yt: client.New(client.Config{})}
}

// Resolve looks up the video behind a URL and returns its metadata with
// the variants a user may be offered: MP4 container, audio and video in
// one file, sorted descending by resolution. Ties keep provider order.
func (c *CatalogService) Resolve(ctx context.Context, url string) (*domain.Video, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.ResolveTimeout)
	defer cancel()

	info, err := c.yt.GetVideo(ctx, videoID)
	if err != nil {
		return nil, &domain.ExtractionError{URL: url, Err: err}
	}

	variants := toVariants(info.Formats, info.DurationSec)
	if len(variants) == 0 {
		return nil, domain.ErrNoStreams
	}

	return &domain.Video{
		ID:          info.ID,
		Title:       info.Title,
		Author:      info.Author,
		DurationSec: info.DurationSec,
		Views:       info.ViewCount,
		Variants:    variants,
	}, nil
}

// Fetch downloads the variant identified by itag into path.
func (c *CatalogService) Fetch(ctx context.Context, videoID string, itag int, path string) error {
	ctx, cancel := context.WithTimeout(ctx, config.FetchTimeout)
	defer cancel()

	_, err := c.yt.Download(ctx, videoID, client.DownloadOptions{
		Itag:       itag,
		OutputPath: path,
	})
	if err != nil {
		return &domain.FetchError{VideoID: videoID, Itag: itag, Err: err}
	}
	return nil
}

func toVariants(formats []client.FormatInfo, durationSec int64) []domain.VideoVariant {
	variants := make([]domain.VideoVariant, 0, len(formats))
	for _, f := range formats {
		if !isCombinedMP4(f.MimeType, f.HasAudio, f.HasVideo) {
			continue
		}
		// Unlabeled renditions cannot be offered on a numbered menu.
		if f.QualityLabel == "" {
			continue
		}
		variants = append(variants, domain.VideoVariant{
			Itag:       f.Itag,
			Resolution: f.QualityLabel,
			FPS:        f.FPS,
			Height:     f.Height,
			SizeMB:     estimateSizeMB(f.Bitrate, durationSec),
		})
	}
	SortVariants(variants)
	return variants
}

// SortVariants orders variants descending by resolution, keeping the
// original order for equal heights so the menu is deterministic.
func SortVariants(variants []domain.VideoVariant) {
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Height > variants[j].Height
	})
}

// PreferredVariant returns the fixed-policy match that bypasses the menu:
// an MP4 at exactly the preferred resolution with both tracks. The policy
// is a constant, not user-configurable.
func PreferredVariant(video *domain.Video) (domain.VideoVariant, bool) {
	for _, v := range video.Variants {
		if v.Height == config.PreferredHeight {
			return v, true
		}
	}
	return domain.VideoVariant{}, false
}

func isCombinedMP4(mimeType string, hasAudio, hasVideo bool) bool {
	if !hasAudio || !hasVideo {
		return false
	}
	return strings.HasPrefix(mimeType, "video/mp4")
}

// estimateSizeMB derives an approximate size from bitrate and duration.
// Returns 0 (unknown) when the provider reports no bitrate.
func estimateSizeMB(bitrate int, durationSec int64) float64 {
	if bitrate <= 0 || durationSec <= 0 {
		return 0
	}
	return float64(bitrate) * float64(durationSec) / 8 / 1024 / 1024
}

// FormatSize renders an approximate size for menu rows; unknown sizes stay
// legible rather than printing 0.0.
func FormatSize(sizeMB float64) string {
	if sizeMB <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.1f", sizeMB)
}
