package domain

// VideoVariant is one downloadable encoding of a video. Variants offered
// to users are always a single MP4 file carrying both audio and video,
// since Telegram delivers exactly one playable file.
type VideoVariant struct {
	// Itag is the opaque fetch handle understood by the catalog provider.
	Itag       int
	Resolution string // e.g. "1080p"; empty when the provider has no label
	FPS        int
	Height     int
	// SizeMB is an estimate; 0 means unknown.
	SizeMB float64
}

// Video is the result of a catalog lookup.
type Video struct {
	ID          string
	Title       string
	Author      string
	DurationSec int64
	Views       int64
	// Variants are filtered to MP4 audio+video and sorted descending by
	// resolution, in menu order.
	Variants []VideoVariant
}

// DeliveryRequest carries one fetch-and-send operation from the controller
// to the delivery pipeline.
type DeliveryRequest struct {
	VideoID string
	Variant VideoVariant
	Title   string
}
