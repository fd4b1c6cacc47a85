package config

import "time"

const (
	// Preferred target: a single MP4 at exactly this resolution with both
	// tracks skips the menu entirely.
	PreferredResolution = "1080p"
	PreferredHeight     = 1080

	// Filename policy
	MaxTitlePrefixLen = 50

	// Catalog lookup timeout
	ResolveTimeout = 30 * time.Second

	// Download timeout; large videos take minutes
	FetchTimeout = 10 * time.Minute

	// Upload timeout, generous for large files
	SendTimeout = 60 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Rate limits (per minute, per chat)
	RateLimitPerMinute = 6
	RateLimitBurst     = 3
	RateLimitEntryTTL  = 5 * time.Minute
)
