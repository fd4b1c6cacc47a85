package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL      = errors.New("invalid youtube url")
	ErrNoStreams       = errors.New("no usable streams")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrOutOfRange      = errors.New("choice out of range")
)

// ExtractionError reports a failed catalog lookup (bad or unavailable
// video, upstream failure). Non-fatal; no session is created.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FetchError reports a failed download of a chosen variant.
type FetchError struct {
	VideoID string
	Itag    int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s itag %d: %v", e.VideoID, e.Itag, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SendError reports a failed transmission of a downloaded file.
type SendError struct {
	VideoID string
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s: %v", e.VideoID, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
