package domain

import "time"

// Session is the per-user record of a presented resolution menu awaiting a
// numeric reply. Variants keep the exact order shown to the user; menu
// indices are 1-based into that slice.
type Session struct {
	UserID        int64
	VideoID       string
	Title         string
	Variants      []VideoVariant
	MenuMessageID int
	CreatedAt     time.Time
}

// VariantAt returns the variant for a 1-based menu choice.
func (s *Session) VariantAt(choice int) (VideoVariant, bool) {
	if choice < 1 || choice > len(s.Variants) {
		return VideoVariant{}, false
	}
	return s.Variants[choice-1], true
}
