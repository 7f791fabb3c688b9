package models

import (
	"time"
	"unicode/utf8"
)

// TruncationMarker is appended to cached content that was cut at the
// configured size cap.
const TruncationMarker = "\n[content truncated]"

// CacheRecord is the durable per-source state: the last known signature and
// the extracted content it was computed from, plus the transport hints used
// for the next conditional fetch. Signature and Content are always written
// together as one atomic unit.
type CacheRecord struct {
	Signature    string    `json:"signature"`
	Content      string    `json:"content"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// TruncateContent caps s at max bytes, appending the truncation marker.
// The cut backs off to a rune boundary so the result stays valid UTF-8.
// A max of zero or less disables truncation.
func TruncateContent(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMarker
}
