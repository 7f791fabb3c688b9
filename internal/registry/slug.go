package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/urlhandler"
)

var (
	unsafeSlugCharsRegex = regexp.MustCompile(`[^a-z0-9]+`)
	multipleDashesRegex  = regexp.MustCompile(`-+`)
)

const (
	maxSlugSegmentLen = 50
	maxPathSegments   = 4
	slugHashLen       = 8
)

// Slugify converts an arbitrary string into a lowercase dash-separated slug
// bounded at maxLen bytes.
func Slugify(s string, maxLen int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = unsafeSlugCharsRegex.ReplaceAllString(s, "-")
	s = multipleDashesRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "source"
	}
	return s
}

// SourceID derives the stable slug identifier for a source URL:
// <host-slug>-<path-slug>. The same URL always yields the same ID.
func SourceID(rawURL string) string {
	host, err := urlhandler.Hostname(rawURL)
	if err != nil {
		return Slugify(rawURL, maxSlugSegmentLen)
	}
	hostSlug := Slugify(host, maxSlugSegmentLen)

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return hostSlug
	}

	segments := make([]string, 0, maxPathSegments)
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, Slugify(seg, 20))
		if len(segments) == maxPathSegments {
			break
		}
	}

	if len(segments) == 0 {
		return hostSlug
	}
	return hostSlug + "-" + strings.Join(segments, "-")
}

// urlHash returns a short deterministic hash of a URL, used to unique
// colliding slugs.
func urlHash(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:slugHashLen]
}
