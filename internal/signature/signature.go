package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// ChangeState classifies a computed signature against the cached one.
type ChangeState string

const (
	// FirstSeen means no cached record exists for the source yet.
	FirstSeen ChangeState = "first_seen"
	// Changed means the signature differs from the cached one.
	Changed ChangeState = "changed"
	// Unchanged means the signature matches the cached one.
	Unchanged ChangeState = "unchanged"
)

// Engine computes content signatures and classifies them against cached
// state. Signatures come in two shapes: a transport-hint composite when
// the server provides a trustworthy validator set, and a content hash of
// the normalized extracted text otherwise.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a new signature Engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "SignatureEngine").Logger(),
	}
}

// Compute derives the signature for a fetch. The transport composite is
// used only when ETag, Last-Modified and Content-Length are all present
// and the declared length matches the observed payload; PDF responses
// always hash because their validator headers are unstable in practice.
// Everything else hashes the normalized extracted text, so two fetches
// that extract to identical text always produce the same signature.
func (e *Engine) Compute(url string, fr *models.FetchResult, content *models.ExtractedContent) string {
	if content.Kind != models.KindPDF && fr.HasCompleteHints() {
		if fr.HintsConsistent() {
			return fmt.Sprintf("etag=%s|lm=%s|cl=%d", fr.ETag, fr.LastModified, fr.ContentLength)
		}
		sigErr := errorwrapper.NewSignatureError(url, fmt.Sprintf(
			"declared Content-Length %d does not match %d observed bytes", fr.ContentLength, len(fr.Body)))
		e.logger.Warn().Err(sigErr).Msg("Transport hints inconsistent, falling back to content hash")
	}
	return hashSignature(content.Text)
}

// Classify compares a freshly computed signature against the cached
// record. A missing record is FirstSeen regardless of the signature.
func (e *Engine) Classify(sig string, cached *models.CacheRecord, found bool) ChangeState {
	if !found || cached == nil {
		return FirstSeen
	}
	if sig != cached.Signature {
		return Changed
	}
	return Unchanged
}

func hashSignature(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sha256=" + hex.EncodeToString(sum[:])
}
