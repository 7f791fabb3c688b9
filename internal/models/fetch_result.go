package models

import "time"

// FetchResult holds the outcome of one HTTP fetch. It is owned by the
// pipeline run that produced it and discarded after extraction.
type FetchResult struct {
	Body          []byte
	ContentType   string
	StatusCode    int
	ETag          string
	LastModified  string
	ContentLength int64
	FetchedAt     time.Time
}

// HasCompleteHints reports whether all three transport cache hints are present.
func (fr *FetchResult) HasCompleteHints() bool {
	return fr.ETag != "" && fr.LastModified != "" && fr.ContentLength > 0
}

// HintsConsistent reports whether the advertised Content-Length matches the
// payload actually observed. Inconsistent hints must not be trusted for
// signature derivation.
func (fr *FetchResult) HintsConsistent() bool {
	return fr.ContentLength == int64(len(fr.Body))
}

// ExtractedContent is the normalized text produced from a FetchResult,
// consumed immediately by the signature engine.
type ExtractedContent struct {
	Text         string
	SelectorUsed string
	Kind         SourceKind
	Warning      string
}
