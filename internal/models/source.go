package models

import "strings"

// SourceKind declares how a source's payload should be extracted.
type SourceKind string

const (
	KindHTML SourceKind = "html"
	KindPDF  SourceKind = "pdf"
)

// DefaultHTMLSelector is applied to HTML sources without a selector override.
const DefaultHTMLSelector = "main, article, section, h1, h2, h3"

// Source is a monitored target: a URL plus its extraction configuration.
// ID is a stable slug derived from the URL. Only Active and Selector may
// be edited after creation.
type Source struct {
	ID           string     `json:"id" yaml:"id"`
	URL          string     `json:"url" yaml:"url"`
	Kind         SourceKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Selector     string     `json:"selector,omitempty" yaml:"selector,omitempty"`
	Jurisdiction string     `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Active       bool       `json:"active" yaml:"active"`
}

// EffectiveKind returns the declared kind, inferring from the URL when unset.
func (s Source) EffectiveKind() SourceKind {
	if s.Kind == KindHTML || s.Kind == KindPDF {
		return s.Kind
	}
	return GuessKind(s.URL)
}

// EffectiveSelector returns the selector override or the default HTML selector.
func (s Source) EffectiveSelector() string {
	if s.Selector != "" {
		return s.Selector
	}
	return DefaultHTMLSelector
}

// GuessKind infers a source kind from the URL path.
func GuessKind(url string) SourceKind {
	path := url
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return KindPDF
	}
	return KindHTML
}
