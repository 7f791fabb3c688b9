package extractor

import (
	"strings"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// Extractor converts raw fetched bytes into normalized plain text,
// branching on the source's content kind.
type Extractor struct {
	cfg    config.ExtractorConfig
	html   *HTMLExtractor
	pdf    *PDFExtractor
	logger zerolog.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *Extractor {
	scoped := logger.With().Str("component", "Extractor").Logger()
	return &Extractor{
		cfg:    cfg,
		html:   NewHTMLExtractor(cfg, scoped),
		pdf:    NewPDFExtractor(cfg, scoped),
		logger: scoped,
	}
}

// Extract produces normalized text for a source's fetch result. The
// declared source kind wins; when unset, the response Content-Type and
// URL decide.
func (e *Extractor) Extract(src models.Source, fr *models.FetchResult) (*models.ExtractedContent, error) {
	kind := resolveKind(src, fr)

	switch kind {
	case models.KindPDF:
		return e.pdf.Extract(src.URL, fr.Body)
	default:
		return e.html.Extract(src.URL, fr.Body, e.selectorFor(src))
	}
}

// selectorFor resolves the selector for an HTML source: per-source
// override, then the configured default, then the built-in default.
func (e *Extractor) selectorFor(src models.Source) string {
	if src.Selector != "" {
		return src.Selector
	}
	if e.cfg.DefaultSelector != "" {
		return e.cfg.DefaultSelector
	}
	return models.DefaultHTMLSelector
}

func resolveKind(src models.Source, fr *models.FetchResult) models.SourceKind {
	if src.Kind == models.KindHTML || src.Kind == models.KindPDF {
		return src.Kind
	}
	if strings.Contains(strings.ToLower(fr.ContentType), "application/pdf") {
		return models.KindPDF
	}
	return models.GuessKind(src.URL)
}

// normalizeWhitespace collapses runs of whitespace inside each line to
// single spaces and trims the result. This normalization is part of the
// signature contract: changing it invalidates previously stored
// content-hash signatures.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n")
}
