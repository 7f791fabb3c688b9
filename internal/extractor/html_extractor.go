package extractor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// Tags that carry no monitorable content.
const strippedTags = "script, style, noscript, nav, header, footer, iframe"

// HTMLExtractor extracts normalized text from HTML documents using a CSS
// selector, with a whole-document fallback and optional JSON-LD metadata.
type HTMLExtractor struct {
	cfg    config.ExtractorConfig
	logger zerolog.Logger
}

// NewHTMLExtractor creates a new HTMLExtractor.
func NewHTMLExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *HTMLExtractor {
	return &HTMLExtractor{
		cfg:    cfg,
		logger: logger.With().Str("extractor", "html").Logger(),
	}
}

// Extract parses the document, selects matching nodes and returns their
// whitespace-normalized text. An empty selection falls back to the whole
// document so extraction always makes progress.
func (he *HTMLExtractor) Extract(url string, body []byte, selector string) (*models.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errorwrapper.NewExtractionError(url, string(models.KindHTML), "parsing HTML document", err)
	}

	// JSON-LD blocks live in script tags, so collect them before stripping.
	var jsonLDSummary string
	if he.cfg.IncludeJSONLD {
		jsonLDSummary = he.collectJSONLD(doc)
	}

	doc.Find(strippedTags).Remove()

	selectorUsed := selector
	selection := doc.Find(selector)
	if selection.Length() == 0 {
		he.logger.Debug().Str("url", url).Str("selector", selector).Msg("Selector matched nothing, falling back to whole document")
		selection = doc.Selection
		selectorUsed = ""
	}

	parts := make([]string, 0, selection.Length())
	selection.Each(func(_ int, s *goquery.Selection) {
		if text := normalizeWhitespace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, "\n")
	if jsonLDSummary != "" {
		if text != "" {
			text += "\n"
		}
		text += jsonLDSummary
	}

	return &models.ExtractedContent{
		Text:         text,
		SelectorUsed: selectorUsed,
		Kind:         models.KindHTML,
	}, nil
}

// collectJSONLD extracts a textual summary from structured metadata blocks.
// Malformed JSON-LD never fails extraction; the block is skipped.
func (he *HTMLExtractor) collectJSONLD(doc *goquery.Document) string {
	var lines []string

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			he.logger.Debug().Err(err).Msg("Skipping malformed JSON-LD block")
			return
		}
		walkJSONLD(data, &lines)
	})

	return strings.Join(lines, "\n")
}

// articleTypes are the JSON-LD @type values summarized into extracted text.
var articleTypes = map[string]bool{
	"NewsArticle": true,
	"BlogPosting": true,
	"Article":     true,
}

func walkJSONLD(node any, lines *[]string) {
	switch v := node.(type) {
	case map[string]any:
		if t, ok := v["@type"].(string); ok && articleTypes[t] {
			if line := summarizeArticle(v); line != "" {
				*lines = append(*lines, line)
			}
		}
		for _, child := range v {
			walkJSONLD(child, lines)
		}
	case []any:
		for _, child := range v {
			walkJSONLD(child, lines)
		}
	}
}

func summarizeArticle(item map[string]any) string {
	title, _ := item["headline"].(string)
	if title == "" {
		title, _ = item["name"].(string)
	}
	if title == "" {
		return ""
	}

	fields := []string{normalizeWhitespace(title)}
	if url, ok := item["url"].(string); ok && url != "" {
		fields = append(fields, url)
	}
	if published, ok := item["datePublished"].(string); ok && published != "" {
		fields = append(fields, published)
	}
	return strings.Join(fields, " | ")
}
