package extractor

import (
	"bytes"
	"io"
	"strings"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// PDFWarningEmpty flags a PDF whose text extraction yielded nothing
// meaningful (scanned/image-only documents). Reported in run metadata,
// not as an error.
const PDFWarningEmpty = "pdf text extraction yielded no content"

// PDFExtractor extracts linear text from PDF payloads with a per-page
// fallback when whole-document extraction comes back empty.
type PDFExtractor struct {
	cfg    config.ExtractorConfig
	logger zerolog.Logger
}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *PDFExtractor {
	return &PDFExtractor{
		cfg:    cfg,
		logger: logger.With().Str("extractor", "pdf").Logger(),
	}
}

// Extract runs whole-document text extraction first and falls back to
// page-by-page extraction. Both coming back empty is an extraction
// warning, not an error; truly unparseable bytes are.
func (pe *PDFExtractor) Extract(url string, body []byte) (*models.ExtractedContent, error) {
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, errorwrapper.NewExtractionError(url, string(models.KindPDF), "parsing PDF document", err)
	}

	text := pe.extractPlainText(reader)
	if !pe.meaningful(text) {
		pe.logger.Debug().Str("url", url).Msg("Whole-document PDF extraction empty, trying per-page fallback")
		text = pe.extractPerPage(reader)
	}

	content := &models.ExtractedContent{
		Text: normalizeWhitespace(text),
		Kind: models.KindPDF,
	}
	if !pe.meaningful(content.Text) {
		content.Text = ""
		content.Warning = PDFWarningEmpty
		pe.logger.Warn().Str("url", url).Msg(PDFWarningEmpty)
	}

	return content, nil
}

// extractPlainText reads the document's full text stream. The pdf library
// panics on some malformed font tables; that is recovered into an empty
// result so the per-page fallback can run.
func (pe *PDFExtractor) extractPlainText(reader *pdf.Reader) (text string) {
	defer func() {
		if r := recover(); r != nil {
			pe.logger.Debug().Interface("panic", r).Msg("Recovered from PDF plain-text extraction panic")
			text = ""
		}
	}()

	stream, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	raw, err := io.ReadAll(stream)
	if err != nil {
		return ""
	}
	return string(raw)
}

// extractPerPage collects text page by page, skipping pages that fail.
func (pe *PDFExtractor) extractPerPage(reader *pdf.Reader) string {
	var parts []string
	for i := 1; i <= pe.numPages(reader); i++ {
		if text := pe.extractPage(reader, i); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// numPages reads the page count, which walks the page tree and can panic
// on malformed documents just like the extraction calls.
func (pe *PDFExtractor) numPages(reader *pdf.Reader) (n int) {
	defer func() {
		if r := recover(); r != nil {
			pe.logger.Debug().Interface("panic", r).Msg("Recovered from PDF page count panic")
			n = 0
		}
	}()
	return reader.NumPage()
}

func (pe *PDFExtractor) extractPage(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			pe.logger.Debug().Int("page", pageNum).Interface("panic", r).Msg("Recovered from PDF page extraction panic")
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	pageText, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return pageText
}

func (pe *PDFExtractor) meaningful(text string) bool {
	return len(strings.TrimSpace(text)) >= pe.cfg.MinPDFTextLength
}
