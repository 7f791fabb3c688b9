package extractor

import (
	"testing"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Commission News</title>
  <style>body { color: red; }</style>
  <script>var tracking = true;</script>
</head>
<body>
  <nav>Home | About | Contact</nav>
  <main>
    <h1>Permit   Updates</h1>
    <p>Permit list
    A</p>
  </main>
  <footer>Copyright 2025</footer>
</body>
</html>`

func newTestExtractor() *Extractor {
	return NewExtractor(config.NewDefaultExtractorConfig(), zerolog.Nop())
}

func TestHTMLExtract_SelectorAndNormalization(t *testing.T) {
	ex := newTestExtractor()
	src := models.Source{URL: "https://epa.gov/npdes/al", Kind: models.KindHTML}

	content, err := ex.Extract(src, &models.FetchResult{Body: []byte(samplePage)})
	require.NoError(t, err)

	assert.Equal(t, models.KindHTML, content.Kind)
	assert.Equal(t, models.DefaultHTMLSelector, content.SelectorUsed)
	assert.Contains(t, content.Text, "Permit Updates")
	assert.Contains(t, content.Text, "Permit list A")
	// Stripped tags and nav content must not leak into the text.
	assert.NotContains(t, content.Text, "tracking")
	assert.NotContains(t, content.Text, "color: red")
	assert.NotContains(t, content.Text, "Home | About")
	assert.NotContains(t, content.Text, "Copyright 2025")
}

func TestHTMLExtract_SelectorOverride(t *testing.T) {
	ex := newTestExtractor()
	src := models.Source{URL: "https://epa.gov/npdes/al", Kind: models.KindHTML, Selector: "h1"}

	content, err := ex.Extract(src, &models.FetchResult{Body: []byte(samplePage)})
	require.NoError(t, err)

	assert.Equal(t, "h1", content.SelectorUsed)
	assert.Equal(t, "Permit Updates", content.Text)
}

func TestHTMLExtract_FallbackToWholeDocument(t *testing.T) {
	ex := newTestExtractor()
	src := models.Source{URL: "https://epa.gov/x", Kind: models.KindHTML, Selector: "#does-not-exist"}

	content, err := ex.Extract(src, &models.FetchResult{Body: []byte("<html><body><div>Fallback text</div></body></html>")})
	require.NoError(t, err)

	assert.Empty(t, content.SelectorUsed)
	assert.Contains(t, content.Text, "Fallback text")
}

func TestHTMLExtract_JSONLD(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"@type":"NewsArticle","headline":"New drilling rule","url":"https://rrc.texas.gov/news/rule","datePublished":"2025-06-01"}</script>
<script type="application/ld+json">{not valid json</script>
</head><body><main>Body text</main></body></html>`

	ex := newTestExtractor()
	src := models.Source{URL: "https://rrc.texas.gov/news/", Kind: models.KindHTML}

	content, err := ex.Extract(src, &models.FetchResult{Body: []byte(page)})
	require.NoError(t, err)

	assert.Contains(t, content.Text, "Body text")
	assert.Contains(t, content.Text, "New drilling rule | https://rrc.texas.gov/news/rule | 2025-06-01")
}

func TestHTMLExtract_JSONLDDisabled(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"@type":"Article","headline":"Hidden"}</script>
</head><body><main>Visible</main></body></html>`

	cfg := config.NewDefaultExtractorConfig()
	cfg.IncludeJSONLD = false
	ex := NewExtractor(cfg, zerolog.Nop())

	content, err := ex.Extract(models.Source{URL: "https://x.gov", Kind: models.KindHTML}, &models.FetchResult{Body: []byte(page)})
	require.NoError(t, err)

	assert.NotContains(t, content.Text, "Hidden")
	assert.Contains(t, content.Text, "Visible")
}

func TestPDFExtract_UnparseableBytes(t *testing.T) {
	ex := newTestExtractor()
	src := models.Source{URL: "https://rrc.texas.gov/forms/guide.pdf", Kind: models.KindPDF}

	_, err := ex.Extract(src, &models.FetchResult{Body: []byte("this is not a pdf")})

	var ee *errorwrapper.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "pdf", ee.Kind)
}

func TestPDFExtract_PanicRecovery(t *testing.T) {
	pe := NewPDFExtractor(config.NewDefaultExtractorConfig(), zerolog.Nop())

	// A nil reader panics inside the pdf library; every reader access
	// must degrade to an empty result instead of crashing the worker.
	assert.Equal(t, 0, pe.numPages(nil))
	assert.Empty(t, pe.extractPlainText(nil))
	assert.Empty(t, pe.extractPage(nil, 1))
	assert.Empty(t, pe.extractPerPage(nil))
}

func TestResolveKind_ContentTypeWinsWhenUndeclared(t *testing.T) {
	src := models.Source{URL: "https://epa.gov/download?id=42"}
	fr := &models.FetchResult{ContentType: "application/pdf"}

	assert.Equal(t, models.KindPDF, resolveKind(src, fr))

	fr.ContentType = "text/html; charset=utf-8"
	assert.Equal(t, models.KindHTML, resolveKind(src, fr))

	// Declared kind always wins.
	src.Kind = models.KindHTML
	fr.ContentType = "application/pdf"
	assert.Equal(t, models.KindHTML, resolveKind(src, fr))
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "  Permit \t list   A \n\n\n  second   line  \n"
	assert.Equal(t, "Permit list A\nsecond line", normalizeWhitespace(in))
}
