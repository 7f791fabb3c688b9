package signature

import (
	"strings"
	"testing"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func completeHints(body string) *models.FetchResult {
	return &models.FetchResult{
		Body:          []byte(body),
		ETag:          `"abc123"`,
		LastModified:  "Wed, 01 Jan 2025 00:00:00 GMT",
		ContentLength: int64(len(body)),
	}
}

func TestCompute_TransportCompositeWhenHintsComplete(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	fr := completeHints("<html>page</html>")
	content := &models.ExtractedContent{Text: "page", Kind: models.KindHTML}

	sig := e.Compute("https://epa.gov/npdes/al", fr, content)
	assert.Equal(t, `etag="abc123"|lm=Wed, 01 Jan 2025 00:00:00 GMT|cl=17`, sig)
}

func TestCompute_HashWhenHintsIncomplete(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	content := &models.ExtractedContent{Text: "Permit list A", Kind: models.KindHTML}

	cases := []*models.FetchResult{
		{Body: []byte("x")}, // no hints at all
		{Body: []byte("x"), ETag: `"a"`, ContentLength: 1},                                                  // missing Last-Modified
		{Body: []byte("x"), ETag: `"a"`, LastModified: "Wed, 01 Jan 2025 00:00:00 GMT"},                     // missing Content-Length
		{Body: []byte("xx"), ETag: `"a"`, LastModified: "Wed, 01 Jan 2025 00:00:00 GMT", ContentLength: 99}, // length mismatch
	}
	for _, fr := range cases {
		sig := e.Compute("https://epa.gov/npdes/al", fr, content)
		assert.True(t, strings.HasPrefix(sig, "sha256="), "expected content hash, got %s", sig)
	}
}

func TestCompute_PDFAlwaysHashes(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	fr := completeHints("%PDF-1.4 ...")
	content := &models.ExtractedContent{Text: "form instructions", Kind: models.KindPDF}

	sig := e.Compute("https://rrc.texas.gov/forms/guide.pdf", fr, content)
	assert.True(t, strings.HasPrefix(sig, "sha256="))
}

func TestCompute_HashIsDeterministic(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	a := e.Compute("https://epa.gov/a", &models.FetchResult{}, &models.ExtractedContent{Text: "Permit list A"})
	b := e.Compute("https://epa.gov/a", &models.FetchResult{}, &models.ExtractedContent{Text: "Permit list A"})
	c := e.Compute("https://epa.gov/a", &models.FetchResult{}, &models.ExtractedContent{Text: "Permit list B"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestClassify(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	cached := &models.CacheRecord{Signature: "sha256=aaa"}

	assert.Equal(t, FirstSeen, e.Classify("sha256=aaa", nil, false))
	assert.Equal(t, FirstSeen, e.Classify("sha256=aaa", nil, true))
	assert.Equal(t, Changed, e.Classify("sha256=bbb", cached, true))
	assert.Equal(t, Unchanged, e.Classify("sha256=aaa", cached, true))
}
