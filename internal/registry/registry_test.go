package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceID_Deterministic(t *testing.T) {
	id1 := SourceID("https://www.ferc.gov/news-events/news")
	id2 := SourceID("https://www.ferc.gov/news-events/news")

	assert.Equal(t, id1, id2)
	assert.Equal(t, "ferc-gov-news-events-news", id1)
}

func TestSourceID_RootURL(t *testing.T) {
	assert.Equal(t, "epa-gov", SourceID("https://epa.gov/"))
}

func TestRegistry_Add_GeneratesIDAndKind(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	src, err := reg.Add(models.Source{URL: "https://rrc.texas.gov/news/report.pdf", Active: true})
	require.NoError(t, err)

	assert.Equal(t, models.KindPDF, src.Kind)
	assert.NotEmpty(t, src.ID)

	got, ok := reg.Get(src.ID)
	assert.True(t, ok)
	assert.Equal(t, src.URL, got.URL)
}

func TestRegistry_Add_RejectsDuplicateURL(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	_, err := reg.Add(models.Source{URL: "https://epa.gov/npdes/al", Active: true})
	require.NoError(t, err)

	_, err = reg.Add(models.Source{URL: "https://epa.gov/npdes/al", Active: true})
	assert.Error(t, err)
}

func TestRegistry_Add_RejectsNonHTTPScheme(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	_, err := reg.Add(models.Source{URL: "ftp://epa.gov/files/permits.csv", Active: true})
	assert.Error(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_ResolveURL_LongestPrefix(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	short, err := reg.Add(models.Source{URL: "https://epa.gov/npdes", Active: true})
	require.NoError(t, err)
	long, err := reg.Add(models.Source{URL: "https://epa.gov/npdes/al", Active: true})
	require.NoError(t, err)

	got, err := reg.ResolveURL("https://epa.gov/npdes/al/permits")
	require.NoError(t, err)
	assert.Equal(t, long.ID, got.ID)

	got, err = reg.ResolveURL("https://epa.gov/npdes/tx")
	require.NoError(t, err)
	assert.Equal(t, short.ID, got.ID)
}

func TestRegistry_ResolveURL_ExactMatch(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	first, err := reg.Add(models.Source{URL: "https://a.example.gov/x", Active: true})
	require.NoError(t, err)
	_, err = reg.Add(models.Source{URL: "https://a.example.gov/x/sub", Active: true})
	require.NoError(t, err)

	got, err := reg.ResolveURL("https://a.example.gov/x")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestRegistry_ResolveURL_NoMatch(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	_, err := reg.Add(models.Source{URL: "https://epa.gov/npdes", Active: true})
	require.NoError(t, err)

	_, err = reg.ResolveURL("https://ferc.gov/news")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLoadSourceList_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	content := `
Texas:
  - https://rrc.texas.gov/news/
  - https://rrc.texas.gov/forms/guide.pdf
California:
  - https://conservation.ca.gov/index
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := LoadSourceList(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	sources := reg.Sources()
	// Jurisdictions are walked in sorted order: california before texas.
	assert.Equal(t, "california", sources[0].Jurisdiction)
	assert.Equal(t, "texas", sources[1].Jurisdiction)
	assert.Equal(t, models.KindPDF, sources[2].Kind)
	for _, src := range sources {
		assert.True(t, src.Active)
		assert.NotEmpty(t, src.ID)
	}
}

func TestLoadSourceList_EmptyFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Texas: []\n"), 0o644))

	_, err := LoadSourceList(path, zerolog.Nop())
	assert.Error(t, err)
}
