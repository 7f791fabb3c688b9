package reporter

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.BatchReport {
	return &models.BatchReport{
		Attempted: 3,
		Updated:   1,
		Errored:   1,
		Results: []models.RunResult{
			{SourceID: "src-a", URL: "https://epa.gov/a", Updated: true, DiffSummary: "New content (5 chars)", NewContent: "hello"},
			{SourceID: "src-b", URL: "https://epa.gov/b", Updated: false, DiffSummary: "No change"},
		},
		Errors: []models.RunError{
			{SourceID: "src-c", URL: "https://epa.gov/c", Stage: "fetch", Message: "HTTP 404"},
		},
	}
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var obj map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &obj))
		lines = append(lines, obj)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestWrite_AllEntries(t *testing.T) {
	jr := NewJSONLReporter(t.TempDir(), false, zerolog.Nop())

	path, err := jr.Write(sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".jsonl"))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Equal(t, "src-a", lines[0]["source_id"])
	assert.Equal(t, true, lines[0]["updated"])
	assert.Equal(t, "No change", lines[1]["diffSummary"])
	assert.Equal(t, "HTTP 404", lines[2]["error"])
}

func TestWrite_OnlyUpdatedFiltersUnchanged(t *testing.T) {
	jr := NewJSONLReporter(t.TempDir(), true, zerolog.Nop())

	path, err := jr.Write(sampleReport())
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "src-a", lines[0]["source_id"])
	assert.Equal(t, "HTTP 404", lines[1]["error"])
}
