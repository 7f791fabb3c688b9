package reporter

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// JSONLReporter writes batch results as one JSON object per line, one
// file per run. Errors are appended after the results so a single file
// captures the complete run.
type JSONLReporter struct {
	outDir      string
	onlyUpdated bool
	logger      zerolog.Logger
}

// NewJSONLReporter creates a reporter writing into outDir. When
// onlyUpdated is set, unchanged results are omitted from the output file
// (they still count in the report totals).
func NewJSONLReporter(outDir string, onlyUpdated bool, logger zerolog.Logger) *JSONLReporter {
	return &JSONLReporter{
		outDir:      outDir,
		onlyUpdated: onlyUpdated,
		logger:      logger.With().Str("component", "JSONLReporter").Logger(),
	}
}

// Write persists the report and returns the output file path.
func (jr *JSONLReporter) Write(report *models.BatchReport) (string, error) {
	if err := os.MkdirAll(jr.outDir, 0o755); err != nil {
		return "", errorwrapper.WrapError(err, "creating output directory")
	}

	path := filepath.Join(jr.outDir, "scrape_"+time.Now().Format("20060102_150405")+".jsonl")
	file, err := os.Create(path)
	if err != nil {
		return "", errorwrapper.WrapError(err, "creating output file")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)

	for i := range report.Results {
		if jr.onlyUpdated && !report.Results[i].Updated {
			continue
		}
		if err := enc.Encode(&report.Results[i]); err != nil {
			return "", errorwrapper.WrapError(err, "encoding result")
		}
	}
	for i := range report.Errors {
		if err := enc.Encode(&report.Errors[i]); err != nil {
			return "", errorwrapper.WrapError(err, "encoding error entry")
		}
	}

	if err := w.Flush(); err != nil {
		return "", errorwrapper.WrapError(err, "flushing output file")
	}

	jr.logger.Info().Str("path", path).Int("results", len(report.Results)).Int("errors", len(report.Errors)).Msg("Run report written")
	return path, nil
}
