package differ

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// NoChangeSummary is the summary emitted when old and new content are
// identical. Downstream consumers match on this literal.
const NoChangeSummary = "No change"

// snippetMaxLen caps the length of the sample fragment in a summary.
const snippetMaxLen = 120

// ContentDiffer summarizes the difference between the cached and freshly
// extracted text of a source.
type ContentDiffer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	logger zerolog.Logger
}

// NewContentDiffer creates a new ContentDiffer.
func NewContentDiffer(logger zerolog.Logger) *ContentDiffer {
	return &ContentDiffer{
		dmp:    diffmatchpatch.New(),
		logger: logger.With().Str("component", "ContentDiffer").Logger(),
	}
}

// Summarize produces a one-line human-readable summary of what changed
// between oldText and newText. Identical inputs yield NoChangeSummary.
func (cd *ContentDiffer) Summarize(oldText, newText string) string {
	if oldText == newText {
		return NoChangeSummary
	}
	if oldText == "" {
		return fmt.Sprintf("New content (%d chars)", len(newText))
	}

	diffs := cd.dmp.DiffMain(oldText, newText, false)
	diffs = cd.dmp.DiffCleanupSemantic(diffs)

	var added, removed int
	var firstChange string
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added += len(diff.Text)
			if firstChange == "" {
				firstChange = snippet(diff.Text)
			}
		case diffmatchpatch.DiffDelete:
			removed += len(diff.Text)
			if firstChange == "" {
				firstChange = snippet(diff.Text)
			}
		}
	}

	summary := fmt.Sprintf("Changed: +%d/-%d chars", added, removed)
	if firstChange != "" {
		summary += fmt.Sprintf(" (near %q)", firstChange)
	}
	return summary
}

// snippet condenses a diff fragment to a short single-line sample,
// cutting on a rune boundary.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > snippetMaxLen {
		cut := snippetMaxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
