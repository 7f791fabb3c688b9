package models

import "time"

// RunMeta carries per-run metadata in the schema consumed by result sinks.
// ContentType holds the resolved content kind ("html" or "pdf"), not the
// raw HTTP header; sinks match on those literals.
type RunMeta struct {
	ContentType  string    `json:"content_type"`
	SelectorUsed string    `json:"selector_used,omitempty"`
	Signature    string    `json:"signature"`
	FetchedAt    time.Time `json:"fetched_at"`
	Warning      string    `json:"warning,omitempty"`
}

// RunResult is the per-source output of one pipeline execution.
// Updated is true exactly when the new signature differs from the cached
// one, including the first-seen case (no prior record, empty OldContent).
type RunResult struct {
	SourceID    string  `json:"source_id"`
	URL         string  `json:"url"`
	Updated     bool    `json:"updated"`
	DiffSummary string  `json:"diffSummary"`
	NewContent  string  `json:"new_content"`
	OldContent  string  `json:"old_content"`
	Meta        RunMeta `json:"meta"`
}

// RunError is the per-source error entry recorded when a pipeline run fails.
type RunError struct {
	SourceID string `json:"source_id"`
	URL      string `json:"url"`
	Stage    string `json:"stage"`
	Message  string `json:"error"`
}
