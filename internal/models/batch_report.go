package models

// BatchReport aggregates the outcome of running many sources. Entries
// preserve source iteration order. Attempted always equals
// len(Results) + len(Errors); sources skipped by cancellation or
// filtering are not counted as attempted.
type BatchReport struct {
	Attempted int         `json:"attempted"`
	Updated   int         `json:"updated"`
	Errored   int         `json:"errored"`
	Skipped   int         `json:"skipped"`
	Results   []RunResult `json:"results"`
	Errors    []RunError  `json:"errors"`
}

// Consistent verifies the report's count invariant.
func (br *BatchReport) Consistent() bool {
	return br.Attempted == len(br.Results)+len(br.Errors) && br.Errored == len(br.Errors)
}
