package fit

import (
	"distfit/domain/core"
)

// RankedEntry is one fitted model with its statistics at a given rank
type RankedEntry struct {
	Rank  int           `json:"rank"` // 1-based
	Model FittedModel   `json:"model"`
	Fit   GoodnessOfFit `json:"fit"`
}

// RankedResult is the ordered outcome of one fit run. Entries[0] is the best fit.
type RankedResult struct {
	RunID         core.RunID       `json:"run_id"`
	DatasetHash   core.DatasetHash `json:"dataset_hash,omitempty"`
	Metric        Metric           `json:"metric"`
	Entries       []RankedEntry    `json:"entries"`
	Diagnostics   []Diagnostic     `json:"diagnostics,omitempty"`
	ResultCount   int              `json:"result_count"`
	HistogramBins int              `json:"histogram_bins"`
}

// Best returns the top-ranked entry
func (r *RankedResult) Best() (RankedEntry, bool) {
	if r == nil || len(r.Entries) == 0 {
		return RankedEntry{}, false
	}
	return r.Entries[0], true
}

// Top returns at most ResultCount leading entries
func (r *RankedResult) Top() []RankedEntry {
	n := r.ResultCount
	if n <= 0 || n > len(r.Entries) {
		n = len(r.Entries)
	}
	return r.Entries[:n]
}

// Names returns the family names in rank order
func (r *RankedResult) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Model.Name()
	}
	return names
}

// Failures returns the diagnostics of families dropped from the ranking
func (r *RankedResult) Failures() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityFailure {
			out = append(out, d)
		}
	}
	return out
}
