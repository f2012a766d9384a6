package app

import (
	"distfit/domain/core"
	"distfit/domain/fit"
)

// Assemble packages fitted models and their statistics in ranking order.
// models and fits are parallel slices; order comes from Rank.
func Assemble(runID core.RunID, models []fit.FittedModel, fits []fit.GoodnessOfFit, order []int, opts fit.Options, diags []fit.Diagnostic) *fit.RankedResult {
	entries := make([]fit.RankedEntry, len(order))
	for rank, idx := range order {
		entries[rank] = fit.RankedEntry{
			Rank:  rank + 1,
			Model: models[idx],
			Fit:   fits[idx],
		}
	}

	return &fit.RankedResult{
		RunID:         runID,
		Metric:        opts.SortMetric,
		Entries:       entries,
		Diagnostics:   diags,
		ResultCount:   opts.ResultCount,
		HistogramBins: opts.HistogramBins,
	}
}
