package app

import (
	"math"
	"sort"

	"distfit/domain/core"
	"distfit/domain/fit"
)

// Rank orders fits by metric and returns indices into fits. Lower is better
// except for R2. Non-finite values sort last in either direction; ties keep
// their input (catalog) order.
func Rank(fits []fit.GoodnessOfFit, metric fit.Metric) ([]int, error) {
	if !metric.Valid() {
		return nil, core.NewInvalidMetricError(string(metric))
	}

	order := make([]int, len(fits))
	for i := range order {
		order[i] = i
	}

	desc := metric.Descending()
	sort.SliceStable(order, func(a, b int) bool {
		return better(fits[order[a]].Value(metric), fits[order[b]].Value(metric), desc)
	})
	return order, nil
}

func better(x, y float64, desc bool) bool {
	xf, yf := isFinite(x), isFinite(y)
	if !xf || !yf {
		return xf && !yf
	}
	if desc {
		return x > y
	}
	return x < y
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
