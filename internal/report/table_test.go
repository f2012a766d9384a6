package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"distfit/domain/fit"
)

func sampleResult() *fit.RankedResult {
	normal := fit.FittedModel{
		Spec:   fit.DistributionSpec{Name: "Normal", SupportsAllReals: true, ParamNames: []string{"mu", "sigma"}},
		Params: []float64{1.5, 0.25},
	}
	gamma := fit.FittedModel{
		Spec:   fit.DistributionSpec{Name: "Gamma", ParamNames: []string{"a", "b"}},
		Params: []float64{2, 3},
	}
	return &fit.RankedResult{
		Metric:      fit.MetricKSE,
		ResultCount: 1,
		Entries: []fit.RankedEntry{
			{Rank: 1, Model: normal, Fit: fit.GoodnessOfFit{NLL: 10, KSE: 0.05, R2: 0.99, ChiSquare: 0.5, RMSE: 0.01}},
			{Rank: 2, Model: gamma, Fit: fit.GoodnessOfFit{NLL: 12, KSE: 0.2, R2: 0.9, ChiSquare: math.Inf(1), RMSE: 0.04}},
		},
	}
}

func TestRankedTable(t *testing.T) {
	out := RankedTable(sampleResult())

	assert.Contains(t, out, "KSE*")
	assert.Contains(t, out, "Normal")
	assert.Contains(t, out, "mu=1.5 sigma=0.25")
	assert.NotContains(t, out, "Gamma")
	assert.Contains(t, out, "1 of 2 fits")
}

func TestDiagnosticsTable(t *testing.T) {
	assert.Empty(t, DiagnosticsTable(nil))

	out := DiagnosticsTable([]fit.Diagnostic{
		{Family: "Weibull", Severity: fit.SeverityFailure, Message: "data has no spread"},
	})
	assert.Contains(t, out, "Weibull")
	assert.Contains(t, out, "failure")
	assert.Contains(t, out, "data has no spread")
}

func TestFamiliesTable(t *testing.T) {
	out := FamiliesTable([]fit.DistributionSpec{
		{Name: "Exponential", ParamNames: []string{"mu"}, ParamDescriptions: []string{"mean"}},
		{Name: "Logistic", SupportsAllReals: true, ParamNames: []string{"mu", "sigma"}, ParamDescriptions: []string{"location", "scale"}},
	})

	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, out, "mu (mean)")
	assert.Contains(t, out, "all reals")
	assert.Contains(t, out, "x > 0")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "NaN", FormatFloat(math.NaN()))
	assert.Equal(t, "+Inf", FormatFloat(math.Inf(1)))
	assert.Equal(t, "-Inf", FormatFloat(math.Inf(-1)))
	assert.Equal(t, "0.123457", FormatFloat(0.1234567))
	assert.Equal(t, "2", FormatFloat(2))
}
