package app

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"distfit/domain/core"
	"distfit/domain/fit"
)

// ECDF is the empirical distribution evaluated at the distinct sample points
type ECDF struct {
	X []float64 `json:"x"` // distinct values, ascending
	F []float64 `json:"f"` // fraction of observations <= X[i]
}

// EmpiricalCDF computes the step function of ds at its distinct values
func EmpiricalCDF(ds *fit.Dataset) ECDF {
	sorted := ds.Sorted()
	n := float64(len(sorted))

	var e ECDF
	for i := 0; i < len(sorted); i++ {
		// advance to the last copy of a repeated value
		for i+1 < len(sorted) && sorted[i+1] == sorted[i] {
			i++
		}
		e.X = append(e.X, sorted[i])
		e.F = append(e.F, float64(i+1)/n)
	}
	return e
}

// Evaluator computes goodness-of-fit statistics
type Evaluator struct{}

// NewEvaluator creates an evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores model against ds. See EvaluateECDF.
func (ev *Evaluator) Evaluate(ds *fit.Dataset, model fit.FittedModel) (fit.GoodnessOfFit, error) {
	return ev.EvaluateECDF(ds, EmpiricalCDF(ds), model)
}

// EvaluateECDF scores model against ds using a precomputed empirical CDF.
//
// R2 is SS_fit / (SS_fit + SS_resid), where SS_fit is the spread of the
// fitted CDF values around their mean. This is not 1 - SS_resid/SS_total.
//
// The statistics are always returned. A non-nil error wraps
// ErrDegenerateMetric and reports that the fitted CDF is zero at a sample
// point, which leaves ChiSquare non-finite.
func (ev *Evaluator) EvaluateECDF(ds *fit.Dataset, ecdf ECDF, model fit.FittedModel) (fit.GoodnessOfFit, error) {
	var g fit.GoodnessOfFit

	for _, x := range ds.Values() {
		g.NLL -= model.LogPDF(x)
	}

	n := len(ecdf.X)
	fhat := make([]float64, n)
	for i, x := range ecdf.X {
		fhat[i] = model.CDF(x)
	}

	resid := make([]float64, n)
	floats.SubTo(resid, ecdf.F, fhat)

	g.KSE = floats.Norm(resid, math.Inf(1))

	fbar := stat.Mean(fhat, nil)
	ssFit := 0.0
	for _, f := range fhat {
		ssFit += (f - fbar) * (f - fbar)
	}
	ssResid := floats.Dot(resid, resid)
	g.R2 = ssFit / (ssFit + ssResid)

	var degenerate error
	for i, r := range resid {
		if fhat[i] == 0 && degenerate == nil {
			degenerate = core.NewDegenerateMetricError("chiSquare", ecdf.X[i])
		}
		g.ChiSquare += r * r / math.Abs(fhat[i])
	}

	g.RMSE = math.Sqrt(ssResid / float64(n))

	return g, degenerate
}
