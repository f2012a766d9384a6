package fit

import (
	"math"
)

// DistributionSpec is the static descriptor of one distribution family
type DistributionSpec struct {
	Name              string   `json:"name"`
	SupportsAllReals  bool     `json:"supports_all_reals"` // false: strictly positive values only
	ParamNames        []string `json:"param_names"`
	ParamDescriptions []string `json:"param_descriptions"` // same length and order as ParamNames
}

// Family is the capability set every catalog entry supplies.
type Family interface {
	Spec() DistributionSpec

	// Estimate computes maximum-likelihood parameters. Warnings are solver
	// diagnostics that did not prevent a usable fit.
	Estimate(values []float64) (params []float64, warnings []string, err error)

	LogPDF(params []float64, x float64) float64
	PDF(params []float64, x float64) float64
	CDF(params []float64, x float64) float64
}

// FittedModel binds a family to parameters estimated from one dataset
type FittedModel struct {
	Spec     DistributionSpec `json:"spec"`
	Params   []float64        `json:"params"`
	Warnings []string         `json:"warnings,omitempty"`

	family Family
}

// NewFittedModel creates a fitted model for the family
func NewFittedModel(family Family, params []float64, warnings []string) FittedModel {
	p := make([]float64, len(params))
	copy(p, params)
	return FittedModel{
		Spec:     family.Spec(),
		Params:   p,
		Warnings: warnings,
		family:   family,
	}
}

// Name returns the family name
func (m FittedModel) Name() string {
	return m.Spec.Name
}

// PDF evaluates the fitted density at x
func (m FittedModel) PDF(x float64) float64 {
	return m.family.PDF(m.Params, x)
}

// LogPDF evaluates the fitted log-density at x
func (m FittedModel) LogPDF(x float64) float64 {
	return m.family.LogPDF(m.Params, x)
}

// CDF evaluates the fitted cumulative distribution at x
func (m FittedModel) CDF(x float64) float64 {
	return m.family.CDF(m.Params, x)
}

// Param returns the value of the named parameter
func (m FittedModel) Param(name string) (float64, bool) {
	for i, n := range m.Spec.ParamNames {
		if n == name && i < len(m.Params) {
			return m.Params[i], true
		}
	}
	return math.NaN(), false
}

// GoodnessOfFit holds the five fit statistics of one model against one dataset.
// KSE and R2 lie in [0,1] for well-behaved fits; ChiSquare may be NaN or +Inf
// when the fitted CDF vanishes at a sample point.
type GoodnessOfFit struct {
	NLL       float64 `json:"nll"`
	KSE       float64 `json:"kse"`
	R2        float64 `json:"r2"`
	ChiSquare float64 `json:"chi_square"`
	RMSE      float64 `json:"rmse"`
}

// Value returns the statistic selected by metric
func (g GoodnessOfFit) Value(metric Metric) float64 {
	switch metric {
	case MetricNLL:
		return g.NLL
	case MetricKSE:
		return g.KSE
	case MetricR2:
		return g.R2
	case MetricChiSquare:
		return g.ChiSquare
	case MetricRMSE:
		return g.RMSE
	}
	return math.NaN()
}

// Severity of a per-family diagnostic
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
)

// Diagnostic records a non-fatal problem raised while fitting one family
type Diagnostic struct {
	Family   string   `json:"family"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
