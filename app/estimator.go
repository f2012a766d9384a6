package app

import (
	"fmt"
	"math"

	"distfit/domain/core"
	"distfit/domain/fit"
	"distfit/internal"
	"distfit/ports"
)

// Estimator turns a family's maximum-likelihood procedure into a FittedModel.
// Solver warnings come back as diagnostics instead of aborting the run.
type Estimator struct {
	logger *internal.Logger
}

// NewEstimator creates an estimator
func NewEstimator(logger *internal.Logger) *Estimator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Estimator{logger: logger.Named("Estimator")}
}

// Estimate fits family to ds. The caller must only pass families the
// dataset admits (see SelectFamilies). A returned error is always an
// ErrEstimationFailure naming the family.
func (e *Estimator) Estimate(ds *fit.Dataset, family fit.Family) (fit.FittedModel, []fit.Diagnostic, error) {
	spec := family.Spec()

	params, warnings, err := family.Estimate(ds.Values())
	if err != nil {
		return fit.FittedModel{}, nil, core.NewEstimationError(spec.Name, err)
	}
	if len(params) != len(spec.ParamNames) {
		return fit.FittedModel{}, nil, core.NewEstimationError(spec.Name,
			fmt.Errorf("solver returned %d parameters, want %d", len(params), len(spec.ParamNames)))
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fit.FittedModel{}, nil, core.NewEstimationError(spec.Name,
				fmt.Errorf("parameter %s is not finite (%v)", spec.ParamNames[i], p))
		}
	}

	var diags []fit.Diagnostic
	for _, w := range warnings {
		e.logger.Warn("%s: %s", spec.Name, w)
		diags = append(diags, fit.Diagnostic{
			Family:   spec.Name,
			Severity: fit.SeverityWarning,
			Message:  w,
		})
	}

	e.logger.Trace("%s fitted: %v=%v", spec.Name, spec.ParamNames, params)
	return fit.NewFittedModel(family, params, warnings), diags, nil
}

// SelectFamilies classifies the whole dataset once. Positive data runs every
// family; otherwise positive-only families are skipped.
func SelectFamilies(registry ports.RegistryPort, ds *fit.Dataset) []fit.Family {
	return registry.Compatible(ds.Support())
}
