package families

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/optimize"
)

const (
	eulerGamma = 0.5772156649015329

	// infeasible is returned by the objective outside the parameter domain.
	infeasible = 1e300

	maxIterations  = 2000
	maxEvaluations = 10000
)

var (
	errNoSpread    = errors.New("data has no spread")
	errNotPositive = errors.New("data must be strictly positive")
	errInfeasible  = errors.New("no parameters with finite likelihood")
	errOverflow    = errors.New("data spread overflows float64")
)

// summary holds the moment estimates used to seed the optimizer
type summary struct {
	mean float64
	std  float64
}

// summarize computes the mean and sample standard deviation on data scaled
// by a power of two, so the squares cannot overflow for large magnitudes.
func summarize(values []float64) (summary, error) {
	maxAbs := 0.0
	for _, x := range values {
		maxAbs = math.Max(maxAbs, math.Abs(x))
	}
	if !(maxAbs > 0) || math.IsInf(maxAbs, 0) {
		return summary{}, errNoSpread
	}
	_, exp := math.Frexp(maxAbs)

	scaled := make([]float64, len(values))
	for i, x := range values {
		scaled[i] = math.Ldexp(x, -exp)
	}
	mean, err := stats.Mean(scaled)
	if err != nil {
		return summary{}, err
	}
	std, err := stats.StandardDeviationSample(scaled)
	if err != nil {
		return summary{}, err
	}
	if !(std > 0) {
		return summary{}, errNoSpread
	}

	s := summary{mean: math.Ldexp(mean, exp), std: math.Ldexp(std, exp)}
	if math.IsInf(s.std, 0) {
		return summary{}, errOverflow
	}
	return s, nil
}

func logValues(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, x := range values {
		if x <= 0 {
			return nil, errNotPositive
		}
		out[i] = math.Log(x)
	}
	return out, nil
}

// likelihood maximises a log-likelihood over an unconstrained
// parameterisation theta. decode maps theta to family parameters.
type likelihood struct {
	logPDF func(params []float64, x float64) float64
	decode func(theta []float64) []float64
}

func (l likelihood) negLogLik(values []float64) func([]float64) float64 {
	return func(theta []float64) float64 {
		p := l.decode(theta)
		sum := 0.0
		for _, x := range values {
			lp := l.logPDF(p, x)
			if math.IsNaN(lp) || math.IsInf(lp, 0) {
				return infeasible
			}
			sum -= lp
		}
		return sum
	}
}

// maximize runs Nelder-Mead from theta0. A solver that stops early still
// yields parameters; the reason is returned as a warning.
func (l likelihood) maximize(values []float64, theta0 []float64) ([]float64, []string, error) {
	problem := optimize.Problem{Func: l.negLogLik(values)}
	settings := &optimize.Settings{
		MajorIterations: maxIterations,
		FuncEvaluations: maxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-12,
			Iterations: 200,
		},
	}

	result, err := optimize.Minimize(problem, theta0, settings, &optimize.NelderMead{})
	if result == nil {
		if err == nil {
			err = errInfeasible
		}
		return nil, nil, err
	}
	if result.F >= infeasible {
		return nil, nil, errInfeasible
	}

	var warnings []string
	if err == nil {
		err = result.Status.Err()
	}
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("likelihood maximization did not converge (%s): %v", result.Status, err))
	}

	params := l.decode(result.X)
	if err := checkFinite(params); err != nil {
		return nil, warnings, err
	}
	return params, warnings, nil
}

func checkFinite(params []float64) error {
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("parameter %d is not finite (%v)", i, p)
		}
	}
	return nil
}

func requirePositiveScale(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}
