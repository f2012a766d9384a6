package families

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// Exponential is parameterised by its mean mu (rate 1/mu).
type Exponential struct{}

func NewExponential() *Exponential { return &Exponential{} }

func (*Exponential) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Exponential",
		SupportsAllReals:  false,
		ParamNames:        []string{"mu"},
		ParamDescriptions: []string{"mean"},
	}
}

func (*Exponential) Estimate(values []float64) ([]float64, []string, error) {
	mu, err := stats.Mean(values)
	if err != nil {
		return nil, nil, err
	}
	if err := requirePositiveScale("mu", mu); err != nil {
		return nil, nil, err
	}
	return []float64{mu}, nil, nil
}

func exponentialDist(p []float64) distuv.Exponential {
	return distuv.Exponential{Rate: 1 / p[0]}
}

func (*Exponential) LogPDF(p []float64, x float64) float64 {
	if x < 0 || !(p[0] > 0) {
		return math.Inf(-1)
	}
	return exponentialDist(p).LogProb(x)
}

func (e *Exponential) PDF(p []float64, x float64) float64 {
	return math.Exp(e.LogPDF(p, x))
}

func (*Exponential) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return exponentialDist(p).CDF(x)
}
