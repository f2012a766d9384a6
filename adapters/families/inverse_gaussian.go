package families

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// InverseGaussian (Wald) with mean mu and shape lambda.
type InverseGaussian struct{}

func NewInverseGaussian() *InverseGaussian { return &InverseGaussian{} }

func (*InverseGaussian) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "InverseGaussian",
		SupportsAllReals:  false,
		ParamNames:        []string{"mu", "lambda"},
		ParamDescriptions: []string{"scale", "shape"},
	}
}

// Estimate uses the closed-form MLE: mu = mean(x), 1/lambda = mean(1/x - 1/mu).
// Each term is formed as ((mu - x) / x) / mu so data far from zero keeps its
// small differences.
func (*InverseGaussian) Estimate(values []float64) ([]float64, []string, error) {
	mu, err := stats.Mean(values)
	if err != nil {
		return nil, nil, err
	}
	if err := requirePositiveScale("mu", mu); err != nil {
		return nil, nil, err
	}

	inv := make([]float64, len(values))
	for i, x := range values {
		if x <= 0 {
			return nil, nil, errNotPositive
		}
		inv[i] = (mu - x) / x
	}
	meanRel, err := stats.Mean(inv)
	if err != nil {
		return nil, nil, err
	}
	lambda := mu / meanRel
	if err := requirePositiveScale("lambda", lambda); err != nil {
		return nil, nil, err
	}
	return []float64{mu, lambda}, nil, nil
}

func (*InverseGaussian) LogPDF(p []float64, x float64) float64 {
	mu, lambda := p[0], p[1]
	if x <= 0 || !(mu > 0) || !(lambda > 0) {
		return math.Inf(-1)
	}
	d := x - mu
	return 0.5*(math.Log(lambda)-math.Log(2*math.Pi)-3*math.Log(x)) - lambda*d*d/(2*mu*mu*x)
}

func (ig *InverseGaussian) PDF(p []float64, x float64) float64 {
	return math.Exp(ig.LogPDF(p, x))
}

func (*InverseGaussian) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	mu, lambda := p[0], p[1]
	r := math.Sqrt(lambda / x)
	first := distuv.UnitNormal.CDF(r * (x/mu - 1))
	// exp(2 lambda/mu) * Phi(-r(x/mu+1)) in log space to avoid overflow
	tail := distuv.UnitNormal.CDF(-r * (x/mu + 1))
	if tail == 0 {
		return first
	}
	second := math.Exp(2*lambda/mu + math.Log(tail))
	return math.Min(1, first+second)
}
