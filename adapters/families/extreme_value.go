package families

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// ExtremeValue is the type I extreme value distribution for minima
// (left-skewed Gumbel). It is evaluated as a reflected GumbelRight: if X
// follows ExtremeValue(mu, sigma) then -X follows GumbelRight(-mu, sigma).
type ExtremeValue struct{}

func NewExtremeValue() *ExtremeValue { return &ExtremeValue{} }

func (*ExtremeValue) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "ExtremeValue",
		SupportsAllReals:  true,
		ParamNames:        []string{"mu", "sigma"},
		ParamDescriptions: []string{"location", "scale"},
	}
}

func (e *ExtremeValue) Estimate(values []float64) ([]float64, []string, error) {
	s, err := summarize(values)
	if err != nil {
		return nil, nil, err
	}
	// mean = mu - gamma*sigma, sd = sigma*pi/sqrt(6)
	sigma0 := s.std * math.Sqrt(6) / math.Pi
	mu0 := s.mean + eulerGamma*sigma0

	l := likelihood{
		logPDF: e.LogPDF,
		decode: func(theta []float64) []float64 {
			return []float64{s.mean + s.std*theta[0], s.std * math.Exp(theta[1])}
		},
	}
	return l.maximize(values, []float64{(mu0 - s.mean) / s.std, math.Log(sigma0 / s.std)})
}

func reflectedGumbel(p []float64) distuv.GumbelRight {
	return distuv.GumbelRight{Mu: -p[0], Beta: p[1]}
}

func (*ExtremeValue) LogPDF(p []float64, x float64) float64 {
	if !(p[1] > 0) {
		return math.Inf(-1)
	}
	return reflectedGumbel(p).LogProb(-x)
}

func (e *ExtremeValue) PDF(p []float64, x float64) float64 {
	return math.Exp(e.LogPDF(p, x))
}

func (*ExtremeValue) CDF(p []float64, x float64) float64 {
	if !(p[1] > 0) {
		return math.NaN()
	}
	return -math.Expm1(-math.Exp((x - p[0]) / p[1]))
}
