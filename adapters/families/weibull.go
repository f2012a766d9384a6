package families

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// Weibull is parameterised by scale A and shape B.
type Weibull struct{}

func NewWeibull() *Weibull { return &Weibull{} }

func (*Weibull) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Weibull",
		SupportsAllReals:  false,
		ParamNames:        []string{"A", "B"},
		ParamDescriptions: []string{"scale", "shape"},
	}
}

func (w *Weibull) Estimate(values []float64) ([]float64, []string, error) {
	logs, err := logValues(values)
	if err != nil {
		return nil, nil, err
	}
	s, err := summarize(logs)
	if err != nil {
		return nil, nil, err
	}
	// log of a Weibull variate is a minimum extreme value variate with
	// mu = log A and sigma = 1/B
	sigma0 := s.std * math.Sqrt(6) / math.Pi
	scale0 := math.Exp(s.mean + eulerGamma*sigma0)
	shape0 := 1 / sigma0

	l := likelihood{
		logPDF: w.LogPDF,
		decode: func(theta []float64) []float64 {
			return []float64{scale0 * math.Exp(theta[0]), shape0 * math.Exp(theta[1])}
		},
	}
	return l.maximize(values, []float64{0, 0})
}

func weibullDist(p []float64) distuv.Weibull {
	return distuv.Weibull{Lambda: p[0], K: p[1]}
}

func (*Weibull) LogPDF(p []float64, x float64) float64 {
	if x <= 0 || !(p[0] > 0) || !(p[1] > 0) {
		return math.Inf(-1)
	}
	return weibullDist(p).LogProb(x)
}

func (w *Weibull) PDF(p []float64, x float64) float64 {
	return math.Exp(w.LogPDF(p, x))
}

func (*Weibull) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return weibullDist(p).CDF(x)
}
