package families

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// Gamma is parameterised by shape a and scale b.
type Gamma struct{}

func NewGamma() *Gamma { return &Gamma{} }

func (*Gamma) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Gamma",
		SupportsAllReals:  false,
		ParamNames:        []string{"a", "b"},
		ParamDescriptions: []string{"shape", "scale"},
	}
}

func (g *Gamma) Estimate(values []float64) ([]float64, []string, error) {
	s, err := summarize(values)
	if err != nil {
		return nil, nil, err
	}
	if s.mean <= 0 {
		return nil, nil, errNotPositive
	}
	// method of moments: a = mean^2/var, b = var/mean
	a0 := s.mean * s.mean / (s.std * s.std)
	b0 := s.std * s.std / s.mean

	l := likelihood{
		logPDF: g.LogPDF,
		decode: func(theta []float64) []float64 {
			return []float64{a0 * math.Exp(theta[0]), b0 * math.Exp(theta[1])}
		},
	}
	return l.maximize(values, []float64{0, 0})
}

func gammaDist(p []float64) distuv.Gamma {
	return distuv.Gamma{Alpha: p[0], Beta: 1 / p[1]}
}

func (*Gamma) LogPDF(p []float64, x float64) float64 {
	if x <= 0 || !(p[0] > 0) || !(p[1] > 0) {
		return math.Inf(-1)
	}
	return gammaDist(p).LogProb(x)
}

func (g *Gamma) PDF(p []float64, x float64) float64 {
	return math.Exp(g.LogPDF(p, x))
}

func (*Gamma) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return gammaDist(p).CDF(x)
}
