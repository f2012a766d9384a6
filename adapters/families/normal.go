package families

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// Normal is the Gaussian family. Sigma is reported as the sample standard
// deviation with the n-1 denominator.
type Normal struct{}

func NewNormal() *Normal { return &Normal{} }

func (*Normal) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Normal",
		SupportsAllReals:  true,
		ParamNames:        []string{"mu", "sigma"},
		ParamDescriptions: []string{"location", "scale"},
	}
}

func (*Normal) Estimate(values []float64) ([]float64, []string, error) {
	s, err := summarize(values)
	if err != nil {
		return nil, nil, err
	}
	return []float64{s.mean, s.std}, nil, nil
}

func normalDist(p []float64) distuv.Normal {
	return distuv.Normal{Mu: p[0], Sigma: p[1]}
}

func (*Normal) LogPDF(p []float64, x float64) float64 {
	if !(p[1] > 0) {
		return math.Inf(-1)
	}
	return normalDist(p).LogProb(x)
}

func (n *Normal) PDF(p []float64, x float64) float64 {
	return math.Exp(n.LogPDF(p, x))
}

func (*Normal) CDF(p []float64, x float64) float64 {
	return normalDist(p).CDF(x)
}
