package families

import (
	"math"

	"distfit/domain/fit"
)

// shapeEpsilon is the |k| below which the Gumbel limit is used.
const shapeEpsilon = 1e-10

// GeneralizedExtremeValue combines the Gumbel (k=0), Frechet (k>0) and
// reversed Weibull (k<0) types. Parameters are ordered k, sigma, mu.
type GeneralizedExtremeValue struct{}

func NewGeneralizedExtremeValue() *GeneralizedExtremeValue { return &GeneralizedExtremeValue{} }

func (*GeneralizedExtremeValue) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "GeneralizedExtremeValue",
		SupportsAllReals:  true,
		ParamNames:        []string{"k", "sigma", "mu"},
		ParamDescriptions: []string{"shape", "scale", "location"},
	}
}

func (g *GeneralizedExtremeValue) Estimate(values []float64) ([]float64, []string, error) {
	s, err := summarize(values)
	if err != nil {
		return nil, nil, err
	}
	// Gumbel (maxima) moments as the starting point
	sigma0 := s.std * math.Sqrt(6) / math.Pi
	mu0 := s.mean - eulerGamma*sigma0

	l := likelihood{
		logPDF: g.LogPDF,
		decode: func(theta []float64) []float64 {
			return []float64{theta[0], s.std * math.Exp(theta[1]), s.mean + s.std*theta[2]}
		},
	}
	params, warnings, err := l.maximize(values, []float64{0, math.Log(sigma0 / s.std), (mu0 - s.mean) / s.std})
	if err != nil {
		return nil, warnings, err
	}
	if params[0] < -0.5 {
		warnings = append(warnings, "shape parameter k < -0.5: maximum likelihood estimate is non-regular and may be unreliable")
	}
	return params, warnings, nil
}

// gevReduced returns z = (x-mu)/sigma and, for k != 0, log(1 + k*z).
// ok is false outside the support.
func gevReduced(p []float64, x float64) (z, logT float64, ok bool) {
	k, sigma, mu := p[0], p[1], p[2]
	z = (x - mu) / sigma
	if math.Abs(k) < shapeEpsilon {
		return z, 0, true
	}
	t := 1 + k*z
	if t <= 0 {
		return z, 0, false
	}
	return z, math.Log1p(k * z), true
}

func (*GeneralizedExtremeValue) LogPDF(p []float64, x float64) float64 {
	k, sigma := p[0], p[1]
	if !(sigma > 0) {
		return math.Inf(-1)
	}
	z, logT, ok := gevReduced(p, x)
	if !ok {
		return math.Inf(-1)
	}
	if math.Abs(k) < shapeEpsilon {
		return -math.Log(sigma) - z - math.Exp(-z)
	}
	return -math.Log(sigma) - (1+1/k)*logT - math.Exp(-logT/k)
}

func (g *GeneralizedExtremeValue) PDF(p []float64, x float64) float64 {
	return math.Exp(g.LogPDF(p, x))
}

func (*GeneralizedExtremeValue) CDF(p []float64, x float64) float64 {
	k := p[0]
	z, logT, ok := gevReduced(p, x)
	if !ok {
		// below the lower bound for k>0, above the upper bound for k<0
		if k > 0 {
			return 0
		}
		return 1
	}
	if math.Abs(k) < shapeEpsilon {
		return math.Exp(-math.Exp(-z))
	}
	return math.Exp(-math.Exp(-logT / k))
}
