package families

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// Logistic is the symmetric logistic family with location mu and scale sigma.
type Logistic struct{}

func NewLogistic() *Logistic { return &Logistic{} }

func (*Logistic) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Logistic",
		SupportsAllReals:  true,
		ParamNames:        []string{"mu", "sigma"},
		ParamDescriptions: []string{"mean", "scale"},
	}
}

func (*Logistic) Estimate(values []float64) ([]float64, []string, error) {
	return fitLogistic(values)
}

// fitLogistic is shared with LogLogistic, which fits the same model to log data.
func fitLogistic(values []float64) ([]float64, []string, error) {
	s, err := summarize(values)
	if err != nil {
		return nil, nil, err
	}
	l := likelihood{
		logPDF: logisticLogPDF,
		decode: func(theta []float64) []float64 {
			return []float64{s.mean + s.std*theta[0], s.std * math.Exp(theta[1])}
		},
	}
	// moment estimate: variance = sigma^2 pi^2 / 3
	return l.maximize(values, []float64{0, math.Log(math.Sqrt(3) / math.Pi)})
}

func logisticDist(p []float64) distuv.Logistic {
	return distuv.Logistic{Mu: p[0], S: p[1]}
}

// logisticLogPDF is written out in closed form: distuv.Logistic.LogProb
// ignores Mu and S. Folding on |z| keeps it finite in both tails.
func logisticLogPDF(p []float64, x float64) float64 {
	mu, sigma := p[0], p[1]
	if !(sigma > 0) {
		return math.Inf(-1)
	}
	z := math.Abs((x - mu) / sigma)
	return -z - math.Log(sigma) - 2*math.Log1p(math.Exp(-z))
}

func (*Logistic) LogPDF(p []float64, x float64) float64 {
	return logisticLogPDF(p, x)
}

func (*Logistic) PDF(p []float64, x float64) float64 {
	return math.Exp(logisticLogPDF(p, x))
}

func (*Logistic) CDF(p []float64, x float64) float64 {
	return logisticDist(p).CDF(x)
}
