package families

import (
	"math"

	"distfit/domain/fit"
)

// LogLogistic: log(x) follows Logistic(mu, sigma).
type LogLogistic struct{}

func NewLogLogistic() *LogLogistic { return &LogLogistic{} }

func (*LogLogistic) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "LogLogistic",
		SupportsAllReals:  false,
		ParamNames:        []string{"mu", "sigma"},
		ParamDescriptions: []string{"log location", "log scale"},
	}
}

// Estimate fits the logistic model to log(x). The Jacobian term of the
// change of variables does not depend on the parameters.
func (*LogLogistic) Estimate(values []float64) ([]float64, []string, error) {
	logs, err := logValues(values)
	if err != nil {
		return nil, nil, err
	}
	return fitLogistic(logs)
}

func (*LogLogistic) LogPDF(p []float64, x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	lx := math.Log(x)
	return logisticLogPDF(p, lx) - lx
}

func (l *LogLogistic) PDF(p []float64, x float64) float64 {
	return math.Exp(l.LogPDF(p, x))
}

func (*LogLogistic) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return logisticDist(p).CDF(math.Log(x))
}
