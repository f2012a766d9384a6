package families

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/fit"
)

// LogNormal is parameterised by the mean and standard deviation of log(x).
type LogNormal struct{}

func NewLogNormal() *LogNormal { return &LogNormal{} }

func (*LogNormal) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "LogNormal",
		SupportsAllReals:  false,
		ParamNames:        []string{"mu", "sigma"},
		ParamDescriptions: []string{"log location", "log scale"},
	}
}

func (*LogNormal) Estimate(values []float64) ([]float64, []string, error) {
	logs, err := logValues(values)
	if err != nil {
		return nil, nil, err
	}
	mu, err := stats.Mean(logs)
	if err != nil {
		return nil, nil, err
	}
	sigma, err := stats.StandardDeviationSample(logs)
	if err != nil {
		return nil, nil, err
	}
	if err := requirePositiveScale("sigma", sigma); err != nil {
		return nil, nil, err
	}
	return []float64{mu, sigma}, nil, nil
}

func lognormalDist(p []float64) distuv.LogNormal {
	return distuv.LogNormal{Mu: p[0], Sigma: p[1]}
}

func (*LogNormal) LogPDF(p []float64, x float64) float64 {
	if x <= 0 || !(p[1] > 0) {
		return math.Inf(-1)
	}
	return lognormalDist(p).LogProb(x)
}

func (l *LogNormal) PDF(p []float64, x float64) float64 {
	return math.Exp(l.LogPDF(p, x))
}

func (*LogNormal) CDF(p []float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return lognormalDist(p).CDF(x)
}
