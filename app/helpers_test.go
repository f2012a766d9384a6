package app

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"distfit/domain/core"
	"distfit/domain/fit"
	"distfit/internal"
)

var quietLogger = internal.NewLogger(internal.LogLevelError)

// uniformFamily is U(lo, hi) with fixed parameters, useful for hand-checked statistics.
type uniformFamily struct {
	lo, hi   float64
	warnings []string
}

func (u uniformFamily) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              "Uniform",
		SupportsAllReals:  true,
		ParamNames:        []string{"lo", "hi"},
		ParamDescriptions: []string{"lower bound", "upper bound"},
	}
}

func (u uniformFamily) Estimate([]float64) ([]float64, []string, error) {
	return []float64{u.lo, u.hi}, u.warnings, nil
}

func (u uniformFamily) PDF(p []float64, x float64) float64 {
	if x < p[0] || x > p[1] {
		return 0
	}
	return 1 / (p[1] - p[0])
}

func (u uniformFamily) LogPDF(p []float64, x float64) float64 {
	return math.Log(u.PDF(p, x))
}

func (u uniformFamily) CDF(p []float64, x float64) float64 {
	return math.Min(1, math.Max(0, (x-p[0])/(p[1]-p[0])))
}

// brokenFamily always fails or returns unusable parameters.
type brokenFamily struct {
	name   string
	params []float64
	err    error
}

func (b brokenFamily) Spec() fit.DistributionSpec {
	return fit.DistributionSpec{
		Name:              b.name,
		SupportsAllReals:  true,
		ParamNames:        []string{"a", "b"},
		ParamDescriptions: []string{"first", "second"},
	}
}

func (b brokenFamily) Estimate([]float64) ([]float64, []string, error) {
	return b.params, nil, b.err
}

func (brokenFamily) LogPDF([]float64, float64) float64 { return 0 }
func (brokenFamily) PDF([]float64, float64) float64    { return 1 }
func (brokenFamily) CDF([]float64, float64) float64    { return 0.5 }

var errSolver = errors.New("solver diverged")

// stubRegistry serves a fixed family list.
type stubRegistry struct {
	families []fit.Family
}

func (r stubRegistry) List() []fit.Family { return r.families }

func (r stubRegistry) Lookup(name string) (fit.Family, error) {
	for _, f := range r.families {
		if strings.EqualFold(f.Spec().Name, name) {
			return f, nil
		}
	}
	return nil, core.NewUnknownFamilyError(name)
}

func (r stubRegistry) Compatible(support fit.Support) []fit.Family {
	var out []fit.Family
	for _, f := range r.families {
		if support == fit.SupportPositive || f.Spec().SupportsAllReals {
			out = append(out, f)
		}
	}
	return out
}

func mustDataset(values []float64) *fit.Dataset {
	ds, err := fit.NewDataset(values)
	if err != nil {
		panic(err)
	}
	return ds
}

func normalSample(n int, mu, sigma float64, seed uint64) []float64 {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewPCG(seed, seed+1)}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

func gammaSample(n int, shape, scale float64, seed uint64) []float64 {
	d := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: rand.NewPCG(seed, seed+1)}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
