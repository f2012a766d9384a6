package app

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"distfit/domain/core"
	"distfit/domain/fit"
)

// PlotMode selects density or cumulative curves
type PlotMode string

const (
	PlotDensity    PlotMode = "density"
	PlotCumulative PlotMode = "cumulative"
)

// curvePoints is the number of abscissae each fitted curve is sampled at
const curvePoints = 200

// ParsePlotMode accepts "density"/"pdf" and "cumulative"/"cdf"
func ParsePlotMode(s string) (PlotMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "density", "pdf":
		return PlotDensity, nil
	case "cumulative", "cdf":
		return PlotCumulative, nil
	}
	return "", core.NewInvalidOptionError("plot", s, "expected density or cumulative")
}

// Series is a sampled curve
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Curve is one fitted model sampled for plotting
type Curve struct {
	Rank   int    `json:"rank"`
	Family string `json:"family"`
	Series
}

// PlotData is everything a renderer needs to overlay the top fits on the data.
// For density mode Empirical holds bin centres and densities and BinEdges the
// histogram dividers; for cumulative mode Empirical is the empirical CDF.
type PlotData struct {
	Mode      PlotMode  `json:"mode"`
	Empirical Series    `json:"empirical"`
	BinEdges  []float64 `json:"bin_edges,omitempty"`
	Curves    []Curve   `json:"curves"`
}

// BuildPlotData samples the top result.ResultCount models over the data range
func BuildPlotData(ds *fit.Dataset, result *fit.RankedResult, mode PlotMode) *PlotData {
	lo, hi := ds.Min(), ds.Max()
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	pd := &PlotData{Mode: mode}
	if mode == PlotCumulative {
		ecdf := EmpiricalCDF(ds)
		pd.Empirical = Series{X: ecdf.X, Y: ecdf.F}
	} else {
		pd.BinEdges, pd.Empirical = histogram(ds, lo, hi, result.HistogramBins)
	}

	grid := floats.Span(make([]float64, curvePoints), lo, hi)
	for _, entry := range result.Top() {
		c := Curve{Rank: entry.Rank, Family: entry.Model.Name()}
		c.X = grid
		c.Y = make([]float64, len(grid))
		for i, x := range grid {
			if mode == PlotCumulative {
				c.Y[i] = entry.Model.CDF(x)
			} else {
				c.Y[i] = entry.Model.PDF(x)
			}
		}
		pd.Curves = append(pd.Curves, c)
	}
	return pd
}

// histogram returns bins equal-width dividers over [lo, hi] and the
// density-normalised bar heights at the bin centres.
func histogram(ds *fit.Dataset, lo, hi float64, bins int) ([]float64, Series) {
	if bins <= 0 {
		bins = fit.DefaultHistogramBins
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive
	edges[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, edges, ds.Sorted(), nil)

	n := float64(ds.Len())
	s := Series{X: make([]float64, bins), Y: make([]float64, bins)}
	for i := range counts {
		width := edges[i+1] - edges[i]
		s.X[i] = (edges[i] + edges[i+1]) / 2
		s.Y[i] = counts[i] / (n * width)
	}
	return edges, s
}
