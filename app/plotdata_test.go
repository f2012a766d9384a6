package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distfit/domain/core"
	"distfit/domain/fit"
)

func TestParsePlotMode(t *testing.T) {
	for in, want := range map[string]PlotMode{"density": PlotDensity, "PDF": PlotDensity, "cumulative": PlotCumulative, "cdf": PlotCumulative} {
		got, err := ParsePlotMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePlotMode("scatter")
	assert.ErrorIs(t, err, core.ErrInvalidOption)
}

func TestBuildPlotData_Density(t *testing.T) {
	values := gammaSample(1000, 2, 1, 23)
	ds := mustDataset(values)
	result, err := newService().Fit(context.Background(), values, fit.RawOptions{ResultCount: "3", HistogramBins: "20"})
	require.NoError(t, err)

	pd := BuildPlotData(ds, result, PlotDensity)

	assert.Equal(t, PlotDensity, pd.Mode)
	assert.Len(t, pd.BinEdges, 21)
	assert.Len(t, pd.Empirical.X, 20)

	// bar areas sum to one
	area := 0.0
	for i, h := range pd.Empirical.Y {
		area += h * (pd.BinEdges[i+1] - pd.BinEdges[i])
	}
	assert.InDelta(t, 1.0, area, 1e-9)

	require.Len(t, pd.Curves, 3)
	for i, c := range pd.Curves {
		assert.Equal(t, result.Entries[i].Model.Name(), c.Family)
		assert.Equal(t, i+1, c.Rank)
		assert.Len(t, c.X, curvePoints)
		assert.Len(t, c.Y, curvePoints)
		for _, y := range c.Y {
			assert.GreaterOrEqual(t, y, 0.0)
		}
	}
}

func TestBuildPlotData_Cumulative(t *testing.T) {
	values := []float64{-1.0, 0.5, 2.0, 2.0, 3.5}
	ds := mustDataset(values)
	result, err := newService().Fit(context.Background(), values, fit.RawOptions{ResultCount: "10"})
	require.NoError(t, err)

	pd := BuildPlotData(ds, result, PlotCumulative)

	assert.Nil(t, pd.BinEdges)
	assert.Equal(t, []float64{-1, 0.5, 2, 3.5}, pd.Empirical.X)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.8, 1}, pd.Empirical.Y, 1e-12)
	assert.Len(t, pd.Curves, len(result.Entries))
	for _, c := range pd.Curves {
		for i := 1; i < len(c.Y); i++ {
			assert.GreaterOrEqual(t, c.Y[i], c.Y[i-1], c.Family)
		}
	}
}

func TestBuildPlotData_SingleValue(t *testing.T) {
	ds := mustDataset([]float64{3, 3, 3})
	result := &fit.RankedResult{HistogramBins: 4, ResultCount: 1}

	pd := BuildPlotData(ds, result, PlotDensity)
	assert.Len(t, pd.BinEdges, 5)
	assert.InDelta(t, 2.5, pd.BinEdges[0], 1e-12)
	assert.Empty(t, pd.Curves)
}
