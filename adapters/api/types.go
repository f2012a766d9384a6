package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"distfit/app"
	"distfit/domain/fit"
)

// JSONFloat encodes NaN and infinities as the strings "NaN", "+Inf" and "-Inf"
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = JSONFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

func jsonFloats(values []float64) []JSONFloat {
	out := make([]JSONFloat, len(values))
	for i, v := range values {
		out[i] = JSONFloat(v)
	}
	return out
}

// OptionValue accepts either a JSON string or a JSON number and keeps its
// text so invalid input can be echoed back unchanged.
type OptionValue string

func (o *OptionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = OptionValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*o = OptionValue(n.String())
	return nil
}

// FitRequest is the body of POST /api/fit
type FitRequest struct {
	Data          []float64   `json:"data"`
	SortMetric    OptionValue `json:"sort_metric,omitempty"`
	ResultCount   OptionValue `json:"result_count,omitempty"`
	HistogramBins OptionValue `json:"histogram_bins,omitempty"`
	Parallel      *bool       `json:"parallel,omitempty"`
	Plot          string      `json:"plot,omitempty"` // "density" or "cumulative"
}

// RawOptions overlays the request's options on defaults
func (r FitRequest) RawOptions(defaults fit.RawOptions) fit.RawOptions {
	raw := defaults
	if r.SortMetric != "" {
		raw.SortMetric = string(r.SortMetric)
	}
	if r.ResultCount != "" {
		raw.ResultCount = string(r.ResultCount)
	}
	if r.HistogramBins != "" {
		raw.HistogramBins = string(r.HistogramBins)
	}
	if r.Parallel != nil {
		raw.Parallel = *r.Parallel
	}
	return raw
}

// GoodnessOfFitResponse mirrors fit.GoodnessOfFit with non-finite values as strings
type GoodnessOfFitResponse struct {
	NLL       JSONFloat `json:"nll"`
	KSE       JSONFloat `json:"kse"`
	R2        JSONFloat `json:"r2"`
	ChiSquare JSONFloat `json:"chi_square"`
	RMSE      JSONFloat `json:"rmse"`
}

// EntryResponse is one ranked fit
type EntryResponse struct {
	Rank     int                   `json:"rank"`
	Family   string                `json:"family"`
	Params   map[string]JSONFloat  `json:"params"`
	Fit      GoodnessOfFitResponse `json:"fit"`
	Warnings []string              `json:"warnings,omitempty"`
}

// SeriesResponse is a sampled curve
type SeriesResponse struct {
	X []JSONFloat `json:"x"`
	Y []JSONFloat `json:"y"`
}

// CurveResponse is one fitted model sampled for plotting
type CurveResponse struct {
	Rank   int    `json:"rank"`
	Family string `json:"family"`
	SeriesResponse
}

// PlotResponse carries app.PlotData with non-finite values as strings
type PlotResponse struct {
	Mode      app.PlotMode    `json:"mode"`
	Empirical SeriesResponse  `json:"empirical"`
	BinEdges  []JSONFloat     `json:"bin_edges,omitempty"`
	Curves    []CurveResponse `json:"curves"`
}

// FitResponse is the body returned by POST /api/fit
type FitResponse struct {
	RunID         string           `json:"run_id"`
	DatasetHash   string           `json:"dataset_hash"`
	SortMetric    fit.Metric       `json:"sort_metric"`
	ResultCount   int              `json:"result_count"`
	HistogramBins int              `json:"histogram_bins"`
	Results       []EntryResponse  `json:"results"`
	Diagnostics   []fit.Diagnostic `json:"diagnostics,omitempty"`
	Plot          *PlotResponse    `json:"plot,omitempty"`
}

// DistributionsResponse is the body returned by GET /api/distributions
type DistributionsResponse struct {
	Distributions []fit.DistributionSpec `json:"distributions"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewFitResponse converts a ranked result (and optional plot data) for the wire
func NewFitResponse(result *fit.RankedResult, plot *app.PlotData) *FitResponse {
	resp := &FitResponse{
		RunID:         result.RunID.String(),
		DatasetHash:   result.DatasetHash.String(),
		SortMetric:    result.Metric,
		ResultCount:   result.ResultCount,
		HistogramBins: result.HistogramBins,
		Results:       make([]EntryResponse, 0, len(result.Entries)),
		Diagnostics:   result.Diagnostics,
	}

	for _, e := range result.Entries {
		params := make(map[string]JSONFloat, len(e.Model.Spec.ParamNames))
		for _, name := range e.Model.Spec.ParamNames {
			if v, ok := e.Model.Param(name); ok {
				params[name] = JSONFloat(v)
			}
		}
		resp.Results = append(resp.Results, EntryResponse{
			Rank:   e.Rank,
			Family: e.Model.Name(),
			Params: params,
			Fit: GoodnessOfFitResponse{
				NLL:       JSONFloat(e.Fit.NLL),
				KSE:       JSONFloat(e.Fit.KSE),
				R2:        JSONFloat(e.Fit.R2),
				ChiSquare: JSONFloat(e.Fit.ChiSquare),
				RMSE:      JSONFloat(e.Fit.RMSE),
			},
			Warnings: e.Model.Warnings,
		})
	}

	if plot != nil {
		resp.Plot = newPlotResponse(plot)
	}
	return resp
}

func newPlotResponse(plot *app.PlotData) *PlotResponse {
	out := &PlotResponse{
		Mode:      plot.Mode,
		Empirical: SeriesResponse{X: jsonFloats(plot.Empirical.X), Y: jsonFloats(plot.Empirical.Y)},
		Curves:    make([]CurveResponse, 0, len(plot.Curves)),
	}
	if plot.BinEdges != nil {
		out.BinEdges = jsonFloats(plot.BinEdges)
	}
	for _, c := range plot.Curves {
		out.Curves = append(out.Curves, CurveResponse{
			Rank:           c.Rank,
			Family:         c.Family,
			SeriesResponse: SeriesResponse{X: jsonFloats(c.X), Y: jsonFloats(c.Y)},
		})
	}
	return out
}
