package api

import (
	"bytes"
	"encoding/json"
	"math"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"distfit/adapters/families"
	"distfit/app"
	"distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/errors"
)

func newTestServer(t *testing.T, config *HandlerConfig) *httptest.Server {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	service := app.NewFitService(families.NewRegistry(), logger)
	srv := httptest.NewServer(NewHandler(service, config, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postFit(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/fit", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func lognormalBody(t *testing.T, extra map[string]interface{}) string {
	t.Helper()
	d := distuv.LogNormal{Mu: 0.5, Sigma: 0.4, Src: rand.NewPCG(7, 8)}
	data := make([]float64, 300)
	for i := range data {
		data[i] = d.Rand()
	}
	body := map[string]interface{}{"data": data}
	for k, v := range extra {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return string(raw)
}

func TestDistributions(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/distributions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body DistributionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Distributions, 10)
	assert.Equal(t, "ExtremeValue", body.Distributions[0].Name)
	assert.Equal(t, "Weibull", body.Distributions[9].Name)
	for _, spec := range body.Distributions {
		assert.Len(t, spec.ParamDescriptions, len(spec.ParamNames), spec.Name)
	}
}

func TestFit_Defaults(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postFit(t, srv, lognormalBody(t, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body FitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, fit.MetricNLL, body.SortMetric)
	assert.Equal(t, fit.DefaultResultCount, body.ResultCount)
	assert.Equal(t, fit.DefaultHistogramBins, body.HistogramBins)
	require.NotEmpty(t, body.Results)
	failures := 0
	for _, d := range body.Diagnostics {
		if d.Severity == fit.SeverityFailure {
			failures++
		}
	}
	assert.Equal(t, 10, len(body.Results)+failures)
	assert.Equal(t, 1, body.Results[0].Rank)
	assert.Nil(t, body.Plot)

	for i := 1; i < len(body.Results); i++ {
		prev, cur := float64(body.Results[i-1].Fit.NLL), float64(body.Results[i].Fit.NLL)
		if math.IsInf(cur, 0) || math.IsNaN(cur) {
			continue
		}
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestFit_OptionsAndPlot(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postFit(t, srv, lognormalBody(t, map[string]interface{}{
		"sort_metric":    "kse",
		"result_count":   2,
		"histogram_bins": "20",
		"parallel":       true,
		"plot":           "density",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body FitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fit.MetricKSE, body.SortMetric)
	assert.Equal(t, 2, body.ResultCount)
	assert.Equal(t, 20, body.HistogramBins)

	require.NotNil(t, body.Plot)
	assert.Equal(t, app.PlotDensity, body.Plot.Mode)
	assert.Len(t, body.Plot.BinEdges, 21)
	assert.Len(t, body.Plot.Empirical.Y, 20)
	require.Len(t, body.Plot.Curves, 2)
	assert.Equal(t, body.Results[0].Family, body.Plot.Curves[0].Family)
}

func TestFit_Errors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
		echo   string
	}{
		{"malformed", `{"data":`, http.StatusBadRequest, errors.CodeInvalidInput, ""},
		{"empty dataset", `{"data":[]}`, http.StatusBadRequest, errors.CodeInvalidInput, ""},
		{"unknown metric", `{"data":[1,2,3],"sort_metric":"aic"}`, http.StatusBadRequest, errors.CodeInvalidOption, "aic"},
		{"non-numeric count", `{"data":[1,2,3],"result_count":"many"}`, http.StatusBadRequest, errors.CodeInvalidOption, "many"},
		{"zero bins", `{"data":[1,2,3],"histogram_bins":0}`, http.StatusBadRequest, errors.CodeInvalidOption, "histogram_bins"},
		{"bad plot", `{"data":[1,2,3],"plot":"violin"}`, http.StatusBadRequest, errors.CodeInvalidOption, "violin"},
		{"all families fail", `{"data":[-2,-2,-2]}`, http.StatusUnprocessableEntity, errors.CodeFitFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postFit(t, srv, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			if tt.echo != "" {
				assert.Contains(t, body.Error, tt.echo)
			}
		})
	}
}

func TestFit_BodyLimit(t *testing.T) {
	srv := newTestServer(t, &HandlerConfig{MaxBodyBytes: 16})

	resp := postFit(t, srv, `{"data":[1,2,3,4,5,6,7,8,9,10]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "exceeds 16 bytes")
}

func TestFit_ConfiguredDefaults(t *testing.T) {
	srv := newTestServer(t, &HandlerConfig{Defaults: fit.RawOptions{SortMetric: "rmse", ResultCount: "3"}})

	resp := postFit(t, srv, lognormalBody(t, map[string]interface{}{"result_count": "5"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body FitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fit.MetricRMSE, body.SortMetric)
	assert.Equal(t, 5, body.ResultCount)
}

func TestJSONFloat(t *testing.T) {
	raw, err := json.Marshal([]JSONFloat{1.5, JSONFloat(math.NaN()), JSONFloat(math.Inf(1)), JSONFloat(math.Inf(-1))})
	require.NoError(t, err)
	assert.Equal(t, `[1.5,"NaN","+Inf","-Inf"]`, string(raw))

	var back []JSONFloat
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, 4)
	assert.Equal(t, 1.5, float64(back[0]))
	assert.True(t, math.IsNaN(float64(back[1])))
	assert.True(t, math.IsInf(float64(back[2]), 1))
	assert.True(t, math.IsInf(float64(back[3]), -1))
}

func TestNewFitResponse_NonFiniteMetrics(t *testing.T) {
	result := &fit.RankedResult{
		RunID:  "run-1",
		Metric: fit.MetricChiSquare,
		Entries: []fit.RankedEntry{{
			Rank:  1,
			Model: fit.FittedModel{
				Spec:   fit.DistributionSpec{Name: "Normal", ParamNames: []string{"mu", "sigma"}},
				Params: []float64{2, 0.5},
			},
			Fit: fit.GoodnessOfFit{NLL: 1, KSE: 0.1, R2: 0.9, ChiSquare: math.Inf(1), RMSE: 0.05},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(NewFitResponse(result, nil)))
	assert.Contains(t, buf.String(), `"chi_square":"+Inf"`)

	resp := NewFitResponse(result, nil)
	assert.Equal(t, map[string]JSONFloat{"mu": 2, "sigma": 0.5}, resp.Results[0].Params)
	assert.Equal(t, "Normal", resp.Results[0].Family)
}
