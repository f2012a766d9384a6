package fit

import (
	"strconv"
	"strings"

	"distfit/domain/core"
)

// Metric selects the goodness-of-fit statistic used for ranking
type Metric string

const (
	MetricNLL       Metric = "nll"
	MetricKSE       Metric = "kse"
	MetricR2        Metric = "r2"
	MetricChiSquare Metric = "chisquare"
	MetricRMSE      Metric = "rmse"
)

// Metrics lists every supported metric in display order
var Metrics = []Metric{MetricNLL, MetricKSE, MetricR2, MetricChiSquare, MetricRMSE}

var metricLabels = map[Metric]string{
	MetricNLL:       "NLL",
	MetricKSE:       "KSE",
	MetricR2:        "R2",
	MetricChiSquare: "ChiSquare",
	MetricRMSE:      "RMSE",
}

// ParseMetric accepts a metric name in any letter case ("NLL", "ChiSquare", "chi_square")
func ParseMetric(s string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	m := Metric(key)
	if _, ok := metricLabels[m]; !ok {
		return "", core.NewInvalidMetricError(s)
	}
	return m, nil
}

// String returns the display label of the metric
func (m Metric) String() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// Valid reports whether m is one of the supported metrics
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// Descending reports whether larger values rank first. Only R2 is a
// higher-is-better statistic.
func (m Metric) Descending() bool {
	return m == MetricR2
}

// Option defaults
const (
	DefaultSortMetric    = MetricNLL
	DefaultResultCount   = 4
	DefaultHistogramBins = 50
)

// RawOptions carries caller-supplied options before validation. Empty
// strings mean "use the default".
type RawOptions struct {
	SortMetric    string `json:"sort_metric,omitempty"`
	ResultCount   string `json:"result_count,omitempty"`
	HistogramBins string `json:"histogram_bins,omitempty"`
	Parallel      bool   `json:"parallel,omitempty"`
}

// Options is the fully populated, validated configuration of one fit run
type Options struct {
	SortMetric    Metric `json:"sort_metric"`
	ResultCount   int    `json:"result_count"`   // entries a plotting consumer should draw
	HistogramBins int    `json:"histogram_bins"` // bins for the empirical histogram
	Parallel      bool   `json:"parallel"`
}

// DefaultOptions returns the options used when the caller supplies none
func DefaultOptions() Options {
	return Options{
		SortMetric:    DefaultSortMetric,
		ResultCount:   DefaultResultCount,
		HistogramBins: DefaultHistogramBins,
	}
}

// ResolveOptions validates raw and fills every unset field with its default
func ResolveOptions(raw RawOptions) (Options, error) {
	opts := DefaultOptions()
	opts.Parallel = raw.Parallel

	if strings.TrimSpace(raw.SortMetric) != "" {
		m, err := ParseMetric(raw.SortMetric)
		if err != nil {
			return Options{}, err
		}
		opts.SortMetric = m
	}

	if strings.TrimSpace(raw.ResultCount) != "" {
		n, err := parsePositiveInt("result_count", raw.ResultCount)
		if err != nil {
			return Options{}, err
		}
		opts.ResultCount = n
	}

	if strings.TrimSpace(raw.HistogramBins) != "" {
		n, err := parsePositiveInt("histogram_bins", raw.HistogramBins)
		if err != nil {
			return Options{}, err
		}
		opts.HistogramBins = n
	}

	return opts, nil
}

// Validate checks an already-typed Options value
func (o Options) Validate() error {
	if !o.SortMetric.Valid() {
		return core.NewInvalidMetricError(string(o.SortMetric))
	}
	if o.ResultCount <= 0 {
		return core.NewInvalidOptionError("result_count", strconv.Itoa(o.ResultCount), "must be a positive integer")
	}
	if o.HistogramBins <= 0 {
		return core.NewInvalidOptionError("histogram_bins", strconv.Itoa(o.HistogramBins), "must be a positive integer")
	}
	return nil
}

func parsePositiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, core.NewInvalidOptionError(name, value, "not an integer")
	}
	if n <= 0 {
		return 0, core.NewInvalidOptionError(name, value, "must be a positive integer")
	}
	return n, nil
}
