package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"distfit/adapters/api"
	"distfit/adapters/excel"
	"distfit/adapters/families"
	"distfit/app"
	"distfit/domain/core"
	"distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/config"
	"distfit/internal/errors"
	"distfit/internal/report"
	"distfit/ports"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the input or options were rejected, 1 otherwise
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case core.IsFatalFitError(err), errors.IsAppError(err):
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "distfit",
		Short:         "Fit continuous distributions to a sample and rank them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newFitCmd(),
		newFamiliesCmd(),
	)
	return rootCmd
}

type fitFlags struct {
	sort     string
	results  string
	bins     string
	parallel bool
	format   string
	plot     string
	sheet    string
	column   string
}

func newFitCmd() *cobra.Command {
	var flags fitFlags

	cmd := &cobra.Command{
		Use:   "fit [file|-]",
		Short: "Fit every compatible family and print the ranked results",
		Long: `Fit every compatible distribution family to a sample by maximum likelihood
and rank the fits by a goodness-of-fit statistic.

Input is an .xlsx or .csv table (first numeric column unless --column is given)
or whitespace-separated numbers. With no argument or "-" numbers are read from stdin.

Defaults come from DISTFIT_SORT_METRIC, DISTFIT_RESULT_COUNT,
DISTFIT_HISTOGRAM_BINS and DISTFIT_PARALLEL.

Example: distfit fit durations.csv --sort kse --results 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runFit(cmd, source, flags)
		},
	}

	cfg, err := config.Load()
	defaults := fit.RawOptions{}
	if err == nil {
		defaults = cfg.Fit.Raw
	}

	cmd.Flags().StringVar(&flags.sort, "sort", orDefault(defaults.SortMetric, string(fit.DefaultSortMetric)), "Ranking metric: nll, kse, r2, chisquare, rmse")
	cmd.Flags().StringVar(&flags.results, "results", orDefault(defaults.ResultCount, fmt.Sprint(fit.DefaultResultCount)), "Number of top fits to report")
	cmd.Flags().StringVar(&flags.bins, "bins", orDefault(defaults.HistogramBins, fmt.Sprint(fit.DefaultHistogramBins)), "Histogram bins for plot data")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", defaults.Parallel, "Fit families concurrently")
	cmd.Flags().StringVar(&flags.format, "format", "table", "Output format: table or json")
	cmd.Flags().StringVar(&flags.plot, "plot", "", "Emit plot data JSON: density or cumulative")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "Sheet to read from an .xlsx file")
	cmd.Flags().StringVar(&flags.column, "column", "", "Header of the column holding the sample")

	return cmd
}

func newFamiliesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "families",
		Short: "List the supported distribution families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := families.NewRegistry().Specs()
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), api.DistributionsResponse{Distributions: specs})
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.FamiliesTable(specs))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func runFit(cmd *cobra.Command, source string, flags fitFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format := strings.ToLower(flags.format)
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown --format %q (use table or json)", flags.format)
	}

	var mode app.PlotMode
	if flags.plot != "" {
		m, err := app.ParsePlotMode(flags.plot)
		if err != nil {
			return err
		}
		mode = m
	}

	logger := newLogger()
	var reader ports.SampleReader = excel.NewDataReader(excel.ReaderConfig{Sheet: flags.sheet, Column: flags.column}, logger)

	var values []float64
	var err error
	if source == "-" {
		values, err = reader.ReadStream(ctx, cmd.InOrStdin())
	} else {
		values, err = reader.ReadFile(ctx, source)
	}
	if err != nil {
		return err
	}

	service := app.NewFitService(families.NewRegistry(), logger)
	result, err := service.Fit(ctx, values, fit.RawOptions{
		SortMetric:    flags.sort,
		ResultCount:   flags.results,
		HistogramBins: flags.bins,
		Parallel:      flags.parallel,
	})
	if err != nil {
		return err
	}

	var plot *app.PlotData
	if mode != "" {
		ds, err := fit.NewDataset(values)
		if err != nil {
			return err
		}
		plot = app.BuildPlotData(ds, result, mode)
	}

	if format == "json" || plot != nil {
		return writeJSON(out, api.NewFitResponse(result, plot))
	}

	fmt.Fprintf(out, "Run %s: %d values, sorted by %s\n\n", result.RunID, len(values), result.Metric)
	fmt.Fprintln(out, report.RankedTable(result))
	if diags := report.DiagnosticsTable(result.Diagnostics); diags != "" {
		fmt.Fprintf(out, "\nDiagnostics:\n%s\n", diags)
	}
	return nil
}

func newLogger() *internal.Logger {
	level := internal.LogLevelWarn
	if l, ok := internal.ParseLogLevel(os.Getenv("LOG_LEVEL")); ok {
		level = l
	}
	return internal.NewLogger(level)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
