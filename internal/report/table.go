// Package report renders fit results as plain-text tables.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"distfit/domain/fit"
)

func newWriter() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}

// RankedTable renders the top result.ResultCount entries with all five statistics.
// The sort column is marked with an asterisk.
func RankedTable(result *fit.RankedResult) string {
	tbl := newWriter()

	header := table.Row{"Rank", "Family", "Parameters"}
	for _, m := range fit.Metrics {
		label := m.String()
		if m == result.Metric {
			label += "*"
		}
		header = append(header, label)
	}
	tbl.AppendHeader(header)

	top := result.Top()
	for _, e := range top {
		tbl.AppendRow(table.Row{
			e.Rank,
			e.Model.Name(),
			FormatParams(e.Model),
			FormatFloat(e.Fit.NLL),
			FormatFloat(e.Fit.KSE),
			FormatFloat(e.Fit.R2),
			FormatFloat(e.Fit.ChiSquare),
			FormatFloat(e.Fit.RMSE),
		})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d fits", len(top), len(result.Entries))})
	return tbl.Render()
}

// DiagnosticsTable renders per-family warnings and failures. Empty input
// renders as the empty string.
func DiagnosticsTable(diags []fit.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	tbl := newWriter()
	tbl.AppendHeader(table.Row{"Family", "Severity", "Message"})
	for _, d := range diags {
		tbl.AppendRow(table.Row{d.Family, string(d.Severity), d.Message})
	}
	return tbl.Render()
}

// FamiliesTable renders the catalog
func FamiliesTable(specs []fit.DistributionSpec) string {
	tbl := newWriter()
	tbl.AppendHeader(table.Row{"Family", "Support", "Parameters"})
	for _, s := range specs {
		support := "x > 0"
		if s.SupportsAllReals {
			support = "all reals"
		}
		params := make([]string, len(s.ParamNames))
		for i, name := range s.ParamNames {
			params[i] = name
			if i < len(s.ParamDescriptions) {
				params[i] = fmt.Sprintf("%s (%s)", name, s.ParamDescriptions[i])
			}
		}
		tbl.AppendRow(table.Row{s.Name, support, strings.Join(params, ", ")})
	}
	return tbl.Render()
}

// FormatParams renders "name=value" pairs in declaration order
func FormatParams(m fit.FittedModel) string {
	parts := make([]string, 0, len(m.Params))
	for i, v := range m.Params {
		name := fmt.Sprintf("p%d", i)
		if i < len(m.Spec.ParamNames) {
			name = m.Spec.ParamNames[i]
		}
		parts = append(parts, name+"="+FormatFloat(v))
	}
	return strings.Join(parts, " ")
}

// FormatFloat prints six significant digits, or NaN/+Inf/-Inf
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%.6g", v)
}
