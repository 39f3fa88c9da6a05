// Package output provides shared serialization of run summaries into the
// canonical map structure consumed by the format layer.
package output

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/replisome"
	"github.com/farcloser/replisome/internal/types"
)

// SummaryToMap converts a run summary into the map structure used for
// console, json and markdown rendering.
func SummaryToMap(summary *replisome.Summary) map[string]any {
	meta := map[string]any{
		"name":  summary.Name,
		"fastq": summary.FastqFile,
		"reads": len(summary.Reads),
	}

	lengths := make([]float64, len(summary.Reads))
	accuracies := make([]float64, len(summary.Reads))

	for i, read := range summary.Reads {
		lengths[i] = float64(read.Length)
		accuracies[i] = read.Accuracy
	}

	meta["length"] = Distribution(lengths)
	meta["accuracy"] = Distribution(accuracies)

	if summary.HasPasses() {
		passes := make([]float64, len(summary.Passes))
		for i, p := range summary.Passes {
			passes[i] = float64(p)
		}

		meta["passes"] = Distribution(passes)
	} else {
		meta["passes"] = "unavailable"
	}

	if summary.HasZMWStats() {
		meta["report"] = summary.ReportFile
		meta["zmw_stats"] = CategoryRowsToList(summary.ZMWStats)
	}

	return meta
}

// CategoryRowsToList converts a category table for rendering.
func CategoryRowsToList(rows []types.CategoryRow) []any {
	out := make([]any, 0, len(rows))

	for _, row := range rows {
		out = append(out, map[string]any{
			"status":   row.Status,
			"number":   row.Number,
			"fraction": row.Fraction,
		})
	}

	return out
}

// Distribution summarizes a sample with its mean, median and the 5th/95th
// percentiles.
func Distribution(values []float64) map[string]any {
	if len(values) == 0 {
		return map[string]any{"n": 0}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return map[string]any{
		"n":      len(sorted),
		"mean":   stat.Mean(sorted, nil),
		"median": stat.Quantile(0.5, stat.Empirical, sorted, nil),
		"p5":     stat.Quantile(0.05, stat.Empirical, sorted, nil),
		"p95":    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		"min":    sorted[0],
		"max":    sorted[len(sorted)-1],
	}
}
