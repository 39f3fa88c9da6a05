//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/replisome"
	"github.com/farcloser/replisome/internal/manifest"
	"github.com/farcloser/replisome/internal/output"
)

var errCompareArgs = errors.New("expected exactly one argument: manifest CSV path")

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Summarize many ccs runs from a manifest and compare them",
		ArgsUsage: "<manifest.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name-col",
				Usage: "Manifest column holding the run name",
				Value: "name",
			},
			&cli.StringFlag{
				Name:  "fastq-col",
				Usage: "Manifest column holding the FASTQ file path",
				Value: "fastq",
			},
			&cli.StringFlag{
				Name:  "report-col",
				Usage: "Manifest column holding the report file path (empty: no reports)",
				Value: "report",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of runs summarized concurrently",
				Value:   runtime.NumCPU(),
			},
			&cli.StringFlag{
				Name:    "variable",
				Aliases: []string{"V"},
				Usage:   "What to compare: zmw, length, accuracy, passes",
				Value:   "zmw",
			},
			&cli.FloatFlag{
				Name:  "min-fail-frac",
				Usage: "Group failure categories below this fraction in every run",
				Value: replisome.DefaultMinFailFrac,
			},
			&cli.BoolFlag{
				Name:  "group-success",
				Usage: "Group all success categories into one",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "pass-tag",
				Usage: "FASTQ comment tag carrying the number of passes (empty disables)",
				Value: replisome.DefaultPassTag,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errCompareArgs, cmd.NArg())
			}

			runs, err := manifest.Load(cmd.Args().First(), manifest.Columns{
				Name:   cmd.String("name-col"),
				Fastq:  cmd.String("fastq-col"),
				Report: cmd.String("report-col"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Summarizing %d runs (%d workers)\n", len(runs), cmd.Int("workers"))

			set, err := replisome.NewSummarySet(runs, replisome.SetOptions{
				Workers: cmd.Int("workers"),
				PassTag: cmd.String("pass-tag"),
			})
			if err != nil {
				return err
			}

			variable := cmd.String("variable")
			if variable == "zmw" {
				rows, err := set.ZMWStats(replisome.AggregateOptions{
					MinFailFrac:  cmd.Float("min-fail-frac"),
					GroupSuccess: cmd.Bool("group-success"),
				})
				if err != nil {
					return err
				}

				return printZMWStats(set, rows, cmd.String("format"))
			}

			points, err := set.Stats(variable)
			if err != nil {
				return err
			}

			return printStats(set, variable, points, cmd.String("format"))
		},
	}
}

// printStats renders per-run distribution summaries of one per-read variable.
func printStats(set *replisome.SummarySet, variable string, points []replisome.StatPoint, formatName string) error {
	values := make(map[string][]float64, len(set.Summaries))
	for _, point := range points {
		values[point.Run] = append(values[point.Run], point.Value)
	}

	metas := make([]map[string]any, 0, len(set.Summaries))
	runs := make([]string, 0, len(set.Summaries))

	for _, summary := range set.Summaries {
		metas = append(metas, map[string]any{variable: output.Distribution(values[summary.Name])})
		runs = append(runs, summary.Name)
	}

	return printAll(runs, metas, formatName)
}

// printZMWStats renders the harmonized category table, one block per run in
// input order.
func printZMWStats(set *replisome.SummarySet, rows []replisome.RunCategoryRow, formatName string) error {
	byRun := make(map[string][]any, len(set.Summaries))
	for _, row := range rows {
		byRun[row.Run] = append(byRun[row.Run], map[string]any{
			"status":   row.Status,
			"number":   row.Number,
			"fraction": row.Fraction,
		})
	}

	metas := make([]map[string]any, 0, len(set.Summaries))
	runs := make([]string, 0, len(set.Summaries))

	for _, summary := range set.Summaries {
		metas = append(metas, map[string]any{"zmw_stats": byRun[summary.Name]})
		runs = append(runs, summary.Name)
	}

	return printAll(runs, metas, formatName)
}
