//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/replisome"
	"github.com/farcloser/replisome/internal/output"
)

var errSummarizeArgs = errors.New("expected exactly one argument: FASTQ file path")

func summarizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "summarize",
		Usage:     "Summarize one ccs run from its FASTQ file and optional yield report",
		ArgsUsage: "<reads.fastq[.gz]>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Run name (default: FASTQ file name without extension)",
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "Yield report written by ccs for this run",
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
				return fmt.Errorf("%w: got %d", errSummarizeArgs, cmd.NArg())
			}

			fastqFile := cmd.Args().First()

			name := cmd.String("name")
			if name == "" {
				name = runNameFromPath(fastqFile)
			}

			summary, err := replisome.NewSummary(name, fastqFile, cmd.String("report"),
				replisome.SummaryOptions{PassTag: cmd.String("pass-tag")})
			if err != nil {
				return err
			}

			return printMeta(fastqFile, output.SummaryToMap(summary), cmd.String("format"))
		},
	}
}

// runNameFromPath derives a run name from a FASTQ path, stripping the
// directory and the usual .fastq/.fq/.gz extensions.
func runNameFromPath(path string) string {
	name := filepath.Base(path)

	for _, ext := range []string{".gz", ".fastq", ".fq"} {
		name = strings.TrimSuffix(name, ext)
	}

	return name
}
