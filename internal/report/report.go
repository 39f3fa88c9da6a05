// Package report parses the yield report written by the ccs basecaller into
// a normalized status/number/fraction table.
//
// Two report layouts exist in the wild and neither carries a version marker,
// so detection is structural: each candidate layout either matches the whole
// document or yields nothing, and the first match wins. A document matching
// neither layout is a hard error; silently producing wrong statistics is
// worse than refusing.
package report

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"
	"github.com/shenwei356/xopen"

	"github.com/farcloser/replisome/internal/types"
)

// GeneratedStatus is the status assigned to the generating-CCS count of an
// exclusive-counts report, which names no per-category status of its own.
const GeneratedStatus = "ZMWs generating CCS"

// ErrUnrecognizedReport indicates that a report document matches neither
// known layout.
var ErrUnrecognizedReport = errors.New("report matches no known layout")

// Exclusive-counts layout ("ccs 4.*"): a fixed three-line header followed by
// one "label : count (percent%)" line per mutually-exclusive failure
// category. Printed percentages are ignored; fractions are recomputed from
// the raw counts so they are guaranteed to sum to 1 across the row set.
var exclusiveCounts = regexp.MustCompile(
	`^ZMWs input\s+\(A\)\s+:\s+\d+\n` +
		`ZMWs generating CCS\s+\(B\)\s+:\s+(\d+) \S+\n` +
		`ZMWs filtered\s+\(C\)\s+:\s+\d+ \S+\n` +
		`\n` +
		`Exclusive ZMW counts for \(C\):\n` +
		`((?:[\w \-]+: \d+ \S+\n)+)\s*$`)

// Yield-list layout ("ccs 3.*"): a "ZMW Yield" block of comma-separated
// status,number,percent% rows, optionally followed by a "Subread Yield"
// block of the same shape. Only the ZMW block is used. Fractions are taken
// from the printed percentages because this layout prints no independent
// total to recompute from.
var yieldList = regexp.MustCompile(
	`^ZMW Yield\n((?:.+\n)+)\n\n(?:Subread Yield\n(?:.+\n)+)?\s*$`)

// Parse reads a yield report file (plain or gzipped) and returns its
// normalized category table.
func Parse(path string) ([]types.CategoryRow, error) {
	reader, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
	}
	defer reader.Close()

	text, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
	}

	return ParseText(string(text), path)
}

// ParseText parses raw report text. path is used in error messages only.
func ParseText(text, path string) ([]types.CategoryRow, error) {
	for _, parse := range []func(string) ([]types.CategoryRow, bool, error){
		parseExclusiveCounts,
		parseYieldList,
	} {
		rows, ok, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}

		if ok {
			return rows, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedReport, path)
}

func parseExclusiveCounts(text string) ([]types.CategoryRow, bool, error) {
	m := exclusiveCounts.FindStringSubmatch(text)
	if m == nil {
		return nil, false, nil
	}

	generated, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false, fmt.Errorf("generating-CCS count %q: %w", m[1], err)
	}

	rows := []types.CategoryRow{{Status: GeneratedStatus, Number: generated}}

	for line := range strings.Lines(m[2]) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}

		label, rest, found := strings.Cut(line, ":")
		if !found {
			return nil, false, fmt.Errorf("exclusive count line %q: missing separator", line)
		}

		number, err := strconv.Atoi(strings.Fields(rest)[0])
		if err != nil {
			return nil, false, fmt.Errorf("exclusive count line %q: %w", line, err)
		}

		rows = append(rows, types.CategoryRow{Status: strings.TrimSpace(label), Number: number})
	}

	total := 0
	for _, row := range rows {
		total += row.Number
	}

	if total > 0 {
		for i := range rows {
			rows[i].Fraction = float64(rows[i].Number) / float64(total)
		}
	}

	return rows, true, nil
}

func parseYieldList(text string) ([]types.CategoryRow, bool, error) {
	m := yieldList.FindStringSubmatch(text)
	if m == nil {
		return nil, false, nil
	}

	var rows []types.CategoryRow

	for line := range strings.Lines(m[1]) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, false, fmt.Errorf("yield line %q: want status,number,percent", line)
		}

		number, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, false, fmt.Errorf("yield line %q: %w", line, err)
		}

		percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "%"), 64)
		if err != nil {
			return nil, false, fmt.Errorf("yield line %q: %w", line, err)
		}

		rows = append(rows, types.CategoryRow{
			Status:   fields[0],
			Number:   number,
			Fraction: percent / 100,
		})
	}

	return rows, true, nil
}
