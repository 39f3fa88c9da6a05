// Package fastq extracts per-read statistics from FASTQ files produced by a
// ccs basecaller: read length, mean accuracy derived from the quality values,
// and the number of consensus passes when the records carry a pass-count tag.
package fastq

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"
	"github.com/shenwei356/bio/seqio/fastx"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/replisome/internal/types"
)

// phredOffset is the ASCII offset of Phred+33 quality encoding.
const phredOffset = 33

var errMissingQuality = errors.New("record has no quality values")

// Result holds the per-read statistics for a whole FASTQ file.
type Result struct {
	// Reads lists length and accuracy for every read, in file order.
	Reads []types.ReadStats

	// Passes lists the declared pass count for every read, in file order.
	// It is nil when any record in the file lacks the pass tag: pass data
	// is all-or-nothing so that runs with and without reliable pass
	// information are never silently mixed.
	Passes []int
}

// Extract reads a FASTQ file (plain or gzipped) and computes per-read
// statistics. passTag names the key:i:value comment tag carrying the pass
// count; an empty passTag disables pass extraction entirely.
func Extract(path, passTag string) (*Result, error) {
	var passPattern *regexp.Regexp

	if passTag != "" {
		// Tag must be its own whitespace-delimited token in the comment.
		passPattern = regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(passTag) + `:i:(\d+)(?:\s|$)`)
	}

	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
	}
	defer reader.Close()

	result := &Result{}
	if passPattern != nil {
		result.Passes = []int{}
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("%w: %q: %w", fault.ErrReadFailure, path, err)
		}

		if len(record.Seq.Qual) == 0 {
			return nil, fmt.Errorf("%w: %q: record %q", errMissingQuality, path, string(record.ID))
		}

		result.Reads = append(result.Reads, types.ReadStats{
			Length:   len(record.Seq.Seq),
			Accuracy: accuracy(record.Seq.Qual),
		})

		if result.Passes == nil {
			continue
		}

		passes, ok := passCount(record, passPattern)
		if !ok {
			// One read without the tag invalidates pass data for the
			// whole run.
			result.Passes = nil

			continue
		}

		result.Passes = append(result.Passes, passes)
	}

	return result, nil
}

// accuracy converts Phred+33 quality values into a single mean accuracy:
// the arithmetic average over bases of 1 - 10^(-q/10).
func accuracy(qual []byte) float64 {
	if len(qual) == 0 {
		return 0
	}

	perBase := make([]float64, len(qual))
	for i, q := range qual {
		perBase[i] = 1 - math.Pow(10, -float64(int(q)-phredOffset)/10)
	}

	return stat.Mean(perBase, nil)
}

// passCount extracts the pass tag from the record's header comment.
func passCount(record *fastx.Record, pattern *regexp.Regexp) (int, bool) {
	comment := strings.TrimSpace(strings.TrimPrefix(string(record.Name), string(record.ID)))
	if comment == "" {
		return 0, false
	}

	m := pattern.FindStringSubmatch(comment)
	if m == nil {
		return 0, false
	}

	passes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return passes, true
}
