package tests_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// twoReadFastq is a run of two consensus reads carrying pass tags.
const twoReadFastq = "@m64011_190830_220126/1/ccs np:i:18\n" +
	"ACGT\n" +
	"+\n" +
	"~~~~\n" +
	"@m64011_190830_220126/2/ccs np:i:51\n" +
	"ACGTA\n" +
	"+\n" +
	"~~~~~\n"

// yieldReport renders a yield-list report declaring the given number of
// successful reads, followed by the given extra category lines.
func yieldReport(success int, extraRows ...string) string {
	var b strings.Builder

	b.WriteString("ZMW Yield\n")
	b.WriteString(fmt.Sprintf("Success -- CCS generated,%d,66.67%%\n", success))
	b.WriteString("Failed -- Below SNR threshold,1,33.33%\n")

	for _, row := range extraRows {
		b.WriteString(row + "\n")
	}

	b.WriteString("\n\n")

	return b.String()
}

// writeFixture writes a fixture file into a per-test temporary directory and
// returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectField returns a comparator verifying the output contains a
// "key: value" line.
func expectField(key, value string) test.Comparator {
	return expectContains(fmt.Sprintf("%s: %s", key, value))
}

// expectCategory returns a comparator verifying that a category block for the
// given status reports the given count. It looks for "status: <status>" with
// "number: <count>" in an adjacent line of the same block.
func expectCategory(status string, count int) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if categoryBlockContains(stdout, status, fmt.Sprintf("number: %d", count)) {
			return
		}

		testing.Log(
			fmt.Sprintf("expected category %q with count %d not found in output:\n%s", status, count, stdout),
		)
		testing.Fail()
	}
}

// categoryBlockContains checks whether a category block for the given status
// contains the target string. It scans for "status: <status>" and then looks
// in adjacent lines for the target.
func categoryBlockContains(stdout, status, target string) bool {
	lines := strings.Split(stdout, "\n")
	statusLine := fmt.Sprintf("status: %s", status)

	for i, line := range lines {
		if !strings.Contains(line, statusLine) {
			continue
		}

		// Search nearby lines (within the same category block).
		for j := max(0, i-4); j < min(len(lines), i+4); j++ {
			if strings.Contains(lines[j], target) {
				return true
			}
		}
	}

	return false
}
