package tests_test

import (
	"fmt"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/replisome/tests/testutils"
)

func TestCompareCLI(t *testing.T) {
	testCase := testutils.Setup()

	fastqA := writeFixture(t, "a.fastq", twoReadFastq)
	fastqB := writeFixture(t, "b.fastq", twoReadFastq)

	// "Heteroduplexes" stays below one percent in both runs, so the
	// harmonized tables absorb it into the grouped failure category.
	reportA := writeFixture(t, "a.txt", yieldReport(2,
		"Failed -- Not enough full passes,10,25.00%",
		"Failed -- Heteroduplexes,1,0.30%",
	))
	reportB := writeFixture(t, "b.txt", yieldReport(2,
		"Failed -- Not enough full passes,20,40.00%",
		"Failed -- Heteroduplexes,0,0.20%",
	))

	manifest := writeFixture(t, "runs.csv", fmt.Sprintf(
		"name,fastq,report\nrunA,%s,%s\nrunB,%s,%s\n",
		fastqA, reportA, fastqB, reportB,
	))
	duplicates := writeFixture(t, "runs.csv", fmt.Sprintf(
		"name,fastq,report\nrunA,%s,%s\nrunA,%s,%s\n",
		fastqA, reportA, fastqB, reportB,
	))
	noReports := writeFixture(t, "runs.csv", fmt.Sprintf(
		"name,fastq\nrunA,%s\nrunB,%s\n", fastqA, fastqB,
	))

	testCase.SubTests = []*test.Case{
		{
			Description: "compare without arguments fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare")
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare nonexistent manifest fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", "/nonexistent/path/runs.csv")
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare harmonizes category tables",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", manifest)
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						expectCategory("Failed -- Other reason", 1),
						expectCategory("Failed -- Other reason", 0),
						expectContains("Failed -- Not enough full passes"),
					),
				}
			},
		},
		{
			Description: "compare read lengths prints distributions",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", "--variable", "length", manifest)
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output: expect.All(
						expectContains("median"),
						expectContains("runA"),
						expectContains("runB"),
					),
				}
			},
		},
		{
			Description: "compare unknown variable fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", "--variable", "gc-content", manifest)
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare duplicate run names fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", duplicates)
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare negative worker count fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", "--workers=-1", manifest)
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare zmw without reports fails",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(helpers, "compare", "--report-col", "", noReports)
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "compare read lengths without reports succeeds",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return testutils.Command(
					helpers,
					"compare",
					"--report-col",
					"",
					"--variable",
					"length",
					noReports,
				)
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains("median"),
				}
			},
		},
	}

	testCase.Run(t)
}
