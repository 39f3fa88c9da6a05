// Package testutils provides test infrastructure for replisome integration tests.
package testutils

import (
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"
)

// Setup creates a test case for driving the replisome binary.
func Setup() *test.Case {
	return &test.Case{}
}

// Command builds a testable command invoking the replisome binary, expected
// at bin/replisome under the project root.
func Command(helpers test.Helpers, args ...string) test.TestableCommand {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "replisome")

	return helpers.Custom(binaryPath, args...)
}
