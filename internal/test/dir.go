// Package test holds small helpers shared by every package's test files:
// scratch directories, env var scoping, and error-checking boilerplate.
package test

import (
	"os"
	"testing"
)

// TempDir creates a temporary directory for a fixture-based test (a fake
// project tree with its own .eslintrc.* files) and returns it along with a
// cleanup function.
func TempDir(t *testing.T) (string, func()) {
	dir, err := os.MkdirTemp("", "cascadetest")
	if err != nil {
		t.Fatal(err)
	}

	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Fatal(err)
		}
	}
}
