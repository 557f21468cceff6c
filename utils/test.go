package utils

import (
	"os"
	"testing"
)

// WithCleanDirs runs the package tests with dirs removed before and after,
// returning the exit code for os.Exit.
func WithCleanDirs(m *testing.M, dirs ...string) int {
	clean := func() {
		for _, dir := range dirs {
			_ = os.RemoveAll(dir)
		}
	}
	clean()
	defer clean()
	return m.Run()
}
