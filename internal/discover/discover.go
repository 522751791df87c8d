// Package discover finds benchmark executables in the build output directory.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoExecutables is returned when the benchmarks directory contains no
// executable regular files. An empty discovery result is fatal upstream:
// there is nothing to measure, partial benchmarking is not attempted.
var ErrNoExecutables = errors.New("no benchmark executables found")

// FindExecutables returns the lexicographically sorted paths of all regular
// executable files directly under dir.
func FindExecutables(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmarks directory %s: %w", dir, err)
	}

	var executables []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
			continue
		}
		executables = append(executables, filepath.Join(dir, e.Name()))
	}

	sort.Strings(executables)

	if len(executables) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExecutables, dir)
	}
	return executables, nil
}
