package sweep

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"mrbench/internal/record"
)

// Executor invokes one benchmark executable as a subordinate process with no
// stdin, capturing output and timing wall-clock duration.
type Executor struct {
	// WorkDir is the working directory of the benchmark process; the
	// executables resolve their results directory relative to it.
	WorkDir string
	Timeout time.Duration
}

// Run executes the benchmark once. The returned metadata is valid even on
// failure; the error carries the captured stderr for the warning log.
func (e *Executor) Run(ctx context.Context, executable string, runIndex int) (record.RunMetadata, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, executable)
	cmd.Dir = e.WorkDir
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	meta := record.RunMetadata{
		RunIndex:  runIndex,
		WallTime:  time.Since(start),
		Timestamp: start,
		Benchmark: filepath.Base(executable),
	}

	if err != nil {
		return meta, fmt.Errorf("benchmark %s run %d failed: %w\nStderr:\n%s",
			meta.Benchmark, runIndex, err, stderr.String())
	}
	return meta, nil
}
