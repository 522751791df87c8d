package sweep

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecutorRunSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	dir := t.TempDir()
	exe := writeScript(t, dir, "BenchmarkDefault", "exit 0\n")

	e := &Executor{WorkDir: dir, Timeout: 10 * time.Second}
	meta, err := e.Run(context.Background(), exe, 1)
	require.NoError(t, err)

	assert.Equal(t, "BenchmarkDefault", meta.Benchmark)
	assert.Equal(t, 1, meta.RunIndex)
	assert.Greater(t, meta.WallTime, time.Duration(0))
	assert.False(t, meta.Timestamp.IsZero())
}

func TestExecutorRunNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	dir := t.TempDir()
	exe := writeScript(t, dir, "BenchmarkBroken", "echo boom >&2\nexit 1\n")

	e := &Executor{WorkDir: dir}
	meta, err := e.Run(context.Background(), exe, 4)
	require.Error(t, err)

	// Metadata stays usable and stderr is carried in the error.
	assert.Equal(t, "BenchmarkBroken", meta.Benchmark)
	assert.Equal(t, 4, meta.RunIndex)
	assert.Contains(t, err.Error(), "boom")
}

func TestExecutorTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	dir := t.TempDir()
	exe := writeScript(t, dir, "BenchmarkSlow", "sleep 5\n")

	e := &Executor{WorkDir: dir, Timeout: 100 * time.Millisecond}
	_, err := e.Run(context.Background(), exe, 1)
	assert.Error(t, err)
}
