// Package envreset restores comparable I/O conditions between benchmark runs.
package envreset

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Outcome reports what happened during a best-effort cache drop. None of the
// variants propagate as an error; the pipeline continues regardless.
type Outcome int

const (
	Succeeded Outcome = iota
	Unavailable
	FailedIgnored
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Unavailable:
		return "unavailable"
	default:
		return "failed-ignored"
	}
}

// CacheDropper attempts to invalidate OS filesystem caches.
type CacheDropper interface {
	Drop(ctx context.Context) Outcome
}

// SysCacheDropper drops the Linux page cache, dentries and inodes. It needs
// elevated privileges; hosts without them get Unavailable, never an error.
type SysCacheDropper struct{}

func (SysCacheDropper) Drop(ctx context.Context) Outcome {
	if err := exec.CommandContext(ctx, "sync").Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Unavailable
		}
		return FailedIgnored
	}

	cmd := exec.CommandContext(ctx, "sudo", "sh", "-c", "echo 3 > /proc/sys/vm/drop_caches")
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Unavailable
		}
		return FailedIgnored
	}
	return Succeeded
}

// Resetter clears transient artifacts before each run.
type Resetter struct {
	BuildDir string
	Dropper  CacheDropper
}

// NewResetter returns a resetter over buildDir using the system cache dropper.
func NewResetter(buildDir string) *Resetter {
	return &Resetter{BuildDir: buildDir, Dropper: SysCacheDropper{}}
}

// Reset deletes stray log files from the build directory and attempts a cache
// drop. Deletion failures are logged as warnings; nothing here aborts the
// pipeline.
func (r *Resetter) Reset(ctx context.Context) {
	logs, err := filepath.Glob(filepath.Join(r.BuildDir, "*.log"))
	if err == nil {
		for _, f := range logs {
			if err := os.Remove(f); err != nil {
				slog.Warn("could not delete stray log file", "path", f, "error", err)
				continue
			}
			slog.Debug("deleted stray log file", "path", f)
		}
	}

	if r.Dropper != nil {
		outcome := r.Dropper.Drop(ctx)
		if outcome != Succeeded {
			slog.Debug("cache drop skipped", "outcome", outcome.String())
		}
	}
}
