// Package sweep executes the full benchmark sweep: every discovered
// executable, run the requested number of times, strictly sequentially.
package sweep

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"mrbench/internal/record"
	"mrbench/internal/telemetry"
)

// Runner executes a single benchmark run.
type Runner interface {
	Run(ctx context.Context, executable string, runIndex int) (record.RunMetadata, error)
}

// Collector picks up and parses the record a successful run produced.
type Collector interface {
	Collect(meta record.RunMetadata) (*record.Enriched, error)
}

// Resetter restores comparable conditions before a run.
type Resetter interface {
	Reset(ctx context.Context)
}

// Orchestrator drives the sweep. Runs never overlap: the environment reset
// is a barrier before each run, and the subordinate process is waited on
// synchronously. Overlapping runs would corrupt both cache-state
// comparability and the collector's most-recent-file selection.
type Orchestrator struct {
	Runner    Runner
	Collector Collector
	Resetter  Resetter

	// SettleDelay gives the system time to quiesce between runs.
	SettleDelay time.Duration
	Metrics     *telemetry.SweepMetrics
}

// Sweep runs every executable `runs` times and returns the records of all
// surviving runs. Per-run failures (non-zero exit, missing or unparsable
// result) are logged and skipped; they never abort the sweep or leak across
// benchmark identities. A cancelled context stops the sweep early and
// returns what was collected so far along with the context error.
func (o *Orchestrator) Sweep(ctx context.Context, executables []string, runs int) ([]record.Enriched, error) {
	total := len(executables) * runs
	done := 0

	var collected []record.Enriched
	for _, executable := range executables {
		name := filepath.Base(executable)
		slog.Info("running benchmark", "benchmark", name, "runs", runs)

		for run := 1; run <= runs; run++ {
			if err := ctx.Err(); err != nil {
				slog.Warn("sweep interrupted", "completed", done, "total", total)
				return collected, err
			}

			done++
			slog.Info("progress", "run", done, "total", total, "benchmark", name)

			o.Resetter.Reset(ctx)

			if o.Metrics != nil {
				o.Metrics.RunsTotal.WithLabelValues(name).Inc()
				o.Metrics.RunsInProgress.Set(1)
			}

			meta, err := o.Runner.Run(ctx, executable, run)

			if o.Metrics != nil {
				o.Metrics.RunsInProgress.Set(0)
				o.Metrics.RunDuration.WithLabelValues(name).Observe(meta.WallTime.Seconds())
			}

			if err != nil {
				slog.Warn("benchmark run failed", "benchmark", name, "run", run, "error", err)
				if o.Metrics != nil {
					o.Metrics.RunsFailed.WithLabelValues(name).Inc()
				}
				continue
			}

			enriched, err := o.Collector.Collect(meta)
			if err != nil {
				slog.Warn("discarding run, result not collected", "benchmark", name, "run", run, "error", err)
				if o.Metrics != nil {
					o.Metrics.RunsFailed.WithLabelValues(name).Inc()
				}
				continue
			}

			collected = append(collected, *enriched)
			if o.Metrics != nil {
				o.Metrics.RecordsCollected.Inc()
			}

			if o.SettleDelay > 0 && done < total {
				select {
				case <-time.After(o.SettleDelay):
				case <-ctx.Done():
				}
			}
		}
		slog.Info("completed all runs", "benchmark", name)
	}

	return collected, nil
}
