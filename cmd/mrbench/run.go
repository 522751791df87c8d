package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mrbench/internal/buildtool"
	"mrbench/internal/classify"
	"mrbench/internal/config"
	"mrbench/internal/discover"
	"mrbench/internal/envreset"
	"mrbench/internal/record"
	"mrbench/internal/report"
	"mrbench/internal/stats"
	"mrbench/internal/store"
	"mrbench/internal/sweep"
	"mrbench/internal/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run <runs>",
	Short: "Build the benchmarks and run the full measurement sweep",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(args[0])
	},
}

func init() {
	runCmd.Flags().Bool("skip-build", false, "Reuse existing executables instead of rebuilding")
	runCmd.Flags().Int("settle", 2, "Seconds to wait between runs")
	runCmd.Flags().Int("metrics-port", 0, "Expose Prometheus sweep metrics on this port (0 = off)")
	viper.BindPFlag("skip_build", runCmd.Flags().Lookup("skip-build"))
	viper.BindPFlag("settle_seconds", runCmd.Flags().Lookup("settle"))
	viper.BindPFlag("metrics_port", runCmd.Flags().Lookup("metrics-port"))

	rootCmd.AddCommand(runCmd)
}

func runPipeline(runsArg string) error {
	// Usage errors are checked before any build or execution step.
	runs, err := strconv.Atoi(runsArg)
	if err != nil {
		return fmt.Errorf("number of runs must be a positive integer, got: %q", runsArg)
	}
	if err := config.ValidateRuns(runs); err != nil {
		return err
	}
	if err := config.ValidateConfig(); err != nil {
		return err
	}
	cfg := config.FromViper()

	if !buildtool.HasDescriptor(cfg.BuildDescriptor) {
		return fmt.Errorf("build descriptor %s not found; run from the project root or pass --project", cfg.BuildDescriptor)
	}

	skipBuild := viper.GetBool("skip_build")
	metricsPort := cfg.MetricsPort

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting benchmark sweep", "runs_per_benchmark", runs, "project", cfg.ProjectRoot)

	if skipBuild {
		slog.Info("skipping build, using existing executables")
	} else {
		meson := buildtool.NewMeson(cfg.ProjectRoot, cfg.BuildDir)
		if err := meson.Configure(ctx); err != nil {
			return err
		}
		if err := meson.Compile(ctx); err != nil {
			return err
		}
	}

	for _, dir := range []string{cfg.ResultsDir, cfg.PlotsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	executables, err := discover.FindExecutables(cfg.BenchmarksDir)
	if err != nil {
		return err
	}
	slog.Info("discovered benchmark executables", "count", len(executables))

	var metrics *telemetry.SweepMetrics
	if metricsPort > 0 {
		m, registry := telemetry.NewSweepMetrics()
		telemetry.StartMetricsServer(fmt.Sprintf(":%d", metricsPort), registry)
		metrics = m
	}

	orchestrator := &sweep.Orchestrator{
		Runner:      &sweep.Executor{WorkDir: cfg.ProjectRoot, Timeout: cfg.RunTimeout},
		Collector:   record.NewCollector(cfg.ResultsDir),
		Resetter:    envreset.NewResetter(cfg.BuildDir),
		SettleDelay: cfg.SettleDelay,
		Metrics:     metrics,
	}

	records, sweepErr := orchestrator.Sweep(ctx, executables, runs)
	if len(records) == 0 {
		if sweepErr != nil {
			return fmt.Errorf("sweep interrupted with no results: %w", sweepErr)
		}
		slog.Warn("no benchmark results to analyze")
		return nil
	}

	if path, err := store.SaveRaw(cfg.ResultsDir, records, time.Now()); err != nil {
		slog.Warn("could not save raw results", "error", err)
	} else {
		slog.Info("raw results saved", "path", path)
	}

	if err := analyze(cfg, records, runs); err != nil {
		return err
	}

	// An interrupt mid-sweep still analyzed the finished runs, but the exit
	// code must reflect the truncated sweep.
	return sweepErr
}

// analyze runs the back half of the pipeline: aggregation, statistics,
// classification, artifacts, history.
func analyze(cfg config.Config, records []record.Enriched, runsRequested int) error {
	groups := stats.Aggregate(records)
	summaries := stats.Summarize(groups)
	classified := classify.Partition(summaries, cfg.MultithreadMarker)

	generator := &report.Generator{
		PlotsDir:       cfg.PlotsDir,
		Marker:         cfg.MultithreadMarker,
		NominalThreads: cfg.NominalThreads,
	}
	if err := generator.Generate(classified, groups, runsRequested); err != nil {
		return err
	}

	if history, err := store.OpenHistory(cfg.HistoryDB); err != nil {
		slog.Warn("could not open history database", "error", err)
	} else {
		defer history.Close()
		if _, err := history.SaveSweep(runsRequested, summaries, time.Now()); err != nil {
			slog.Warn("could not record sweep in history", "error", err)
		}
	}

	pairs, _ := classify.Pairs(classified, cfg.MultithreadMarker)
	speedups := report.ComputeSpeedups(classified, pairs, groups, cfg.NominalThreads)
	fmt.Println(report.RenderTerminal(classified, speedups))

	return nil
}
