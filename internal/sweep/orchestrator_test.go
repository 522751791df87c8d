package sweep

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrbench/internal/record"
)

type stubRunner struct {
	calls  []string
	failOn map[string]bool // "name:run" → fail
}

func (s *stubRunner) Run(ctx context.Context, executable string, runIndex int) (record.RunMetadata, error) {
	key := fmt.Sprintf("%s:%d", executable, runIndex)
	s.calls = append(s.calls, key)
	meta := record.RunMetadata{
		RunIndex:  runIndex,
		WallTime:  time.Millisecond,
		Timestamp: time.Now(),
		Benchmark: executable,
	}
	if s.failOn[key] {
		return meta, errors.New("exit status 1")
	}
	return meta, nil
}

type stubCollector struct {
	failOn map[string]bool // "name:run" → fail
}

func (s *stubCollector) Collect(meta record.RunMetadata) (*record.Enriched, error) {
	key := fmt.Sprintf("%s:%d", meta.Benchmark, meta.RunIndex)
	if s.failOn[key] {
		return nil, errors.New("no result file found")
	}
	return &record.Enriched{
		Measurement: record.Measurement{
			BenchmarkName:     meta.Benchmark,
			EndToEndTimeMs:    float64(meta.RunIndex) * 10,
			MessagesPerSecond: 100,
			QueueTimeMs:       1,
		},
		Meta: meta,
	}, nil
}

type countingResetter struct{ calls int }

func (c *countingResetter) Reset(ctx context.Context) { c.calls++ }

func TestSweepCollectsAllRuns(t *testing.T) {
	runner := &stubRunner{}
	resetter := &countingResetter{}
	o := &Orchestrator{Runner: runner, Collector: &stubCollector{}, Resetter: resetter}

	records, err := o.Sweep(context.Background(), []string{"A", "B"}, 3)
	require.NoError(t, err)

	assert.Len(t, records, 6)
	// One reset barrier per run.
	assert.Equal(t, 6, resetter.calls)
	// Discovery order, runs sequential within a benchmark.
	assert.Equal(t, []string{"A:1", "A:2", "A:3", "B:1", "B:2", "B:3"}, runner.calls)
}

func TestSweepFailedRunDoesNotPoisonOthers(t *testing.T) {
	runner := &stubRunner{failOn: map[string]bool{"A:2": true}}
	o := &Orchestrator{Runner: runner, Collector: &stubCollector{}, Resetter: &countingResetter{}}

	records, err := o.Sweep(context.Background(), []string{"A", "B"}, 3)
	require.NoError(t, err)

	// A loses exactly one run; B is unaffected.
	var aCount, bCount int
	for _, r := range records {
		switch r.BenchmarkName {
		case "A":
			aCount++
		case "B":
			bCount++
		}
	}
	assert.Equal(t, 2, aCount)
	assert.Equal(t, 3, bCount)
	// The failing run did not stop the sweep.
	assert.Len(t, runner.calls, 6)
}

func TestSweepUncollectableRunIsDiscarded(t *testing.T) {
	collector := &stubCollector{failOn: map[string]bool{"A:1": true}}
	o := &Orchestrator{Runner: &stubRunner{}, Collector: collector, Resetter: &countingResetter{}}

	records, err := o.Sweep(context.Background(), []string{"A"}, 2)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Meta.RunIndex)
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &stubRunner{}
	o := &Orchestrator{Runner: runner, Collector: &stubCollector{}, Resetter: &countingResetter{}}

	// Cancel after the first run completes by wrapping the collector.
	collector := &cancellingCollector{inner: &stubCollector{}, cancel: cancel}
	o.Collector = collector

	records, err := o.Sweep(ctx, []string{"A", "B"}, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, records, 1)
}

type cancellingCollector struct {
	inner  *stubCollector
	cancel context.CancelFunc
}

func (c *cancellingCollector) Collect(meta record.RunMetadata) (*record.Enriched, error) {
	defer c.cancel()
	return c.inner.Collect(meta)
}
