package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrbench/internal/classify"
	"mrbench/internal/record"
	"mrbench/internal/stats"
)

const marker = "MultiThread"

func groupsFixture(t *testing.T) map[string]stats.Group {
	t.Helper()
	mk := func(name string, threads int, durations, throughputs, queues []float64) stats.Group {
		var g stats.Group
		for i := range durations {
			g = append(g, record.Enriched{
				Measurement: record.Measurement{
					BenchmarkName:     name,
					EndToEndTimeMs:    durations[i],
					MessagesPerSecond: throughputs[i],
					QueueTimeMs:       queues[i],
					Threads:           threads,
				},
				Meta: record.RunMetadata{RunIndex: i + 1, Benchmark: name},
			})
		}
		return g
	}
	return map[string]stats.Group{
		"BenchmarkDefault": mk("BenchmarkDefault", 1,
			[]float64{100, 110, 105}, []float64{1000, 900, 950}, []float64{1, 2, 1.5}),
		"BenchmarkDefaultMultiThread": mk("BenchmarkDefaultMultiThread", 4,
			[]float64{40, 45, 42}, []float64{2800, 3000, 2900}, []float64{3, 4, 3.5}),
	}
}

func classifiedFixture(t *testing.T) (classify.Classified, map[string]stats.Group) {
	t.Helper()
	groups := groupsFixture(t)
	summaries := stats.Summarize(groups)
	return classify.Partition(summaries, marker), groups
}

func TestComputeSpeedups(t *testing.T) {
	c, groups := classifiedFixture(t)
	pairs, unmatched := classify.Pairs(c, marker)
	require.Empty(t, unmatched)
	require.Len(t, pairs, 1)

	speedups := ComputeSpeedups(c, pairs, groups, 10)
	require.Len(t, speedups, 1)

	s := speedups[0]
	// mean(2800,3000,2900)=2900 / mean(1000,900,950)=950
	assert.InDelta(t, 2900.0/950.0, s.Factor, 1e-9)
	// Threads come from the multi-threaded records, not the nominal count.
	assert.Equal(t, 4, s.Threads)
	assert.InDelta(t, s.Factor/4*100, s.Efficiency, 1e-9)
}

func TestComputeSpeedupsFallsBackToNominalThreads(t *testing.T) {
	c, groups := classifiedFixture(t)
	for i := range groups["BenchmarkDefaultMultiThread"] {
		groups["BenchmarkDefaultMultiThread"][i].Threads = 0
	}
	pairs, _ := classify.Pairs(c, marker)

	speedups := ComputeSpeedups(c, pairs, groups, 10)
	require.Len(t, speedups, 1)
	assert.Equal(t, 10, speedups[0].Threads)
}

func TestRenderText(t *testing.T) {
	c, groups := classifiedFixture(t)
	pairs, _ := classify.Pairs(c, marker)
	speedups := ComputeSpeedups(c, pairs, groups, 10)

	body := RenderText(c, speedups, 3, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, body, "Benchmark Report")
	assert.Contains(t, body, "Number of runs per benchmark: 3")
	assert.Contains(t, body, "[Single-Threaded]")
	assert.Contains(t, body, "[Multi-Threaded]")
	assert.Contains(t, body, "BenchmarkDefault (3 runs)")
	assert.Contains(t, body, "Speedup: 3.05x")
	assert.Contains(t, body, "Efficiency:")
}

func TestRenderTextNoPairs(t *testing.T) {
	c := classify.Partition(map[string]map[string]stats.Summary{
		"OnlySingle": {"messages_per_second": {Mean: 1, Count: 1}},
	}, marker)

	body := RenderText(c, nil, 1, time.Now())
	assert.Contains(t, body, "No matched single-/multi-threaded pairs.")
}

func TestRenderTerminal(t *testing.T) {
	c, groups := classifiedFixture(t)
	pairs, _ := classify.Pairs(c, marker)
	speedups := ComputeSpeedups(c, pairs, groups, 10)

	out := RenderTerminal(c, speedups)
	assert.Contains(t, out, "Benchmark Summary")
	assert.Contains(t, out, "BenchmarkDefault (3 runs)")
	assert.Contains(t, out, "Throughput")
}

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	c, groups := classifiedFixture(t)

	g := &Generator{PlotsDir: dir, Marker: marker, NominalThreads: 10}
	require.NoError(t, g.Generate(c, groups, 3))

	expected := []string{
		"duration_single_threaded.png",
		"duration_multi_threaded.png",
		"performance_single_threaded.png",
		"performance_multi_threaded.png",
		"queue_time_single_threaded.png",
		"queue_time_multi_threaded.png",
		"duration_distribution.png",
		"performance_distribution.png",
		"queue_time_distribution.png",
		"speedup_comparison.png",
		"benchmark_report.txt",
	}
	for _, name := range expected {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestGenerateEmptyCategorySkipsChart(t *testing.T) {
	dir := t.TempDir()
	groups := map[string]stats.Group{
		"BenchmarkSolo": {
			{Measurement: record.Measurement{
				BenchmarkName: "BenchmarkSolo", EndToEndTimeMs: 10, MessagesPerSecond: 100, QueueTimeMs: 1,
			}},
		},
	}
	c := classify.Partition(stats.Summarize(groups), marker)

	g := &Generator{PlotsDir: dir, Marker: marker, NominalThreads: 10}
	require.NoError(t, g.Generate(c, groups, 1))

	// Multi-threaded charts and the speedup chart are skipped, not failed.
	_, err := os.Stat(filepath.Join(dir, "duration_multi_threaded.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "speedup_comparison.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "duration_single_threaded.png"))
	assert.NoError(t, err)
}
