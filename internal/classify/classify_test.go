package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrbench/internal/stats"
)

const marker = "MultiThread"

func summaryFixture(names ...string) map[string]map[string]stats.Summary {
	out := make(map[string]map[string]stats.Summary, len(names))
	for _, n := range names {
		out[n] = map[string]stats.Summary{
			"messages_per_second": {Mean: 1, Count: 1},
		}
	}
	return out
}

func TestPartitionScenario(t *testing.T) {
	c := Partition(summaryFixture("LoadTest", "LoadTestMultiThread"), marker)

	assert.Contains(t, c.SingleThreaded, "LoadTest")
	assert.Contains(t, c.MultiThreaded, "LoadTestMultiThread")
	assert.NotContains(t, c.MultiThreaded, "LoadTest")
	assert.NotContains(t, c.SingleThreaded, "LoadTestMultiThread")
}

func TestPartitionIsTotalAndDisjoint(t *testing.T) {
	names := []string{"A", "BMultiThread", "C", "CMultiThread", "multithread_lowercase"}
	c := Partition(summaryFixture(names...), marker)

	total := len(c.SingleThreaded) + len(c.MultiThreaded)
	require.Equal(t, len(names), total)
	for name := range c.SingleThreaded {
		assert.NotContains(t, c.MultiThreaded, name)
	}

	// The marker test is case-sensitive.
	assert.Contains(t, c.SingleThreaded, "multithread_lowercase")
}

func TestCounterpartName(t *testing.T) {
	assert.Equal(t, "LoadTest", CounterpartName("LoadTestMultiThread", marker))
	assert.Equal(t, "BenchmarkLarge", CounterpartName("BenchmarkLargeMultiThread", marker))
}

func TestPairs(t *testing.T) {
	c := Partition(summaryFixture(
		"BenchmarkDefault", "BenchmarkDefaultMultiThread",
		"BenchmarkSmall", "BenchmarkSmallMultiThread",
		"BenchmarkOrphanMultiThread",
	), marker)

	pairs, unmatched := Pairs(c, marker)

	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Single: "BenchmarkDefault", Multi: "BenchmarkDefaultMultiThread"}, pairs[0])
	assert.Equal(t, Pair{Single: "BenchmarkSmall", Multi: "BenchmarkSmallMultiThread"}, pairs[1])
	assert.Equal(t, []string{"BenchmarkOrphanMultiThread"}, unmatched)
}

func TestPairsEmptyCategories(t *testing.T) {
	pairs, unmatched := Pairs(Partition(summaryFixture("OnlySingle"), marker), marker)
	assert.Empty(t, pairs)
	assert.Empty(t, unmatched)
}
