package report

import (
	"mrbench/internal/classify"
	"mrbench/internal/stats"
)

// Speedup is the throughput ratio of a matched multi-/single-threaded pair.
type Speedup struct {
	Pair       classify.Pair
	Factor     float64
	Threads    int
	Efficiency float64 // percent of ideal, Factor/Threads*100
}

// ComputeSpeedups derives speedup and efficiency for every matched pair.
// The thread count comes from the multi-threaded group's records when they
// carry one, otherwise from the configured nominal thread count. Pairs whose
// single-threaded mean throughput is zero are skipped.
func ComputeSpeedups(c classify.Classified, pairs []classify.Pair, groups map[string]stats.Group, nominalThreads int) []Speedup {
	var speedups []Speedup
	for _, pair := range pairs {
		single, ok := c.SingleThreaded[pair.Single]
		if !ok {
			continue
		}
		multi, ok := c.MultiThreaded[pair.Multi]
		if !ok {
			continue
		}

		singleMean := single["messages_per_second"].Mean
		multiMean := multi["messages_per_second"].Mean
		if singleMean <= 0 {
			continue
		}

		threads := nominalThreads
		if group, ok := groups[pair.Multi]; ok && len(group) > 0 && group[0].Threads > 0 {
			threads = group[0].Threads
		}

		s := Speedup{
			Pair:    pair,
			Factor:  multiMean / singleMean,
			Threads: threads,
		}
		if threads > 0 {
			s.Efficiency = s.Factor / float64(threads) * 100
		}
		speedups = append(speedups, s)
	}
	return speedups
}
