package store

import "fmt"

// Comparison is the percentage change of one benchmark between two sweeps.
type Comparison struct {
	Benchmark      string
	ThroughputDiff float64 // percentage change, positive means faster
	DurationDiff   float64 // percentage change, positive means slower
	Prev           BenchmarkMean
	Curr           BenchmarkMean
}

// Compare matches benchmarks present in both sweeps and computes the
// percentage change of their means.
func Compare(prev, curr Sweep) []Comparison {
	prevMap := make(map[string]BenchmarkMean, len(prev.Results))
	for _, r := range prev.Results {
		prevMap[r.Benchmark] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[c.Benchmark]
		if !ok {
			continue
		}
		comp := Comparison{Benchmark: c.Benchmark, Prev: p, Curr: c}
		if p.MeanThroughput > 0 {
			comp.ThroughputDiff = ((c.MeanThroughput - p.MeanThroughput) / p.MeanThroughput) * 100
		}
		if p.MeanDurationMs > 0 {
			comp.DurationDiff = ((c.MeanDurationMs - p.MeanDurationMs) / p.MeanDurationMs) * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% throughput, %+.2f%% duration", c.Benchmark, c.ThroughputDiff, c.DurationDiff)
}
