// Package stats groups measurement records by benchmark identity and
// computes descriptive statistics per tracked metric.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mrbench/internal/record"
)

// Summary holds the descriptive statistics of one metric within one
// benchmark group. Stdev is the sample standard deviation and stays zero
// for single-record groups.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Stdev  float64
	Count  int
}

// Group is an ordered sequence of records sharing one benchmark identity.
// Append order equals run order; downstream consumers do not rely on it.
type Group []record.Enriched

// Aggregate maps records to groups keyed by benchmark identity.
func Aggregate(records []record.Enriched) map[string]Group {
	groups := make(map[string]Group)
	for _, r := range records {
		groups[r.BenchmarkName] = append(groups[r.BenchmarkName], r)
	}
	return groups
}

// Summarize computes, for every non-empty group and every tracked metric,
// the (min, max, mean, median, stdev, count) tuple. Groups with zero records
// are omitted entirely. The function is pure: identical input yields
// identical output.
func Summarize(groups map[string]Group) map[string]map[string]Summary {
	out := make(map[string]map[string]Summary, len(groups))
	for name, group := range groups {
		if len(group) == 0 {
			continue
		}
		perMetric := make(map[string]Summary, len(record.Metrics))
		for _, metric := range record.Metrics {
			values := make([]float64, len(group))
			for i, r := range group {
				values[i] = r.Value(metric.Key)
			}
			perMetric[metric.Key] = summarize(values)
		}
		out[name] = perMetric
	}
	return out
}

func summarize(values []float64) Summary {
	s := Summary{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   stat.Mean(values, nil),
		Median: median(values),
		Count:  len(values),
	}
	if len(values) > 1 {
		s.Stdev = stat.StdDev(values, nil)
	}
	return s
}

// median uses the conventional rule: middle element for odd counts, the
// average of the two middle elements for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Series extracts the raw per-run values of one metric for every group, for
// distribution plots. Iteration order is left to the caller.
func Series(groups map[string]Group, metricKey string) map[string][]float64 {
	out := make(map[string][]float64, len(groups))
	for name, group := range groups {
		if len(group) == 0 {
			continue
		}
		values := make([]float64, len(group))
		for i, r := range group {
			values[i] = r.Value(metricKey)
		}
		out[name] = values
	}
	return out
}
