// Package classify partitions benchmark identities by execution model.
//
// Classification is a naming-convention contract: identities containing the
// configured marker token (case-sensitive substring) are multi-threaded,
// everything else is single-threaded. Recorded thread counts are not
// consulted.
package classify

import (
	"sort"
	"strings"

	"mrbench/internal/stats"
)

// Classified splits summaries into exactly two disjoint sets covering every
// benchmark identity once.
type Classified struct {
	SingleThreaded map[string]map[string]stats.Summary
	MultiThreaded  map[string]map[string]stats.Summary
}

// IsMultiThreaded reports whether the identity carries the marker token.
func IsMultiThreaded(identity, marker string) bool {
	return strings.Contains(identity, marker)
}

// Partition assigns every summary to one category.
func Partition(summaries map[string]map[string]stats.Summary, marker string) Classified {
	c := Classified{
		SingleThreaded: make(map[string]map[string]stats.Summary),
		MultiThreaded:  make(map[string]map[string]stats.Summary),
	}
	for identity, s := range summaries {
		if IsMultiThreaded(identity, marker) {
			c.MultiThreaded[identity] = s
		} else {
			c.SingleThreaded[identity] = s
		}
	}
	return c
}

// Pair matches one multi-threaded identity with its single-threaded
// counterpart.
type Pair struct {
	Single string
	Multi  string
}

// CounterpartName derives the single-threaded identity a multi-threaded one
// is compared against, by removing the first marker occurrence. The rule is
// deterministic; benchmarks must be named accordingly.
func CounterpartName(multi, marker string) string {
	return strings.Replace(multi, marker, "", 1)
}

// Pairs returns the matched identity pairs present in both categories,
// sorted by single-threaded name, plus the multi-threaded identities whose
// counterpart is missing. Callers should surface the unmatched names rather
// than silently skipping them.
func Pairs(c Classified, marker string) (pairs []Pair, unmatched []string) {
	for multi := range c.MultiThreaded {
		single := CounterpartName(multi, marker)
		if _, ok := c.SingleThreaded[single]; ok {
			pairs = append(pairs, Pair{Single: single, Multi: multi})
		} else {
			unmatched = append(unmatched, multi)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Single < pairs[j].Single })
	sort.Strings(unmatched)
	return pairs, unmatched
}
