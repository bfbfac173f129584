package analytics

import "sort"

// KeyCount is a group key with its row count
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyValue is a group key with an aggregated value and the group size
type KeyValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// CountBy tallies rows per key
func CountBy(keys []string) map[string]int {
	counts := make(map[string]int)
	for _, k := range keys {
		if k == "" {
			continue
		}
		counts[k]++
	}
	return counts
}

// TopN returns the n most frequent keys, largest first. Ties break on key so
// output is deterministic.
func TopN(counts map[string]int, n int) []KeyCount {
	return rankCounts(counts, n, true)
}

// BottomN returns the n least frequent keys, smallest first
func BottomN(counts map[string]int, n int) []KeyCount {
	return rankCounts(counts, n, false)
}

func rankCounts(counts map[string]int, n int, descending bool) []KeyCount {
	ranked := make([]KeyCount, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, KeyCount{Key: k, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			if descending {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Count < ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// GroupValues collects numeric values per key
func GroupValues(keys []string, values []float64) map[string][]float64 {
	groups := make(map[string][]float64)
	for i, k := range keys {
		if k == "" || i >= len(values) {
			continue
		}
		groups[k] = append(groups[k], values[i])
	}
	return groups
}

// AggregateGroups applies agg to each group with at least minCount values
// and ranks the result, highest first
func AggregateGroups(groups map[string][]float64, minCount int, agg func([]float64) float64) []KeyValue {
	ranked := make([]KeyValue, 0, len(groups))
	for k, vals := range groups {
		if len(vals) < minCount {
			continue
		}
		ranked = append(ranked, KeyValue{Key: k, Value: agg(vals), Count: len(vals)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Key < ranked[j].Key
	})
	return ranked
}
