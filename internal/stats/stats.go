// Package stats holds the small single-pass helpers the pipeline and the
// analytics facade share: sums, means, medians, order-preserving grouping
// and stable top-N selection.
package stats

import "sort"

func Sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}

// Mean returns 0 for an empty slice.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return Sum(vs) / float64(len(vs))
}

// Median averages the two middle values of an even-length slice.
func Median(vs []float64) float64 {
	n := len(vs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Pluck maps rows to one numeric column.
func Pluck[T any](rows []T, col func(T) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = col(r)
	}
	return out
}

// Group is one key and its rows, in input order.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy buckets rows by key, keeping groups in first-seen order.
func GroupBy[K comparable, T any](rows []T, key func(T) K) []Group[K, T] {
	idx := make(map[K]int)
	var groups []Group[K, T]
	for _, r := range rows {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// TopN returns up to n rows with the largest key, descending.  Ties keep
// their input order.  The input slice is not modified.
func TopN[T any](rows []T, n int, key func(T) float64) []T {
	if n <= 0 || len(rows) == 0 {
		return []T{}
	}
	sorted := append([]T(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) > key(sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ArgMax returns the index of the first row holding the largest key, or
// -1 for an empty slice.
func ArgMax[T any](rows []T, key func(T) float64) int {
	best := -1
	for i, r := range rows {
		if best < 0 || key(r) > key(rows[best]) {
			best = i
		}
	}
	return best
}
