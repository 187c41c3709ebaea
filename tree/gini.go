package tree

import (
	"cmp"
	"slices"
)

/*
Gini returns the Gini impurity of the given labels: 1 minus the sum of the
squared proportions of each distinct label. It is 0 for a pure (or empty or
single-sample) slice and approaches 1 as labels spread evenly over many classes.
Proportions are accumulated in ascending label order, so the result does not
depend on the order of the slice.
*/
func Gini[L cmp.Ordered](labels []L) float64 {
	classes := distinct(labels)
	counts := make([]int, len(classes))
	for _, l := range labels {
		i, _ := slices.BinarySearch(classes, l)
		counts[i]++
	}
	return giniFromCounts(counts, len(labels))
}

func giniFromCounts(counts []int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	result := 1.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * p
	}
	return result
}

// distinct returns the distinct values in labels in ascending order.
func distinct[L cmp.Ordered](labels []L) []L {
	result := slices.Clone(labels)
	slices.Sort(result)
	return slices.Compact(result)
}
