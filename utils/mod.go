package utils

import "golang.org/x/exp/constraints"

// ArgMax returns the index of the first maximum, or -1 for an empty slice
func ArgMax[T constraints.Ordered](values []T) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i, v := range values[1:] {
		if v > values[best] {
			best = i + 1
		}
	}
	return best
}

// Normalize scales values in place so that they sum to 1 and returns the original sum.
// A zero sum leaves the values untouched.
func Normalize[F constraints.Float](values []F) F {
	var sum F
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return 0
	}
	for i := range values {
		values[i] /= sum
	}
	return sum
}
