package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgMax(t *testing.T) {
	t.Run("returning the first maximum on ties", func(t *testing.T) {
		require.Equal(t, 1, ArgMax([]int{1, 5, 3, 5}), "Should pick the first of the tied maxima")
	})

	t.Run("empty slice", func(t *testing.T) {
		require.Equal(t, -1, ArgMax([]float32{}), "Should return -1 without values")
	})
}

func TestNormalize(t *testing.T) {
	t.Run("scaling to a unit sum", func(t *testing.T) {
		values := []float64{1, 3}
		sum := Normalize(values)

		require.Equal(t, 4.0, sum, "Should return the original sum")
		require.InDeltaSlice(t, []float64{0.25, 0.75}, values, 1e-9, "Should divide every value by the sum")
	})

	t.Run("leaving zero vectors untouched", func(t *testing.T) {
		values := []float32{0, 0}
		require.Equal(t, float32(0), Normalize(values), "Should report a zero sum")
		require.Equal(t, []float32{0, 0}, values, "Should not divide by zero")
	})
}
