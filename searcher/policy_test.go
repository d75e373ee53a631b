package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPUCT(t *testing.T) {
	t.Run("panics with negative parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newPUCT(1.0, -1)
		}, "Should panic when N is negative")
	})
}

func TestPUCTEvaluate(t *testing.T) {
	t.Run("computing PUCT value", func(t *testing.T) {
		policy := newPUCT(2.0, 16)
		got := policy.evaluate(0.5, 0.25, 3)

		require.InDelta(t, 1.0, got, 0.0001,
			"Should compute q + c*p*sqrt(N)/(1+n)")
	})

	t.Run("no exploration without parent visits", func(t *testing.T) {
		policy := newPUCT(2.0, 0)

		require.Equal(t, float32(0.3), policy.evaluate(0.3, 0.9, 0),
			"Should reduce to Q when N is 0")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newPUCT(1.0, 100)

		score1 := policy.evaluate(0, 0.5, 10)
		score2 := policy.evaluate(0, 0.5, 20)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})

	t.Run("exploration term increases with prior", func(t *testing.T) {
		policy := newPUCT(1.0, 100)

		require.Greater(t, policy.evaluate(0, 0.6, 5), policy.evaluate(0, 0.3, 5),
			"Higher prior should increase exploration term")
	})
}

func TestSelectChild(t *testing.T) {
	t.Run("first child wins ties", func(t *testing.T) {
		a := newArena(4)
		children := []Edge{
			{Action: 3, Child: a.alloc(0.5)},
			{Action: 5, Child: a.alloc(0.5)},
		}

		edge := newPUCT(1.0, 1).selectChild(&a, children)
		require.Equal(t, 3, edge.Action.Index(), "Should pick the first maximal child")
	})

	t.Run("value outweighs a small prior gap", func(t *testing.T) {
		a := newArena(4)
		children := []Edge{
			{Action: 0, Child: a.alloc(0.6)},
			{Action: 1, Child: a.alloc(0.4)},
		}
		a.get(children[0].Child).Visits = 1
		a.get(children[0].Child).ValueSum = -1
		a.get(children[1].Child).Visits = 1
		a.get(children[1].Child).ValueSum = 1

		edge := newPUCT(1.0, 2).selectChild(&a, children)
		require.Equal(t, 1, edge.Action.Index(), "Should pick the child with higher Q")
	})

	t.Run("panics without children", func(t *testing.T) {
		a := newArena(1)
		require.Panics(t, func() {
			newPUCT(1.0, 1).selectChild(&a, nil)
		}, "Should panic on a leaf")
	})
}
