package engine

import (
	"slices"

	"selfplay/game"
)

type evaluation struct {
	prior []float32
	value float32
}

// cachedEvaluator memoizes evaluations by state hash for the duration of one batch of games
type cachedEvaluator struct {
	eval    game.Evaluator
	entries map[game.StateHash]evaluation
	hits    int
	misses  int
}

func newCachedEvaluator(eval game.Evaluator) *cachedEvaluator {
	return &cachedEvaluator{eval: eval, entries: map[game.StateHash]evaluation{}}
}

func (c *cachedEvaluator) Evaluate(state game.State) ([]float32, float32, error) {
	hash := state.Hash()
	if e, ok := c.entries[hash]; ok {
		c.hits++
		return slices.Clone(e.prior), e.value, nil
	}

	prior, value, err := c.eval.Evaluate(state)
	if err != nil {
		return nil, 0, err
	}
	c.misses++
	c.entries[hash] = evaluation{prior: slices.Clone(prior), value: value}
	return prior, value, nil
}

func (c *cachedEvaluator) hitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}
