package connect4

import (
	"fmt"
	"math/rand/v2"

	"selfplay/game"
	"selfplay/utils"
)

func asState(state game.State) (State, error) {
	s, ok := state.(State)
	if !ok {
		return State{}, fmt.Errorf("unexpected state type %T", state)
	}
	return s, nil
}

// LegalPrior spreads probability evenly over the open columns
func LegalPrior(s State) []float32 {
	prior := make([]float32, NumActions)
	for c, ok := range s.Legal() {
		if ok {
			prior[c] = 1
		}
	}
	utils.Normalize(prior)
	return prior
}

// UniformEvaluator knows nothing about the position: uniform prior over legal moves, value 0
type UniformEvaluator struct{}

func (UniformEvaluator) Evaluate(state game.State) ([]float32, float32, error) {
	s, err := asState(state)
	if err != nil {
		return nil, 0, err
	}
	return LegalPrior(s), 0, nil
}

// RolloutEvaluator estimates a position by playing random games to the end.
// The value is the mean outcome for the player to move, playouts that hit the
// cutoff without finishing count as draws.
type RolloutEvaluator struct {
	playouts int
	cutoff   int
	rng      *rand.Rand
}

func NewRolloutEvaluator(playouts, cutoff int, rng *rand.Rand) *RolloutEvaluator {
	if playouts <= 0 {
		panic("playouts must be positive")
	}
	return &RolloutEvaluator{playouts: playouts, cutoff: cutoff, rng: rng}
}

func (r *RolloutEvaluator) Evaluate(state game.State) ([]float32, float32, error) {
	s, err := asState(state)
	if err != nil {
		return nil, 0, err
	}

	root := FromState(s)
	var total float32
	for range r.playouts {
		total += r.playout(root.Clone().(*Env), s.ToMove)
	}
	return LegalPrior(s), total / float32(r.playouts), nil
}

func (r *RolloutEvaluator) playout(env *Env, perspective game.Player) float32 {
	open := make([]game.Action, 0, Cols)
	for plies := 0; !env.over; plies++ {
		if r.cutoff > 0 && plies >= r.cutoff {
			return Draw
		}
		open = open[:0]
		for c := 0; c < Cols; c++ {
			if env.heights[c] < Rows {
				open = append(open, game.Action(c))
			}
		}
		env.Step(open[r.rng.IntN(len(open))])
	}
	return env.Reward(perspective)
}
