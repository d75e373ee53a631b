package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/utils"
)

// Search runs n simulations and reports what they did
func (t *Tree) Search(n int) (metrics.SearchMetric, error) {
	t.metrics.Start(n, t.cPuct)
	err := t.ExploreN(n)
	metric := t.metrics.Complete()
	return metric, err
}

// ExploreN runs n simulations from the root, one after the other
func (t *Tree) ExploreN(n int) error {
	if n < 0 {
		panic("number of simulations cannot be negative")
	}
	if n == 0 {
		return nil
	}
	if t.IsTerminal() {
		return ErrTerminalRoot
	}

	for i := 0; i < n; i++ {
		err := t.simulate()
		if err != nil {
			return err
		}
		t.metrics.AddEpisode()
	}
	t.metrics.SetTreeSize(t.arena.size())
	log.Debug().Msgf("explored %d simulations, tree has %d nodes", n, t.arena.size())
	return nil
}

func (t *Tree) simulate() error {
	env := t.env.Clone()
	leaf, mover := t.selectLeaf(env)

	var value float32
	node := t.arena.get(leaf)
	if node.Terminal {
		t.metrics.AddTerminalHit()
		value = env.Reward(mover)
	} else {
		v, err := t.expand(leaf, env)
		if err != nil {
			return err
		}
		// The evaluator scores the player to move, the node stores the mover's view
		value = -v
	}

	t.backup(value)
	return nil
}

// selectLeaf descends by PUCT until an unexpanded or terminal node, stepping env along the way.
// It returns the leaf and the player who moved into it.
func (t *Tree) selectLeaf(env game.Env) (NodeID, game.Player) {
	t.path = append(t.path[:0], t.root)
	id := t.root
	var mover game.Player
	for {
		node := t.arena.get(id)
		if node.Terminal || !node.IsExpanded() {
			return id, mover
		}

		edge := newPUCT(t.cPuct, node.Visits).selectChild(&t.arena, node.Children)
		mover = env.Player()
		over := env.Step(edge.Action)
		id = edge.Child
		t.path = append(t.path, id)
		if over {
			t.arena.get(id).Terminal = true
		}
	}
}

// expand creates one child per action with positive prior and returns the
// evaluator's value for the player to move at the leaf
func (t *Tree) expand(leaf NodeID, env game.Env) (float32, error) {
	prior, value, err := t.eval.Evaluate(env.State())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate state: %w", err)
	}
	if len(prior) != env.NumActions() {
		return 0, fmt.Errorf("%w: got %d, want %d", game.ErrPriorSize, len(prior), env.NumActions())
	}

	children := make([]Edge, 0, len(prior))
	for a, p := range prior {
		if p > 0 {
			children = append(children, Edge{Action: game.Action(a), Child: t.arena.alloc(p)})
		}
	}
	if len(children) == 0 {
		return 0, ErrNoPriors
	}
	t.arena.get(leaf).Children = children
	return value, nil
}

// backup adds value to every node on the last selected path, flipping its sign at each ply
func (t *Tree) backup(value float32) {
	for i := len(t.path) - 1; i >= 0; i-- {
		node := t.arena.get(t.path[i])
		node.Visits++
		node.ValueSum += value
		value = -value
	}
}

// BestAction returns the most visited root action, the first one on ties
func (t *Tree) BestAction() game.Action {
	children := t.arena.get(t.root).Children
	if len(children) == 0 {
		panic("node has no children")
	}
	visits := make([]int, len(children))
	for i, edge := range children {
		visits[i] = t.arena.get(edge.Child).Visits
	}
	return children[utils.ArgMax(visits)].Action
}
