package searcher

import (
	"fmt"

	"selfplay/experiments/metrics"
	"selfplay/game"
)

type Option func(t *Tree)

func WithCapacity(capacity int) Option {
	return func(t *Tree) {
		if capacity > 0 {
			t.capacity = capacity
		}
	}
}

func WithCPuct(cPuct float32) Option {
	return func(t *Tree) {
		if cPuct > 0 {
			t.cPuct = cPuct
		}
	}
}

func WithMetrics() Option {
	return func(t *Tree) {
		t.metrics = metrics.NewCollector()
	}
}

// Tree is a search tree over one game, rooted at the Env's current position
type Tree struct {
	capacity int
	cPuct    float32
	arena    arena
	root     NodeID
	env      game.Env
	eval     game.Evaluator
	metrics  metrics.Collector
	path     []NodeID
}

// NewTree starts a search from a copy of env, so the caller's Env is left untouched
func NewTree(env game.Env, eval game.Evaluator, options ...Option) *Tree {
	t := &Tree{ // Default values
		capacity: DefaultCapacity,
		cPuct:    DefaultCPuct,
		env:      env.Clone(),
		eval:     eval,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	t.arena = newArena(t.capacity)
	t.root = t.arena.alloc(1)
	t.metrics.SetTreeReset(true)
	return t
}

// RootNode returns a copy of the root's statistics. Its Children must not be modified.
func (t *Tree) RootNode() Node {
	return *t.arena.get(t.root)
}

func (t *Tree) Node(id NodeID) Node {
	return *t.arena.get(id)
}

func (t *Tree) RootState() game.State {
	return t.env.State()
}

func (t *Tree) RootPlayer() game.Player {
	return t.env.Player()
}

func (t *Tree) NumActions() int {
	return t.env.NumActions()
}

func (t *Tree) CPuct() float32 {
	return t.cPuct
}

// Size is the number of live nodes
func (t *Tree) Size() int {
	return t.arena.size()
}

func (t *Tree) IsTerminal() bool {
	return t.arena.get(t.root).Terminal
}

// RootValue estimates the root position for the player to move
func (t *Tree) RootValue() float32 {
	return -t.arena.get(t.root).Q()
}

// Visits returns the root children's visit counts indexed by action
func (t *Tree) Visits() []int {
	visits := make([]int, t.env.NumActions())
	for _, edge := range t.arena.get(t.root).Children {
		visits[edge.Action.Index()] = t.arena.get(edge.Child).Visits
	}
	return visits
}

func (t *Tree) child(parent NodeID, action game.Action) (NodeID, bool) {
	for _, edge := range t.arena.get(parent).Children {
		if edge.Action == action {
			return edge.Child, true
		}
	}
	return 0, false
}

// StepAction plays action at the root and keeps only the subtree below it.
// An action that was never explored starts a fresh tree.
func (t *Tree) StepAction(action game.Action) {
	child, ok := t.child(t.root, action)
	over := t.env.Step(action)

	if ok {
		t.root = t.arena.compact(child)
		t.metrics.SetTreeReset(false)
	} else {
		t.arena.reset()
		t.root = t.arena.alloc(1)
		t.metrics.SetTreeReset(true)
	}
	if over {
		t.arena.get(t.root).Terminal = true
	}
	t.metrics.SetTreeSize(t.arena.size())
}

// AddNoise mixes noise into the priors of the root's expanded children:
// P(a) = (1 - fraction) * P(a) + fraction * noise[a]. An unexpanded root is left as is.
func (t *Tree) AddNoise(noise []float32, fraction float32) {
	if len(noise) != t.env.NumActions() {
		panic(fmt.Sprintf("noise has %d entries for %d actions", len(noise), t.env.NumActions()))
	}
	for _, edge := range t.arena.get(t.root).Children {
		child := t.arena.get(edge.Child)
		child.Prior = (1-fraction)*child.Prior + fraction*noise[edge.Action.Index()]
	}
}
