package agent

import (
	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/searcher"
)

// Move is an agent's decision for one ply
type Move struct {
	Action game.Action
	Policy []float32 // Visit count distribution over the whole action space
	Metric metrics.SearchMetric
}

type Agent interface {
	// FindMove searches from the tree's root and picks the action to play.
	// The tree is not stepped, the caller re-roots it once the move is played.
	FindMove(tree *searcher.Tree) (Move, error)
}
