package searcher

import "selfplay/game"

// NodeID addresses a node in its Tree's arena. IDs are invalidated by re-rooting.
type NodeID int32

type Edge struct {
	Action game.Action
	Child  NodeID
}

// Node holds search statistics. ValueSum accumulates values from the perspective
// of the player who made the move leading into the node.
type Node struct {
	Children []Edge // Sparse, in creation order
	Visits   int
	ValueSum float32
	Prior    float32
	Terminal bool
}

// Q is the mean backed-up value, 0 for an unvisited node
func (n Node) Q() float32 {
	if n.Visits == 0 {
		return 0
	}
	return n.ValueSum / float32(n.Visits)
}

func (n Node) IsExpanded() bool {
	return len(n.Children) > 0
}
