package searcher

// arena stores every node of a Tree in one slice. Re-rooting copies the kept
// subtree into a second slice and swaps the two, so slots are recycled.
type arena struct {
	nodes []Node
	spare []Node
}

func newArena(capacity int) arena {
	return arena{nodes: make([]Node, 0, capacity)}
}

func (a *arena) alloc(prior float32) NodeID {
	a.nodes = append(a.nodes, Node{Prior: prior})
	return NodeID(len(a.nodes) - 1)
}

// get is invalidated by the next alloc
func (a *arena) get(id NodeID) *Node {
	return &a.nodes[id]
}

func (a *arena) size() int {
	return len(a.nodes)
}

func (a *arena) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
}

// compact keeps only the subtree under root, which becomes node 0
func (a *arena) compact(root NodeID) NodeID {
	kept := append(a.spare[:0], a.nodes[root])
	for i := 0; i < len(kept); i++ {
		// Breadth first: children of kept[i] are appended to the end and renumbered.
		// Edges of discarded nodes are never read again, so rewrite them in place.
		children := kept[i].Children
		for j := range children {
			old := children[j].Child
			children[j].Child = NodeID(len(kept))
			kept = append(kept, a.nodes[old])
		}
	}

	clear(a.nodes)
	a.spare = a.nodes[:0]
	a.nodes = kept
	return 0
}
