package searcher

import "github.com/chewxy/math32"

type puct struct {
	numerator float32
}

// newPUCT precomputes c_puct * sqrt(N) for a parent visited N times
func newPUCT(cPuct float32, N int) puct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return puct{numerator: cPuct * math32.Sqrt(float32(N))}
}

// PUCT = Q + c_puct * P * sqrt(N) / (1 + n)
func (u puct) evaluate(q, p float32, n int) float32 {
	return q + u.numerator*p/float32(1+n)
}

// selectChild returns the edge with the highest score, the first one on ties
func (u puct) selectChild(a *arena, children []Edge) Edge {
	if len(children) == 0 {
		panic("node has no children")
	}
	best := children[0]
	child := a.get(best.Child)
	bestScore := u.evaluate(child.Q(), child.Prior, child.Visits)
	for _, edge := range children[1:] {
		child := a.get(edge.Child)
		score := u.evaluate(child.Q(), child.Prior, child.Visits)
		if score > bestScore {
			best, bestScore = edge, score
		}
	}
	return best
}
