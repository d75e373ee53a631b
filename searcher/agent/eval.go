package agent

import (
	"selfplay/searcher"
)

type evaluationAgent struct {
	explores int
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(explores int) Agent {
	if explores < 1 {
		panic("evaluation agent needs at least one simulation per move")
	}
	return evaluationAgent{explores: explores}
}

func (a evaluationAgent) FindMove(tree *searcher.Tree) (Move, error) {
	metric, err := tree.Search(a.explores)
	if err != nil {
		return Move{}, err
	}
	return Move{
		Action: tree.BestAction(),
		Policy: AdjustTemperature(tree.Visits(), 1.0),
		Metric: metric,
	}, nil
}
