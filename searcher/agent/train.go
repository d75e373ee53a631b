package agent

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/meta"
	"selfplay/searcher"
)

type trainingAgent struct {
	explores     int
	temperature  float64
	sampleAction bool
	noisy        bool
	alpha        float64
	fraction     float32
	rng          *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training.
func NewTrainingAgent(cfg meta.Config, rng *rand.Rand) Agent {
	if cfg.NumExplores < 1 {
		panic("training agent needs at least one simulation per move")
	}
	if cfg.Temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent{
		explores:     cfg.NumExplores,
		temperature:  cfg.Temperature,
		sampleAction: cfg.SampleAction,
		noisy:        cfg.NoisyExplore,
		alpha:        cfg.Alpha,
		fraction:     float32(cfg.NoiseFraction),
		rng:          rng,
	}
}

func (a trainingAgent) FindMove(tree *searcher.Tree) (Move, error) {
	explores := a.explores
	var expansion metrics.SearchMetric
	if a.noisy {
		// Noise only reaches expanded children, so a fresh root spends one simulation on expansion
		if !tree.RootNode().IsExpanded() {
			var err error
			expansion, err = tree.Search(1)
			if err != nil {
				return Move{}, err
			}
			explores--
		}
		tree.AddNoise(DirichletNoise(a.alpha, tree.NumActions(), a.rng), a.fraction)
	}

	metric, err := tree.Search(explores)
	if err != nil {
		return Move{}, err
	}
	metric.Explores += expansion.Explores
	metric.Episodes += expansion.Episodes
	metric.TerminalHits += expansion.TerminalHits
	metric.Duration += expansion.Duration

	policy := AdjustTemperature(tree.Visits(), a.temperature)
	move := Move{Policy: policy, Metric: metric}
	if a.sampleAction {
		move.Action = sample(policy, a.rng)
	} else {
		move.Action = tree.BestAction()
	}
	return move, nil
}

// AdjustTemperature turns visit counts into a distribution proportional to visits^(1/T).
// Unvisited actions get 0.
func AdjustTemperature(visits []int, temperature float64) []float32 {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	most := 0
	for _, v := range visits {
		most = max(most, v)
	}
	if most == 0 {
		panic("cannot compute a policy without visits")
	}

	// Scale by the largest count first so that small temperatures cannot overflow
	exponent := 1.0 / temperature
	adjusted := make([]float64, len(visits))
	for i, v := range visits {
		if v > 0 {
			adjusted[i] = math.Pow(float64(v)/float64(most), exponent)
		}
	}
	floats.Scale(1/floats.Sum(adjusted), adjusted)

	policy := make([]float32, len(visits))
	for i, p := range adjusted {
		policy[i] = float32(p)
	}
	return policy
}

// DirichletNoise draws n values from a symmetric Dirichlet(alpha) distribution
func DirichletNoise(alpha float64, n int, rng *rand.Rand) []float32 {
	if alpha <= 0 {
		panic("dirichlet alpha must be positive")
	}
	concentration := make([]float64, n)
	for i := range concentration {
		concentration[i] = alpha
	}
	sample := distmv.NewDirichlet(concentration, rng).Rand(nil)

	noise := make([]float32, n)
	for i, x := range sample {
		noise[i] = float32(x)
	}
	return noise
}

func sample(policy []float32, rng *rand.Rand) game.Action {
	weights := make([]float64, len(policy))
	for i, p := range policy {
		weights[i] = float64(p)
	}
	idx, ok := sampleuv.NewWeighted(weights, rng).Take()
	if !ok {
		panic("cannot sample from an empty policy")
	}
	return game.Action(idx)
}
