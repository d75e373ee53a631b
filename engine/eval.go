package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/meta"
	"selfplay/searcher"
	"selfplay/searcher/agent"
)

// Eval plays one game between two evaluators, a moving first, and returns the first player's reward
func Eval(cfg meta.Config, factory game.Factory, a, b game.Evaluator, opts ...Option) (float32, error) {
	gameMetric, err := EvalGame(cfg, factory, a, b, opts...)
	return gameMetric.Reward, err
}

// EvalGame is Eval with the game's metrics. Each evaluator gets its own tree; only the tree of the
// player to move searches, but both follow every move.
func EvalGame(cfg meta.Config, factory game.Factory, a, b game.Evaluator, opts ...Option) (metrics.GameMetric, error) {
	env := factory()
	treeOptions := newOptions(opts).treeOptions(cfg)
	reference := env.Player()
	treeA := searcher.NewTree(env, a, treeOptions...)
	treeB := searcher.NewTree(env, b, treeOptions...)
	player := agent.NewEvaluationAgent(cfg.NumExplores)

	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: int(reference),
		StartTime:      time.Now(),
	}

	for over := false; !over; {
		if exceeded(cfg, gameMetric.TotalMoves) {
			return gameMetric, fmt.Errorf("%w: stopped game %s after %d plies", ErrMaxPlies, gameMetric.ID, gameMetric.TotalMoves)
		}

		mover := env.Player()
		tree := treeB
		if mover == reference {
			tree = treeA
		}
		move, err := player.FindMove(tree)
		if err != nil {
			return gameMetric, fmt.Errorf("failed to find move at ply %d: %w", gameMetric.TotalMoves+1, err)
		}

		treeA.StepAction(move.Action)
		treeB.StepAction(move.Action)
		over = env.Step(move.Action)
		gameMetric.TotalMoves++
		gameMetric.Moves = append(gameMetric.Moves, metrics.MoveMetric{
			Step:         gameMetric.TotalMoves,
			Player:       int(mover),
			Action:       move.Action.Index(),
			SearchMetric: move.Metric,
		})
	}

	gameMetric.Reward = env.Reward(reference)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return gameMetric, nil
}

type MatchResult struct {
	AWins int
	BWins int
	Draws int
}

func (r MatchResult) Games() int {
	return r.AWins + r.BWins + r.Draws
}

// Score is a's share of the points, a draw counting half
func (r MatchResult) Score() float64 {
	if r.Games() == 0 {
		return 0
	}
	return (float64(r.AWins) + 0.5*float64(r.Draws)) / float64(r.Games())
}

// Match plays a number of evaluation games, alternating which evaluator moves first
func Match(cfg meta.Config, factory game.Factory, a, b game.Evaluator, games int, opts ...Option) (MatchResult, []metrics.GameMetric, error) {
	result := MatchResult{}
	gameMetrics := make([]metrics.GameMetric, 0, games)
	for i := 0; i < games; i++ {
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}

		gameMetric, err := EvalGame(cfg, factory, first, second, opts...)
		if err != nil {
			return result, gameMetrics, err
		}
		gameMetrics = append(gameMetrics, gameMetric)

		rewardA := gameMetric.Reward
		if i%2 == 1 {
			rewardA = -rewardA
		}
		switch {
		case rewardA > 0:
			result.AWins++
		case rewardA < 0:
			result.BWins++
		default:
			result.Draws++
		}
		log.Info().Msgf("completed game %d of %d with reward %v for the first evaluator", i+1, games, rewardA)
	}
	return result, gameMetrics, nil
}
