package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/meta"
	"selfplay/replay"
	"selfplay/searcher"
	"selfplay/searcher/agent"
)

// SelfPlay plays the current evaluator against itself and records training examples
type SelfPlay struct {
	cfg         meta.Config
	factory     game.Factory
	agent       agent.Agent
	treeOptions []searcher.Option
}

func NewSelfPlay(cfg meta.Config, factory game.Factory, rng *rand.Rand, opts ...Option) *SelfPlay {
	return &SelfPlay{
		cfg:         cfg,
		factory:     factory,
		agent:       agent.NewTrainingAgent(cfg, rng),
		treeOptions: newOptions(opts).treeOptions(cfg),
	}
}

// RunGame plays one game with a single reused tree, adding one entry per ply to buf.
// Once the game is over the entries' values are filled in with the outcome.
func (s *SelfPlay) RunGame(eval game.Evaluator, buf *replay.Buffer) (metrics.GameMetric, error) {
	env := s.factory()
	tree := searcher.NewTree(env, eval, s.treeOptions...)
	starter := env.Player()

	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: int(starter),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("starting self-play game %s", gameMetric.ID)

	added := 0
	var mover game.Player
	for over := false; !over; {
		if exceeded(s.cfg, added) {
			return gameMetric, fmt.Errorf("%w: stopped game %s after %d plies", ErrMaxPlies, gameMetric.ID, added)
		}

		move, err := s.agent.FindMove(tree)
		if err != nil {
			return gameMetric, fmt.Errorf("failed to find move at ply %d: %w", added+1, err)
		}
		buf.Add(tree.RootState(), move.Policy, 0)
		added++

		mover = env.Player()
		tree.StepAction(move.Action)
		over = env.Step(move.Action)

		gameMetric.Moves = append(gameMetric.Moves, metrics.MoveMetric{
			Step:         added,
			Player:       int(mover),
			Action:       move.Action.Index(),
			SearchMetric: move.Metric,
		})
	}

	backfill(buf, added, env.Reward(mover))

	gameMetric.Reward = env.Reward(starter)
	gameMetric.TotalMoves = added
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	log.Debug().Msgf("completed self-play game %s after %d plies with reward %v for player %d", gameMetric.ID, added, gameMetric.Reward, starter)
	return gameMetric, nil
}

// backfill sets the values of the game's last added entries, newest first: the final mover's
// reward, then alternating sign. Entries already evicted are skipped.
func backfill(buf *replay.Buffer, added int, reward float32) {
	n := min(added, buf.Len())
	for i := 0; i < n; i++ {
		buf.SetValue(buf.Len()-1-i, reward)
		reward = -reward
	}
}

// GatherExperience plays games until at least cfg.Steps entries were added to buf,
// sharing one evaluation cache across them
func (s *SelfPlay) GatherExperience(eval game.Evaluator, buf *replay.Buffer) ([]metrics.GameMetric, error) {
	cache := newCachedEvaluator(eval)
	buf.MakeRoom(s.cfg.Steps)

	games := []metrics.GameMetric{}
	added := 0
	for added < s.cfg.Steps {
		gameMetric, err := s.RunGame(cache, buf)
		if err != nil {
			return games, err
		}
		games = append(games, gameMetric)
		added += gameMetric.TotalMoves
	}

	log.Info().Msgf("gathered %d entries from %d games, cache hit rate %.2f (%d hits, %d misses)",
		added, len(games), cache.hitRate(), cache.hits, cache.misses)
	return games, nil
}
