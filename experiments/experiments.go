// Package experiments pits Connect Four evaluators against each other and records the games.
package experiments

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"selfplay/engine"
	"selfplay/experiments/metrics"
	"selfplay/game"
	"selfplay/game/connect4"
	"selfplay/meta"
)

const NumGames = 10 // Per match up

var Baseline = metrics.AgentConfig{ID: 0} // Uniform prior, no value estimate

var playoutConfigs = []metrics.AgentConfig{
	{ID: 1, Playouts: 1},
	{ID: 2, Playouts: 4},
	{ID: 3, Playouts: 16},
	{ID: 4, Playouts: 16, Cutoff: 10},
}

// RunPlayoutExperiment pairs the baseline against rollout evaluators of increasing strength
func RunPlayoutExperiment(cfg meta.Config, root string) ([]engine.MatchResult, error) {
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range playoutConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{Baseline, config})
	}
	return RunMatchups(cfg, root, "playouts", append(playoutConfigs, Baseline), matchUps, NumGames)
}

// RunMatchups plays games per matchup between Connect Four evaluators and writes every
// game and move under root/name
func RunMatchups(cfg meta.Config, root, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int) ([]engine.MatchResult, error) {
	count := 0
	results := []engine.MatchResult{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		result, gameMetrics, err := engine.Match(cfg, connect4.NewEnv, newEvaluator(config1, cfg.Seed), newEvaluator(config2, cfg.Seed), games, engine.WithMetrics())
		if err != nil {
			return results, fmt.Errorf("failed to run matchup %d: %w", mi+1, err)
		}
		results = append(results, result)

		gr, mr := metrics.Records(count+1, config1.ID, config2.ID, gameMetrics)
		gameRecords = append(gameRecords, gr...)
		moveRecords = append(moveRecords, mr...)
		count += len(gameMetrics)

		log.Info().Msgf("completed matchup %d of %d: %+v, score %.2f", mi+1, len(matchUps), result, result.Score())
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return results, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteSetup(cfg)
	if err != nil {
		return results, err
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return results, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return results, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return results, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return results, nil
}

func newEvaluator(config metrics.AgentConfig, seed uint64) game.Evaluator {
	if config.Playouts == 0 {
		return connect4.UniformEvaluator{}
	}
	rng := rand.New(rand.NewPCG(seed, uint64(config.ID)))
	return connect4.NewRolloutEvaluator(config.Playouts, config.Cutoff, rng)
}
