package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"selfplay/engine"
	"selfplay/experiments"
	"selfplay/experiments/metrics"
	"selfplay/game/connect4"
	"selfplay/meta"
	"selfplay/replay"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults when empty")
	iterations := flag.Int("iterations", 3, "Number of self-play batches to gather")
	playouts := flag.Int("playouts", 8, "Random playouts per position for the rollout evaluator")
	evalGames := flag.Int("eval-games", 10, "Evaluation games against the uniform evaluator")
	batchSize := flag.Int("batch-size", 64, "Minibatch size when sampling the replay buffer")
	out := flag.String("out", "runs", "Directory for setup and metric files")
	experiment := flag.Bool("experiment", false, "Run the rollout playout experiment instead of self-play")
	verbose := flag.Bool("verbose", false, "Log every search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := meta.Default()
	var err error
	if *configPath != "" {
		cfg, err = meta.Load(*configPath)
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if *experiment {
		results, err := experiments.RunPlayoutExperiment(cfg, *out)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		for i, result := range results {
			log.Info().Msgf("matchup %d: %+v, score %.2f", i+1, result, result.Score())
		}
		return
	}

	err = run(cfg, *iterations, *playouts, *evalGames, *batchSize, *out)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
}

func run(cfg meta.Config, iterations, playouts, evalGames, batchSize int, out string) error {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	eval := connect4.NewRolloutEvaluator(playouts, 0, rand.New(rand.NewPCG(cfg.Seed, 1)))
	buf := replay.NewBuffer(cfg.Capacity)
	selfPlay := engine.NewSelfPlay(cfg, connect4.NewEnv, rng, engine.WithMetrics())

	games := []metrics.GameMetric{}
	for i := 0; i < iterations; i++ {
		log.Info().Msgf("starting self-play batch %d of %d...", i+1, iterations)
		batch, err := selfPlay.GatherExperience(eval, buf)
		games = append(games, batch...)
		if err != nil {
			return fmt.Errorf("failed to gather experience: %w", err)
		}

		batches, mean := 0, float32(0)
		sampler := replay.NewSampler(buf, batchSize, false, rng)
		for b, ok := sampler.Next(); ok; b, ok = sampler.Next() {
			batches++
			for _, v := range b.Values {
				mean += v
			}
		}
		mean /= float32(buf.Len())
		log.Info().Msgf("completed batch %d: buffer holds %d entries in %d minibatches, mean value %.3f", i+1, buf.Len(), batches, mean)
	}

	log.Info().Msgf("starting evaluation of %d games against the uniform evaluator...", evalGames)
	result, evalMetrics, err := engine.Match(cfg, connect4.NewEnv, eval, connect4.UniformEvaluator{}, evalGames, engine.WithMetrics())
	if err != nil {
		return fmt.Errorf("failed to evaluate: %w", err)
	}

	writer, err := metrics.NewWriter(out, "selfplay")
	if err != nil {
		return err
	}
	err = writer.WriteSetup(cfg)
	if err != nil {
		return err
	}
	gameRecords, moveRecords := metrics.Records(1, 0, 0, games)
	evalGameRecords, evalMoveRecords := metrics.Records(len(games)+1, 1, 2, evalMetrics)
	err = writer.WriteGameRecords(append(gameRecords, evalGameRecords...))
	if err != nil {
		return err
	}
	err = writer.WriteMoveRecords(append(moveRecords, evalMoveRecords...))
	if err != nil {
		return err
	}
	log.Info().Msgf("stored metrics in %s", writer.Dir())

	printSummary(experiments.MeasureThroughput(games), buf, result)
	return nil
}

func printSummary(throughput experiments.Throughput, buf *replay.Buffer, result engine.MatchResult) {
	output := termenv.NewOutput(os.Stdout)

	color := output.Color("1")
	if result.Score() > 0.5 {
		color = output.Color("2")
	}

	fmt.Fprintln(output, output.String("self-play summary").Bold())
	fmt.Fprintf(output, "  games        %d (%d moves)\n", throughput.Games, throughput.Moves)
	fmt.Fprintf(output, "  simulations  %d (%.0f/s)\n", throughput.Simulations, throughput.SimulationsPerSecond())
	fmt.Fprintf(output, "  buffer       %d/%d\n", buf.Len(), buf.Cap())
	fmt.Fprintf(output, "  evaluation   %d-%d-%d, score %s\n", result.AWins, result.Draws, result.BWins,
		output.String(fmt.Sprintf("%.2f", result.Score())).Foreground(color).Bold())
}
