package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"selfplay/engine"
	"selfplay/experiments/metrics"
	"selfplay/game/connect4"
	"selfplay/meta"
)

func TestRunMatchups(t *testing.T) {
	cfg := meta.Default()
	cfg.NumExplores = 4
	root := t.TempDir()
	rollout := metrics.AgentConfig{ID: 1, Playouts: 1, Cutoff: 4}

	results, err := RunMatchups(cfg, root, "smoke", []metrics.AgentConfig{Baseline, rollout},
		[][2]metrics.AgentConfig{{Baseline, rollout}}, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Games())

	runs, err := os.ReadDir(filepath.Join(root, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1, "Should write one timestamped run")
	for _, file := range []string{"setup.yaml", "agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(root, "smoke", runs[0].Name(), file))
	}
}

func TestRunMatchupsCreditsWinners(t *testing.T) {
	cfg := meta.Default()
	cfg.NumExplores = 8
	root := t.TempDir()
	rollout := metrics.AgentConfig{ID: 1, Playouts: 4}

	results, err := RunMatchups(cfg, root, "credit", []metrics.AgentConfig{Baseline, rollout},
		[][2]metrics.AgentConfig{{Baseline, rollout}}, 4)
	require.NoError(t, err)
	require.Len(t, results, 1)

	runs, err := os.ReadDir(filepath.Join(root, "credit"))
	require.NoError(t, err)
	f, err := os.Open(filepath.Join(root, "credit", runs[0].Name(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "Should write a header and four games")

	recorded := engine.MatchResult{}
	for _, row := range rows[1:] {
		reward, err := strconv.ParseFloat(row[5], 32)
		require.NoError(t, err)
		winner := row[2]
		if reward < 0 {
			winner = row[3]
		}
		switch {
		case reward == 0:
			recorded.Draws++
		case winner == strconv.Itoa(Baseline.ID):
			recorded.AWins++
		default:
			recorded.BWins++
		}
	}
	require.Equal(t, results[0], recorded, "Game records should credit each result to the evaluator that earned it")
}

func TestNewEvaluator(t *testing.T) {
	require.IsType(t, connect4.UniformEvaluator{}, newEvaluator(Baseline, 1))
	require.IsType(t, &connect4.RolloutEvaluator{}, newEvaluator(metrics.AgentConfig{ID: 2, Playouts: 3}, 1))
}

func TestMeasureThroughput(t *testing.T) {
	games := []metrics.GameMetric{{
		TotalMoves: 2,
		Moves: []metrics.MoveMetric{
			{SearchMetric: metrics.SearchMetric{Episodes: 10, Duration: time.Second}},
			{SearchMetric: metrics.SearchMetric{Episodes: 30, Duration: time.Second}},
		},
	}}

	throughput := MeasureThroughput(games)
	require.Equal(t, Throughput{Games: 1, Moves: 2, Simulations: 40, Searching: 2 * time.Second}, throughput)
	require.Equal(t, 20.0, throughput.SimulationsPerSecond())
	require.Equal(t, 0.0, Throughput{}.SimulationsPerSecond())
}
