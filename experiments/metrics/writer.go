package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes the evaluator behind one player in an experiment
type AgentConfig struct {
	ID       int `yaml:"id"`
	Playouts int `yaml:"playouts"` // Rollouts per evaluation, 0 for the uniform evaluator
	Cutoff   int `yaml:"cutoff"`   // Rollout depth limit, 0 for full games
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID of the starting player
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold one run's files
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the run's configuration as setup.yaml
func (w *Writer) WriteSetup(setup any) error {
	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, "setup.yaml"), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Playouts),
			strconv.Itoa(config.Cutoff),
		})
	}
	header := []string{"id", "playouts", "cutoff"}
	return w.writeCSV("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameMetric.ID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.FormatFloat(float64(record.Reward), 'g', -1, 32),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "uuid", "agent1", "agent2", "starting_player", "reward", "moves", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Action),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.TerminalHits),
			strconv.Itoa(record.TreeSize),
			strconv.FormatBool(!record.IsTreeReset),
		})
	}
	header := []string{"game", "step", "player", "action", "duration", "episodes", "terminal_hits", "tree_size", "is_tree_reused"}
	return w.writeCSV("move_records.csv", "move records", header, rows)
}

func (w *Writer) writeCSV(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", what, err)
	}
	return nil
}

// Records flattens game metrics into rows for one matchup, numbering games from first.
// Games alternate the starting agent the way engine.Match plays them, so agent1 is swapped with
// agent2 on every second game and Agent1 is always the agent the reward belongs to.
func Records(first, agent1, agent2 int, games []GameMetric) ([]GameRecord, []MoveRecord) {
	gameRecords := make([]GameRecord, 0, len(games))
	moveRecords := []MoveRecord{}
	for i, g := range games {
		id := first + i
		starter, other := agent1, agent2
		if i%2 == 1 {
			starter, other = agent2, agent1
		}
		gameRecords = append(gameRecords, GameRecord{ID: id, Agent1: starter, Agent2: other, GameMetric: g})
		for _, m := range g.Moves {
			moveRecords = append(moveRecords, MoveRecord{Game: id, MoveMetric: m})
		}
	}
	return gameRecords, moveRecords
}
