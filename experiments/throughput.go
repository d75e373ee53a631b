package experiments

import (
	"time"

	"selfplay/experiments/metrics"
)

type Throughput struct {
	Games       int
	Moves       int
	Simulations int
	Searching   time.Duration
}

// MeasureThroughput sums the search work recorded in game metrics
func MeasureThroughput(games []metrics.GameMetric) Throughput {
	t := Throughput{Games: len(games)}
	for _, g := range games {
		t.Moves += g.TotalMoves
		for _, m := range g.Moves {
			t.Simulations += m.Episodes
			t.Searching += m.Duration
		}
	}
	return t
}

// SimulationsPerSecond is 0 when no search time was recorded
func (t Throughput) SimulationsPerSecond() float64 {
	if t.Searching <= 0 {
		return 0
	}
	return float64(t.Simulations) / t.Searching.Seconds()
}
