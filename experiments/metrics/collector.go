package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Explores     int
	CPuct        float32
	Duration     time.Duration
	Episodes     int
	TerminalHits int
	TreeSize     int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Action int
	SearchMetric
}

type GameMetric struct {
	ID             string  // uuid
	StartingPlayer int     // Player ID
	Reward         float32 // Outcome for the starting player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Moves          []MoveMetric
}

type Collector interface {
	Start(explores int, cPuct float32)
	SetTreeReset(value bool)
	SetTreeSize(size int)
	AddTerminalHit()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	explores     int
	cPuct        float32
	startTime    time.Time
	episodes     atomic.Int32
	terminalHits atomic.Int32
	treeSize     atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

// Start resets the counters for a new search, tree reset status carries over from the last re-rooting
func (m *collector) Start(explores int, cPuct float32) {
	m.startTime = time.Now()
	m.explores = explores
	m.cPuct = cPuct
	m.episodes.Store(0)
	m.terminalHits.Store(0)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Explores:     m.explores,
		CPuct:        m.cPuct,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		TreeSize:     int(m.treeSize.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(explores int, cPuct float32) {}
func (m *dummyCollector) SetTreeReset(value bool)            {}
func (m *dummyCollector) SetTreeSize(size int)               {}
func (m *dummyCollector) AddTerminalHit()                    {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
