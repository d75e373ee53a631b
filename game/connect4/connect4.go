// Package connect4 implements Connect Four on a 6x7 board, with one action per column.
package connect4

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"selfplay/game"
)

const (
	Rows       = 6
	Cols       = 7
	NumActions = Cols
	connect    = 4
)

const (
	Nobody  game.Player = 0
	Player1 game.Player = 1
	Player2 game.Player = 2
)

const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

// State is a copyable snapshot of the board, row 0 is the bottom row
type State struct {
	Board  [Rows][Cols]game.Player
	ToMove game.Player
}

func (s State) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.ToMove))
	for r := range s.Board {
		for c := range s.Board[r] {
			hasher.Write([]byte{byte(s.Board[r][c])})
		}
	}
	return game.StateHash(hasher.Sum64())
}

// Features encodes the board as two planes from the side to move's point of view:
// its own discs first, then the opponent's.
func (s State) Features() []float32 {
	features := make([]float32, 2*Rows*Cols)
	for r := range s.Board {
		for c, owner := range s.Board[r] {
			switch owner {
			case Nobody:
			case s.ToMove:
				features[r*Cols+c] = 1
			default:
				features[Rows*Cols+r*Cols+c] = 1
			}
		}
	}
	return features
}

// Legal reports, per column, whether a disc can still be dropped
func (s State) Legal() []bool {
	legal := make([]bool, Cols)
	for c := range legal {
		legal[c] = s.Board[Rows-1][c] == Nobody
	}
	return legal
}

func (s State) String() string {
	out := ""
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Cols; c++ {
			switch s.Board[r][c] {
			case Player1:
				out += "X"
			case Player2:
				out += "O"
			default:
				out += "."
			}
		}
		out += "\n"
	}
	return out
}

type Env struct {
	state   State
	heights [Cols]int
	plies   int
	winner  game.Player
	over    bool
}

func New() *Env {
	return &Env{state: State{ToMove: Player1}}
}

// NewEnv is a game.Factory for Connect Four
func NewEnv() game.Env {
	return New()
}

// FromState rebuilds an Env positioned at the given snapshot
func FromState(s State) *Env {
	e := &Env{state: s}
	for c := 0; c < Cols; c++ {
		for r := 0; r < Rows && s.Board[r][c] != Nobody; r++ {
			e.heights[c]++
			e.plies++
		}
	}
	for r := 0; r < Rows && e.winner == Nobody; r++ {
		for c := 0; c < Cols; c++ {
			if s.Board[r][c] != Nobody && e.connects(r, c) {
				e.winner = s.Board[r][c]
				break
			}
		}
	}
	e.over = e.winner != Nobody || e.plies == Rows*Cols
	return e
}

func (e *Env) Step(a game.Action) bool {
	col := a.Index()
	if e.over {
		panic("game is over - no moves allowed")
	}
	if col < 0 || col >= Cols || e.heights[col] >= Rows {
		panic(fmt.Sprintf("illegal move: column %d", col))
	}

	row := e.heights[col]
	e.state.Board[row][col] = e.state.ToMove
	e.heights[col]++
	e.plies++

	if e.connects(row, col) {
		e.winner = e.state.ToMove
		e.over = true
	} else if e.plies == Rows*Cols {
		e.over = true
	}
	e.state.ToMove = Opponent(e.state.ToMove)
	return e.over
}

func (e *Env) connects(row, col int) bool {
	owner := e.state.Board[row][col]
	directions := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range directions {
		count := 1
		count += e.run(row, col, d[0], d[1], owner)
		count += e.run(row, col, -d[0], -d[1], owner)
		if count >= connect {
			return true
		}
	}
	return false
}

func (e *Env) run(row, col, dr, dc int, owner game.Player) int {
	n := 0
	for r, c := row+dr, col+dc; r >= 0 && r < Rows && c >= 0 && c < Cols; r, c = r+dr, c+dc {
		if e.state.Board[r][c] != owner {
			break
		}
		n++
	}
	return n
}

func (e *Env) Player() game.Player {
	return e.state.ToMove
}

func (e *Env) Reward(p game.Player) float32 {
	switch e.winner {
	case Nobody:
		return Draw
	case p:
		return Win
	default:
		return Loss
	}
}

func (e *Env) State() game.State {
	return e.state
}

func (e *Env) NumActions() int {
	return NumActions
}

func (e *Env) Clone() game.Env {
	clone := *e
	return &clone
}

func (e *Env) Winner() game.Player {
	return e.winner
}

func (e *Env) IsOver() bool {
	return e.over
}

func (e *Env) Plies() int {
	return e.plies
}

func Opponent(p game.Player) game.Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}
