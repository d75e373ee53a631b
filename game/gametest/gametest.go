// Package gametest provides tiny deterministic games and evaluators for tests.
package gametest

import (
	"encoding/binary"
	"hash/fnv"

	"selfplay/game"
)

const (
	First  game.Player = 1
	Second game.Player = 2
)

// State records how far the game has progressed and who is to move
type State struct {
	Plies  int
	ToMove game.Player
}

func (s State) Hash() game.StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(s.Plies))
	binary.Write(hasher, binary.LittleEndian, int64(s.ToMove))
	return game.StateHash(hasher.Sum64())
}

func (s State) Features() []float32 {
	return []float32{float32(s.Plies), float32(s.ToMove)}
}

// Env is a game where every action is legal and the game ends after a fixed
// number of plies. The last mover receives reward, the other player its negation.
type Env struct {
	actions int
	length  int
	reward  float32
	state   State
	over    bool
	last    game.Player
}

func newEnv(actions, length int, reward float32) *Env {
	if actions <= 0 || length <= 0 {
		panic("game needs at least one action and one ply")
	}
	return &Env{actions: actions, length: length, reward: reward, state: State{ToMove: First}}
}

// OneShot ends after a single action, paying reward to the player who took it
func OneShot(actions int, reward float32) game.Factory {
	return func() game.Env { return newEnv(actions, 1, reward) }
}

// Countdown lasts exactly length plies and the last mover wins,
// so the starting player wins iff length is odd
func Countdown(length, actions int) game.Factory {
	return func() game.Env { return newEnv(actions, length, 1) }
}

// Forced is won by the first player whatever either side does
func Forced(actions int) game.Factory {
	return Countdown(3, actions)
}

// Drawn lasts length plies and always ends level
func Drawn(length, actions int) game.Factory {
	return func() game.Env { return newEnv(actions, length, 0) }
}

func (e *Env) Step(a game.Action) bool {
	if e.over {
		panic("game is over - no moves allowed")
	}
	if a.Index() < 0 || a.Index() >= e.actions {
		panic("action out of range")
	}
	e.last = e.state.ToMove
	e.state.Plies++
	e.state.ToMove = other(e.state.ToMove)
	e.over = e.state.Plies >= e.length
	return e.over
}

func (e *Env) Player() game.Player {
	return e.state.ToMove
}

func (e *Env) Reward(p game.Player) float32 {
	if !e.over {
		return 0
	}
	if p == e.last {
		return e.reward
	}
	return -e.reward
}

func (e *Env) State() game.State {
	return e.state
}

func (e *Env) NumActions() int {
	return e.actions
}

func (e *Env) Clone() game.Env {
	clone := *e
	return &clone
}

func other(p game.Player) game.Player {
	if p == First {
		return Second
	}
	return First
}

// StaticEvaluator returns the same prior and value for every state and counts its calls.
// A nil Prior means uniform over Actions.
type StaticEvaluator struct {
	Actions int
	Prior   []float32
	Value   float32
	Calls   int
}

func (s *StaticEvaluator) Evaluate(game.State) ([]float32, float32, error) {
	s.Calls++
	if s.Prior != nil {
		return append([]float32(nil), s.Prior...), s.Value, nil
	}
	prior := make([]float32, s.Actions)
	for i := range prior {
		prior[i] = 1 / float32(s.Actions)
	}
	return prior, s.Value, nil
}
