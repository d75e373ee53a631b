package game

import "errors"

var ErrPriorSize = errors.New("prior size does not match the action space")

// Action is a zero-based index into a game's fixed action space
type Action int

// Index returns the action's position in a prior or policy vector
func (a Action) Index() int {
	return int(a)
}

type Player int

type StateHash uint64

// State is an immutable snapshot of a game position
type State interface {
	// Hash identifies the position, used to memoize evaluations
	Hash() StateHash
	// Features encodes the position as a flat vector for training
	Features() []float32
}

// Env is a two-player zero-sum game with a fixed action space.
// Step mutates the Env in place, use Clone to branch off a position.
type Env interface {
	// Step plays an action and reports whether the game just ended
	Step(Action) bool
	// Player returns the player to move
	Player() Player
	// Reward returns the outcome for the given player, meaningful once the game is over
	Reward(Player) float32
	State() State
	NumActions() int
	Clone() Env
}

// Factory creates an Env at the game's initial position
type Factory func() Env

// Evaluator estimates a position: a prior over the whole action space that sums to 1,
// and a value in [-1, 1] from the perspective of the player to move.
type Evaluator interface {
	Evaluate(state State) (prior []float32, value float32, err error)
}

type EvaluatorFunc func(state State) ([]float32, float32, error)

func (f EvaluatorFunc) Evaluate(state State) ([]float32, float32, error) {
	return f(state)
}
