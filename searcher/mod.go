package searcher

import "errors"

// Hyperparameters for MCTS

const DefaultCPuct = 1.0     // Exploration constant
const DefaultCapacity = 1024 // Initial node storage, grows as needed

var (
	ErrTerminalRoot = errors.New("cannot search from a terminal state")
	ErrNoPriors     = errors.New("evaluator assigned no probability to any action")
)
