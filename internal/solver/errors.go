package solver

import "errors"

var (
	// ErrInvalidInput marks a malformed board or malformed solve
	// arguments. Detected before or during constraint extraction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentBoard marks clues that admit no satisfying mine
	// placement. Such a board is not a legally reachable game state.
	ErrInconsistentBoard = errors.New("inconsistent board")

	// ErrNoValidConfiguration marks boards whose clues are locally
	// satisfiable but cannot be combined to match the total mine count.
	ErrNoValidConfiguration = errors.New("no configuration matches the mine count")

	// ErrTooComplex marks an enumeration that exhausted its search
	// budget. The caller may retry with a larger budget or fall back to
	// a heuristic.
	ErrTooComplex = errors.New("board too complex for the search budget")
)
