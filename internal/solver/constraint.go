package solver

import (
	"fmt"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

/*
Constraint is a formalized clue: a revealed number demands exactly
Required mines among Vars. Required is the shown value already reduced
by neighboring known mines; Vars are ids into the variable arena, in
ascending order.
*/
type Constraint struct {
	Cell     mines.Point
	Required int
	Vars     []int
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s=%d over %d cells", c.Cell, c.Required, len(c.Vars))
}

/*
problem is one extracted board: the variable arena (every unclicked
cell adjacent to at least one clue, row-major) and the constraints
referencing it by id. Unclicked cells absent from the arena form the
unconstrained remainder.
*/
type problem struct {
	board       *mines.Board
	vars        []mines.Point
	varAt       map[mines.Point]int
	constraints []Constraint
	knownMines  int
}

func (p problem) remainderSize() int {
	return p.board.CountState(mines.Unclicked) - len(p.vars)
}

// extract scans the board and produces one constraint per revealed
// number. Pure function of the snapshot.
func extract(board *mines.Board) (*problem, error) {
	p := &problem{
		board:      board,
		varAt:      make(map[mines.Point]int),
		knownMines: board.CountState(mines.Mine),
	}

	type clue struct {
		at   mines.Point
		nbrs []mines.Point
		req  int
	}
	var (
		clues       []clue
		constrained = make(map[mines.Point]bool)
	)
	for at, c := range board.Points() {
		if c < 0 {
			continue
		}
		required := int(c)
		var unclicked []mines.Point
		for _, n := range board.Neighbors(at.X, at.Y) {
			switch board.At(n.X, n.Y) {
			case mines.Mine:
				required--
			case mines.Unclicked:
				unclicked = append(unclicked, n)
			}
		}
		if required < 0 {
			return nil, fmt.Errorf(
				"%w: clue %d at %s is less than its %d adjacent known mines",
				ErrInvalidInput, c, at, int(c)-required,
			)
		}
		if required > len(unclicked) {
			return nil, fmt.Errorf(
				"%w: clue at %s needs %d mines in %d unclicked neighbors",
				ErrInconsistentBoard, at, required, len(unclicked),
			)
		}
		if len(unclicked) == 0 {
			// required == 0 here: trivially satisfied, drop.
			continue
		}
		for _, n := range unclicked {
			constrained[n] = true
		}
		clues = append(clues, clue{at, unclicked, required})
	}

	// Register variables in row-major order so that arena ids (and
	// everything derived from them) do not depend on clue order.
	for at, c := range board.Points() {
		if c == mines.Unclicked && constrained[at] {
			p.varAt[at] = len(p.vars)
			p.vars = append(p.vars, at)
		}
	}

	for _, cl := range clues {
		ids := make([]int, 0, len(cl.nbrs))
		for _, n := range cl.nbrs {
			ids = append(ids, p.varAt[n])
		}
		// Neighbors come out row-major, arena is row-major: already sorted.
		p.constraints = append(p.constraints, Constraint{
			Cell:     cl.at,
			Required: cl.req,
			Vars:     ids,
		})
	}

	return p, nil
}
