package solver

import (
	"fmt"

	"github.com/gammazero/deque"
)

type forcedState int8

const (
	forcedNone forcedState = iota
	forcedSafe
	forcedMine
)

/*
deduction is the result of running forced-cell propagation over a
problem: assignments that hold in every satisfying configuration, plus
the constraint set reduced accordingly.
*/
type deduction struct {
	forced      []forcedState // indexed by var id
	forcedMines int
	constraints []Constraint
}

/*
propagate applies the two sound local rules to a fixed point:

  - a constraint with zero required mines clears all of its cells;
  - a constraint whose required count equals its cell count mines all
    of its cells.

Each forced cell is folded into every constraint that mentions it, and
those constraints go back on the worklist. Anything still undecided
afterwards is left for exhaustive enumeration.
*/
func propagate(p *problem) (*deduction, error) {
	var (
		forced = make([]forcedState, len(p.vars))
		// live state per constraint: mines still required, cells still
		// unassigned
		req = make([]int, len(p.constraints))
		rem = make([]int, len(p.constraints))
		// var id -> ids of constraints that mention it
		varCons = make([][]int, len(p.vars))
		queued  = make([]bool, len(p.constraints))
		todo    deque.Deque[int]
	)
	for ci, c := range p.constraints {
		req[ci] = c.Required
		rem[ci] = len(c.Vars)
		for _, v := range c.Vars {
			varCons[v] = append(varCons[v], ci)
		}
		todo.PushBack(ci)
		queued[ci] = true
	}

	d := &deduction{forced: forced}

	force := func(v int, state forcedState) {
		if forced[v] != forcedNone {
			return
		}
		forced[v] = state
		if state == forcedMine {
			d.forcedMines++
		}
		for _, ci := range varCons[v] {
			rem[ci]--
			if state == forcedMine {
				req[ci]--
			}
			if !queued[ci] {
				todo.PushBack(ci)
				queued[ci] = true
			}
		}
	}

	for todo.Len() > 0 {
		ci := todo.PopFront()
		queued[ci] = false

		if req[ci] < 0 || req[ci] > rem[ci] {
			return nil, fmt.Errorf(
				"%w: clue at %s contradicts its neighborhood",
				ErrInconsistentBoard, p.constraints[ci].Cell,
			)
		}
		if rem[ci] == 0 {
			continue
		}
		if req[ci] == 0 || req[ci] == rem[ci] {
			state := forcedSafe
			if req[ci] > 0 {
				state = forcedMine
			}
			for _, v := range p.constraints[ci].Vars {
				if forced[v] == forcedNone {
					force(v, state)
				}
			}
		}
	}

	// Rebuild the surviving constraints over undecided variables only.
	for ci, c := range p.constraints {
		if rem[ci] == 0 {
			continue
		}
		vars := make([]int, 0, rem[ci])
		for _, v := range c.Vars {
			if forced[v] == forcedNone {
				vars = append(vars, v)
			}
		}
		d.constraints = append(d.constraints, Constraint{
			Cell:     c.Cell,
			Required: req[ci],
			Vars:     vars,
		})
	}

	return d, nil
}
