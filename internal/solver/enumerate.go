package solver

import (
	"context"
	"fmt"
)

/*
Configuration is one satisfying mine/safe assignment over a group's
variables. Mines is indexed like Group.Vars; MineCount is the number of
true entries, kept because the aggregator bins configurations by it.
*/
type Configuration struct {
	Mines     []bool
	MineCount int
}

type enumerator struct {
	group Group

	// constraints translated to local variable indices
	req     []int
	conVars [][]int
	varCons [][]int

	// live counters per constraint
	mines      []int
	unassigned []int

	assigned []bool
	nodes    int
	maxNodes int
	ctx      context.Context

	configs []Configuration
}

func newEnumerator(ctx context.Context, g Group, maxNodes int) *enumerator {
	local := make(map[int]int, len(g.Vars))
	for i, v := range g.Vars {
		local[v] = i
	}

	e := &enumerator{
		group:      g,
		req:        make([]int, len(g.Constraints)),
		conVars:    make([][]int, len(g.Constraints)),
		varCons:    make([][]int, len(g.Vars)),
		mines:      make([]int, len(g.Constraints)),
		unassigned: make([]int, len(g.Constraints)),
		assigned:   make([]bool, len(g.Vars)),
		maxNodes:   maxNodes,
		ctx:        ctx,
	}
	for ci, c := range g.Constraints {
		e.req[ci] = c.Required
		e.unassigned[ci] = len(c.Vars)
		vars := make([]int, 0, len(c.Vars))
		for _, v := range c.Vars {
			lv := local[v]
			vars = append(vars, lv)
			e.varCons[lv] = append(e.varCons[lv], ci)
		}
		e.conVars[ci] = vars
	}
	return e
}

/*
enumerate produces every mine/safe assignment over the group's
variables that satisfies all of its constraints, by depth-first search
in variable order with constraint pruning. An empty result means the
group's clues are jointly unsatisfiable.
*/
func enumerate(ctx context.Context, g Group, maxNodes int) ([]Configuration, error) {
	e := newEnumerator(ctx, g, maxNodes)
	if err := e.descend(0, 0); err != nil {
		return nil, err
	}
	return e.configs, nil
}

// place commits variable k as mine or safe and reports whether every
// touched constraint can still be satisfied.
func (e *enumerator) place(k int, mine bool) (ok bool) {
	ok = true
	for _, ci := range e.varCons[k] {
		e.unassigned[ci]--
		if mine {
			e.mines[ci]++
		}
		// Prune branches that already overshoot the required count or
		// cannot reach it with the cells left.
		if e.mines[ci] > e.req[ci] ||
			e.mines[ci]+e.unassigned[ci] < e.req[ci] {
			ok = false
		}
	}
	e.assigned[k] = mine
	return ok
}

func (e *enumerator) unplace(k int, mine bool) {
	for _, ci := range e.varCons[k] {
		e.unassigned[ci]++
		if mine {
			e.mines[ci]--
		}
	}
}

func (e *enumerator) descend(k, mineCount int) error {
	e.nodes++
	if e.nodes > e.maxNodes {
		return fmt.Errorf(
			"%w: group of %d cells exceeded %d search nodes",
			ErrTooComplex, len(e.group.Vars), e.maxNodes,
		)
	}
	if err := e.ctx.Err(); err != nil {
		return err
	}

	if k == len(e.group.Vars) {
		return e.emit(mineCount)
	}

	for _, mine := range [2]bool{false, true} {
		ok := e.place(k, mine)
		if ok {
			nextCount := mineCount
			if mine {
				nextCount++
			}
			if err := e.descend(k+1, nextCount); err != nil {
				return err
			}
		}
		e.unplace(k, mine)
	}
	return nil
}

func (e *enumerator) emit(mineCount int) error {
	// The prunes guarantee this, but a bad configuration here would
	// silently skew every probability downstream.
	for ci := range e.conVars {
		if e.mines[ci] != e.req[ci] {
			return fmt.Errorf(
				"assignment escaped pruning: constraint %s got %d mines",
				e.group.Constraints[ci], e.mines[ci],
			)
		}
	}
	mines := make([]bool, len(e.assigned))
	copy(mines, e.assigned)
	e.configs = append(e.configs, Configuration{
		Mines:     mines,
		MineCount: mineCount,
	})
	return nil
}
