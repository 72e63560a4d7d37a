package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

func TestPartitionCoversEveryVariableOnce(t *testing.T) {
	board := mines.MustParse(`
		# # # # # # #
		# 1 # # 2 # #
		# # # # # # #
		# # # # # # #
		# # 1 1 # # #
		# # # # # # #
	`)
	p, err := extract(board)
	require.NoError(t, err)

	groups := partition(len(p.vars), p.constraints)

	seen := make(map[int]int)
	for gi, g := range groups {
		for _, v := range g.Vars {
			_, dup := seen[v]
			assert.False(t, dup, "variable %d in two groups", v)
			seen[v] = gi
		}
	}
	// Union of groups == all constrained variables (no propagation ran
	// here, so nothing has been forced out).
	assert.Len(t, seen, len(p.vars))

	// Constrained variables plus remainder must cover every unclicked
	// cell exactly once.
	unclicked := board.CountState(mines.Unclicked)
	assert.Equal(t, unclicked, len(p.vars)+p.remainderSize())
}

func TestPartitionIgnoresConstraintOrder(t *testing.T) {
	cs := []Constraint{
		{Cell: mines.Point{X: 1, Y: 0}, Required: 1, Vars: []int{0, 1}},
		{Cell: mines.Point{X: 3, Y: 0}, Required: 1, Vars: []int{1, 2}},
		{Cell: mines.Point{X: 9, Y: 0}, Required: 2, Vars: []int{4, 5}},
	}
	forward := partition(6, cs)

	reversed := []Constraint{cs[2], cs[1], cs[0]}
	backward := partition(6, reversed)

	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	for i := range forward {
		assert.Equal(t, forward[i].Vars, backward[i].Vars)
	}
}

func TestPartitionChainsTransitively(t *testing.T) {
	// A-B share 1, B-C share 2: one group even though A and C share
	// nothing directly.
	cs := []Constraint{
		{Required: 1, Vars: []int{0, 1}},
		{Required: 1, Vars: []int{1, 2}},
		{Required: 1, Vars: []int{2, 3}},
	}
	groups := partition(4, cs)
	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, groups[0].Vars)
	assert.Len(t, groups[0].Constraints, 3)
}
