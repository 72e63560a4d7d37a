package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

func deduce(t *testing.T, diagram string) (*problem, *deduction) {
	t.Helper()
	p, err := extract(mines.MustParse(diagram))
	require.NoError(t, err)
	d, err := propagate(p)
	require.NoError(t, err)
	return p, d
}

func TestPropagateChainsDeductions(t *testing.T) {
	// The left "2" pins both of its cells as mines; folding those into
	// the middle "2" leaves it satisfied, which clears its third cell.
	p, d := deduce(t, `
		# # #
		2 2 1
	`)

	mined := map[mines.Point]bool{
		{X: 0, Y: 0}: true,
		{X: 1, Y: 0}: true,
	}
	for at, v := range p.varAt {
		if mined[at] {
			assert.Equal(t, forcedMine, d.forced[v], "cell %s", at)
		} else {
			assert.Equal(t, forcedSafe, d.forced[v], "cell %s", at)
		}
	}
	assert.Equal(t, 2, d.forcedMines)
	assert.Empty(t, d.constraints, "everything was decided")
}

func TestPropagateLeavesAmbiguityAlone(t *testing.T) {
	_, d := deduce(t, `# 1 #`)
	assert.Equal(t, 0, d.forcedMines)
	require.Len(t, d.constraints, 1)
	assert.Len(t, d.constraints[0].Vars, 2)
}

func TestPropagateReducesSurvivingConstraints(t *testing.T) {
	// The "1" decides nothing by itself, but the zero clue clears two
	// of its four cells, leaving a smaller constraint behind.
	p, d := deduce(t, `
		# # #
		1 # #
		# 0 #
	`)
	require.Len(t, d.constraints, 1)
	c := d.constraints[0]
	assert.Equal(t, 1, c.Required)
	assert.Equal(t, []int{
		p.varAt[mines.Point{X: 0, Y: 0}],
		p.varAt[mines.Point{X: 1, Y: 0}],
	}, c.Vars)
}

func TestPropagateDetectsContradiction(t *testing.T) {
	p, err := extract(mines.MustParse(`
		# # #
		1 3 1
	`))
	require.NoError(t, err)
	_, err = propagate(p)
	require.ErrorIs(t, err, ErrInconsistentBoard)
}
