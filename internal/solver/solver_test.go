package solver

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

func TestMain(m *testing.M) {
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func intPtr(v int) *int { return &v }

func solve(t *testing.T, diagram string, opts Options) *Result {
	t.Helper()
	board := mines.MustParse(diagram)
	res, err := Solve(context.Background(), board, opts)
	require.NoError(t, err)
	require.Len(t, res.Probs, board.Width*board.Height)
	for i, p := range res.Probs {
		assert.GreaterOrEqual(t, p, 0.0, "cell %d", i)
		assert.LessOrEqual(t, p, 1.0, "cell %d", i)
	}
	return res
}

func TestSingleForcedMine(t *testing.T) {
	// A lone "1" whose only unclicked neighbor must hold the mine.
	res := solve(t, `
		1
		#
	`, Options{})
	assert.Equal(t, 0.0, res.Probs[0])
	assert.Equal(t, 1.0, res.Probs[1])
}

func TestZeroClueClearsNeighbors(t *testing.T) {
	res := solve(t, `
		0 #
		# #
	`, Options{})
	for i, p := range res.Probs {
		assert.Equal(t, 0.0, p, "cell %d", i)
	}
}

func TestIndependentGroups(t *testing.T) {
	// Two "1" clues with disjoint neighborhoods and one stray cell
	// between them. Each group is a fifty-fifty; the stray cell is
	// unconstrained and, with no mine count given, also one half.
	res := solve(t, `# 1 # # # 1 #`, Options{})
	for _, i := range []int{0, 2, 4, 6} {
		assert.InDelta(t, 0.5, res.Probs[i], 1e-12, "cell %d", i)
	}
	assert.InDelta(t, 0.5, res.Probs[3], 1e-12, "remainder cell")
	assert.Equal(t, 0.0, res.Probs[1])
	assert.Equal(t, 0.0, res.Probs[5])
	assert.Equal(t, 2, res.Groups)
	assert.Equal(t, 1, res.Remainder)
}

func TestOverlappingCluesOneTwoOne(t *testing.T) {
	// The 1-2-1 pattern has a unique solution: mines on the corners.
	res := solve(t, `
		# # #
		1 2 1
	`, Options{})
	assert.Equal(t, 1.0, res.Probs[0])
	assert.Equal(t, 0.0, res.Probs[1])
	assert.Equal(t, 1.0, res.Probs[2])
}

func TestMineCountShapesRemainder(t *testing.T) {
	// One "1" over two cells plus two unconstrained cells. The group
	// always spends exactly one mine; everything else depends on the
	// total.
	tests := []struct {
		name      string
		mineCount int
		remainder float64
	}{
		{"all mines in the group", 1, 0.0},
		{"one mine left over", 2, 0.5},
		{"remainder saturated", 3, 1.0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := solve(t, `# 1 # # #`, Options{
				MineCount: intPtr(test.mineCount),
			})
			assert.InDelta(t, 0.5, res.Probs[0], 1e-12)
			assert.InDelta(t, 0.5, res.Probs[2], 1e-12)
			assert.InDelta(t, test.remainder, res.Probs[3], 1e-12)
			assert.InDelta(t, test.remainder, res.Probs[4], 1e-12)

			// Conservation: probabilities over unclicked cells must
			// add up to the number of undiscovered mines.
			var sum float64
			for _, p := range res.Probs {
				sum += p
			}
			assert.InDelta(t, float64(test.mineCount), sum, 1e-9)
		})
	}
}

func TestRemainderSymmetry(t *testing.T) {
	res := solve(t, `
		# # # # #
		# # # # #
		# # 1 # #
		# # # # #
		# # # # #
	`, Options{MineCount: intPtr(5)})
	board := mines.MustParse(`
		# # # # #
		# # # # #
		# # 1 # #
		# # # # #
		# # # # #
	`)
	// All 16 cells outside the clue's neighborhood share one marginal.
	var remainderProb *float64
	for at, c := range board.Points() {
		if c != mines.Unclicked {
			continue
		}
		if absInt(at.X-2) <= 1 && absInt(at.Y-2) <= 1 {
			continue
		}
		p := res.Probs[board.Index(at)]
		if remainderProb == nil {
			remainderProb = &p
		} else {
			assert.Equal(t, *remainderProb, p, "cell %s", at)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestKnownMineReducesClue(t *testing.T) {
	// The "2" sees one known mine, so exactly one of its four unclicked
	// neighbors is mined.
	res := solve(t, `
		* 2 #
		# # #
	`, Options{})
	assert.Equal(t, 1.0, res.Probs[0], "known mine reports certainty")
	assert.Equal(t, 0.0, res.Probs[1])
	for _, i := range []int{2, 3, 4, 5} {
		assert.InDelta(t, 0.25, res.Probs[i], 1e-12, "cell %d", i)
	}
}

func TestFullyRevealedBoard(t *testing.T) {
	res := solve(t, `
		0 0 0
		0 0 0
	`, Options{})
	for i, p := range res.Probs {
		assert.Equal(t, 0.0, p, "cell %d", i)
	}
	assert.Equal(t, 0, res.Groups)
	assert.Equal(t, 0, res.Remainder)
}

func TestDeterminism(t *testing.T) {
	diagram := `
		# # # # #
		# 2 1 1 #
		# # # # #
	`
	first := solve(t, diagram, Options{MineCount: intPtr(4)})
	for range 5 {
		again := solve(t, diagram, Options{MineCount: intPtr(4)})
		assert.Equal(t, first.Probs, again.Probs)
		assert.Equal(t, first.GrandTotal, again.GrandTotal)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		opts    Options
		want    error
	}{
		{
			name:    "clue exceeds its neighborhood",
			diagram: `2 #`,
			want:    ErrInconsistentBoard,
		},
		{
			name:    "clue below its known mines",
			diagram: `* 1 *`,
			want:    ErrInvalidInput,
		},
		{
			name: "jointly unsatisfiable clues",
			diagram: `
				# # #
				1 3 1
			`,
			want: ErrInconsistentBoard,
		},
		{
			name:    "mine count too large",
			diagram: `# 1 #`,
			opts:    Options{MineCount: intPtr(3)},
			want:    ErrNoValidConfiguration,
		},
		{
			name:    "mine count too small",
			diagram: `# 1 #`,
			opts:    Options{MineCount: intPtr(0)},
			want:    ErrNoValidConfiguration,
		},
		{
			name:    "mine count out of range",
			diagram: `# 1 #`,
			opts:    Options{MineCount: intPtr(-1)},
			want:    ErrInvalidInput,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mines.MustParse(test.diagram)
			_, err := Solve(context.Background(), board, test.opts)
			require.ErrorIs(t, err, test.want)
		})
	}
}

func TestNilBoard(t *testing.T) {
	_, err := Solve(context.Background(), nil, Options{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchBudget(t *testing.T) {
	// One long connected group; a tiny node budget must trip the guard
	// instead of hanging.
	board := mines.MustParse(`
		1 1 1 1 1 1 1 1 1 1 1 1
		# # # # # # # # # # # #
	`)
	_, err := Solve(context.Background(), board, Options{MaxNodes: 10})
	require.ErrorIs(t, err, ErrTooComplex)
}

// revealAround builds a mid-game snapshot from a ground-truth mine
// layout: every safe cell inside the window is revealed with its true
// neighbor count, everything else stays unclicked. The snapshot is
// consistent by construction.
func revealAround(t *testing.T, width, height int, mineAt map[mines.Point]bool, x0, y0, x1, y1 int) *mines.Board {
	t.Helper()
	cells := make(mines.Grid, width*height)
	for i := range cells {
		cells[i] = mines.Unclicked
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if mineAt[mines.Point{X: x, Y: y}] {
				continue
			}
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if mineAt[mines.Point{X: x + dx, Y: y + dy}] {
						n++
					}
				}
			}
			cells[y*width+x] = mines.CellState(n)
		}
	}
	board, err := mines.NewBoard(width, height, cells)
	require.NoError(t, err)
	return board
}

func TestMidGameBoard(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	// A 12x8 board with a fixed layout and a revealed window in the
	// middle. Checks conservation and bounds at a realistic size.
	mineAt := map[mines.Point]bool{}
	for _, p := range []mines.Point{
		{X: 0, Y: 0}, {X: 4, Y: 1}, {X: 9, Y: 1}, {X: 1, Y: 3},
		{X: 6, Y: 3}, {X: 11, Y: 4}, {X: 2, Y: 6}, {X: 7, Y: 6},
		{X: 10, Y: 7}, {X: 5, Y: 5},
	} {
		mineAt[p] = true
	}
	board := revealAround(t, 12, 8, mineAt, 2, 2, 9, 5)

	res, err := Solve(context.Background(), board, Options{
		MineCount: intPtr(len(mineAt)),
	})
	require.NoError(t, err)

	var sum float64
	for i, p := range res.Probs {
		require.GreaterOrEqual(t, p, 0.0, "cell %d", i)
		require.LessOrEqual(t, p, 1.0, "cell %d", i)
		sum += p
	}
	assert.InDelta(t, float64(len(mineAt)), sum, 1e-6)
	assert.Greater(t, res.Groups, 0)
	assert.Greater(t, res.Remainder, 0)
}
