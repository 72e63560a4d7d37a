package mines

import (
	"fmt"
	"strings"
)

/*
Parse builds a board from a text diagram, one row per line:

	# # 1 0
	# * 2 0
	# # 1 0

'#' is an unclicked cell, '*' a known mine, '0'-'8' a revealed number.
Spaces between cells and blank lines are ignored. Inverse of
[Board.String].
*/
func Parse(diagram string) (*Board, error) {
	var (
		cells Grid
		width int
		rows  int
	)
	for _, line := range strings.Split(diagram, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf(
				"ragged board diagram: row %d has %d cells, want %d",
				rows, len(fields), width,
			)
		}
		for _, f := range fields {
			var c CellState
			switch {
			case f == "#":
				c = Unclicked
			case f == "*":
				c = Mine
			case len(f) == 1 && '0' <= f[0] && f[0] <= '8':
				c = CellState(f[0] - '0')
			default:
				return nil, fmt.Errorf("bad cell %q in board diagram", f)
			}
			cells = append(cells, c)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("empty board diagram")
	}
	return NewBoard(width, rows, cells)
}

// MustParse is a test helper; it panics on malformed diagrams.
func MustParse(diagram string) *Board {
	b, err := Parse(diagram)
	if err != nil {
		panic(err)
	}
	return b
}
