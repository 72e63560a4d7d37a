package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unclicked CellState = -2
	Mine      CellState = -1
	/*
	 * Each cell of a board snapshot is one of the following values:
	 *
	 * 	- 0 to 8 mean the cell is open and shows a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the cell is known to be a mine (flagged by the
	 *    player or revealed after a loss).
	 *
	 *  - -2 means the cell is unclicked.
	 */
)

func (s CellState) Valid() bool {
	return s == Unclicked || s == Mine || (0 <= s && s <= 8)
}

func (s CellState) String() string {
	switch {
	case s == Unclicked:
		return "#"
	case s == Mine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
