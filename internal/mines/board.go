package mines

import (
	"fmt"
	"iter"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Less orders points row-major (top to bottom, left to right).
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

/*
Board is an immutable snapshot of player knowledge: cell states laid
out row-major. The solver never mutates it; a new snapshot is built for
every request.
*/
type Board struct {
	Width, Height int
	Cells         Grid
}

func NewBoard(width, height int, cells Grid) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("non-positive board dimensions %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf(
			"board of %dx%d requires %d cells, got %d",
			width, height, width*height, len(cells),
		)
	}
	for i, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid cell state %d at %d:%d", c, i%width, i/width)
		}
	}
	return &Board{Width: width, Height: height, Cells: cells}, nil
}

func (b Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

func (b Board) At(x, y int) CellState {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board access out of bounds: %d:%d", x, y))
	}
	return b.Cells[y*b.Width+x]
}

func (b Board) Index(p Point) int {
	return p.Y*b.Width + p.X
}

// Points iterates all cells in stable row-major order.
func (b Board) Points() iter.Seq2[Point, CellState] {
	return func(yield func(Point, CellState) bool) {
		for y := range b.Height {
			for x := range b.Width {
				if !yield(Point{x, y}, b.Cells[y*b.Width+x]) {
					return
				}
			}
		}
	}
}

// Neighbors returns the 8-connected neighbors of x:y clipped at the
// board edges, in row-major order.
func (b Board) Neighbors(x, y int) []Point {
	ps := make([]Point, 0, 8)
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				ps = append(ps, Point{x + dx, y + dy})
			}
		}
	}
	return ps
}

func (b Board) CountState(s CellState) (count int) {
	for _, c := range b.Cells {
		if c == s {
			count++
		}
	}
	return
}

func (b Board) String() string {
	return b.Cells.ToString(b.Width)
}
