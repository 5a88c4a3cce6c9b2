package tetris

// Playfield dimensions. Row 0 is the top row.
const (
	GridW = 10
	GridH = 18
)

// Grid is the occupancy matrix of locked cells. It never holds the falling
// piece. The backing array is fixed-size, so a Grid can be copied by value
// and compaction never allocates.
type Grid struct {
	cells [GridH][GridW]bool
}

func inBounds(x, y int) bool {
	return x >= 0 && x < GridW && y >= 0 && y < GridH
}

// IsOccupied reports whether the cell at column x, row y holds a locked block.
// Out-of-range coordinates report false.
func (g *Grid) IsOccupied(x, y int) bool {
	if !inBounds(x, y) {
		return false
	}
	return g.cells[y][x]
}

// SetOccupied marks a cell as locked. Out-of-range writes are ignored.
func (g *Grid) SetOccupied(x, y int) {
	if !inBounds(x, y) {
		return
	}
	g.cells[y][x] = true
}

// ClearAll empties every cell.
func (g *Grid) ClearAll() {
	g.cells = [GridH][GridW]bool{}
}

// RowFull reports whether every column of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= GridH {
		return false
	}
	for _, occupied := range g.cells[y] {
		if !occupied {
			return false
		}
	}
	return true
}

// CompactAfterClear removes row y, shifts every row above it down by one and
// inserts an empty row at the top.
func (g *Grid) CompactAfterClear(y int) {
	if y < 0 || y >= GridH {
		return
	}
	for row := y; row > 0; row-- {
		g.cells[row] = g.cells[row-1]
	}
	g.cells[0] = [GridW]bool{}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for y := range g.cells {
		for _, occupied := range g.cells[y] {
			if occupied {
				n++
			}
		}
	}
	return n
}
