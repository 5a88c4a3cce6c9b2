package tetris

// Collides reports whether shape s placed with its top-left corner at (x, y)
// leaves the playfield through a side or the floor, or overlaps a locked cell.
// Cells above the top row are never tested against the grid, so a piece may
// hang partly above the visible field.
func Collides(g *Grid, s Shape, x, y int) bool {
	for cell := range s.Cells() {
		gx := x + cell.X
		gy := y + cell.Y

		if gx < 0 || gx >= GridW || gy >= GridH {
			return true
		}

		if gy >= 0 && g.IsOccupied(gx, gy) {
			return true
		}
	}

	return false
}
