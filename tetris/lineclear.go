package tetris

// ClearLines removes every full row, scanning from the bottom up. For each
// full row onClear is called with the row index before the grid is compacted.
// The same index is examined again after compaction because the row above
// has moved into it. It returns the number of rows removed.
func ClearLines(g *Grid, onClear func(row int)) int {
	cleared := 0
	for y := GridH - 1; y >= 0; {
		if !g.RowFull(y) {
			y--
			continue
		}

		if onClear != nil {
			onClear(y)
		}
		g.CompactAfterClear(y)
		cleared++
	}
	return cleared
}
