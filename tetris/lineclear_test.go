package tetris_test

import (
	"testing"

	"github.com/plus3/ledtris/tetris"
	"github.com/stretchr/testify/assert"
)

func TestClearBottomRow(t *testing.T) {
	var g tetris.Grid
	fillRow(&g, tetris.GridH-1)

	score := 0
	var rows []int
	n := tetris.ClearLines(&g, func(row int) {
		score++
		rows = append(rows, row)
	})

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, score)
	assert.Equal(t, []int{tetris.GridH - 1}, rows)
	assert.Equal(t, 0, g.Count())
}

func TestClearNothing(t *testing.T) {
	var g tetris.Grid
	fillRow(&g, tetris.GridH-1, 0)
	before := g

	n := tetris.ClearLines(&g, nil)

	assert.Equal(t, 0, n)
	assert.Equal(t, before, g)
}

func TestClearNonAdjacentRows(t *testing.T) {
	var g tetris.Grid
	bottom := tetris.GridH - 1
	fillRow(&g, bottom)
	fillRow(&g, bottom-1, 3)
	fillRow(&g, bottom-2)
	g.SetOccupied(7, bottom-3)

	var rows []int
	n := tetris.ClearLines(&g, func(row int) { rows = append(rows, row) })

	assert.Equal(t, 2, n)
	// After the first compaction the partial row drops to the bottom and the
	// second full row is found one index higher.
	assert.Equal(t, []int{bottom, bottom - 1}, rows)

	for x := 0; x < tetris.GridW; x++ {
		assert.Equal(t, x != 3, g.IsOccupied(x, bottom), "column %d", x)
	}
	assert.True(t, g.IsOccupied(7, bottom-1))
	assert.Equal(t, tetris.GridW-1+1, g.Count())
}

func TestClearStackedRowsShiftsRemainderByN(t *testing.T) {
	var g tetris.Grid
	const n = 3
	bottom := tetris.GridH - 1
	for i := range n {
		fillRow(&g, bottom-i)
	}
	// Partial rows sitting on top of the full block.
	fillRow(&g, bottom-n, 0)
	fillRow(&g, bottom-n-1, 0, 1)
	g.SetOccupied(5, bottom-n-2)
	before := g

	score := 0
	cleared := tetris.ClearLines(&g, func(int) { score++ })

	assert.Equal(t, n, cleared)
	assert.Equal(t, n, score)
	for y := bottom; y >= n; y-- {
		for x := 0; x < tetris.GridW; x++ {
			assert.Equal(t, before.IsOccupied(x, y-n), g.IsOccupied(x, y), "cell %d,%d", x, y)
		}
	}
	assert.Equal(t, before.Count()-n*tetris.GridW, g.Count())
}
