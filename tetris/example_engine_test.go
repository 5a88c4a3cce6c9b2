package tetris_test

import (
	"fmt"
	"time"

	"github.com/plus3/ledtris/tetris"
)

// ExampleEngine drives a session by hand. A driver normally calls Advance on
// every loop iteration with the monotonic time and the commands received
// since the previous call, then renders the frame and forwards status lines.
func ExampleEngine() {
	engine := tetris.NewEngine(tetris.WithPicker(tetris.PickerFunc(func(int) tetris.ShapeID {
		return 0
	})))

	frame := engine.Advance(0, tetris.ParseCommands([]byte("S")))
	fmt.Printf("%s %s at %d,%d\n", frame.State, frame.Piece.Shape.Name, frame.Piece.X, frame.Piece.Y)

	frame = engine.Advance(100*time.Millisecond, tetris.ParseCommands([]byte("R?D")))
	fmt.Printf("moved to %d,%d\n", frame.Piece.X, frame.Piece.Y)

	frame = engine.Advance(30*time.Second+time.Millisecond, nil)
	for _, ev := range frame.Events {
		if line, ok := ev.StatusLine(); ok {
			fmt.Println(line)
		}
	}
	fmt.Println(frame.State)

	// Output:
	// playing O at 4,0
	// moved to 5,1
	// GAME_OVER:0
	// game_over
}

// ExampleClearLines shows the bottom-up scan re-examining a row after
// compaction, so stacked full rows are all removed in one call.
func ExampleClearLines() {
	var grid tetris.Grid
	for y := tetris.GridH - 2; y < tetris.GridH; y++ {
		for x := 0; x < tetris.GridW; x++ {
			grid.SetOccupied(x, y)
		}
	}
	grid.SetOccupied(3, tetris.GridH-3)

	cleared := tetris.ClearLines(&grid, func(row int) {
		fmt.Println("clear row", row)
	})

	fmt.Println("cleared", cleared, "remaining", grid.Count(), "at bottom", grid.IsOccupied(3, tetris.GridH-1))

	// Output:
	// clear row 17
	// clear row 17
	// cleared 2 remaining 1 at bottom true
}
