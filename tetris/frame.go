package tetris

import (
	"iter"
	"time"
)

// Piece is the falling piece: a catalog shape and the grid offset of its
// top-left corner.
type Piece struct {
	ID    ShapeID
	Shape Shape
	X, Y  int
}

// Cells yields the absolute grid coordinates covered by the piece.
func (p Piece) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for cell := range p.Shape.Cells() {
			if !yield(Point{X: p.X + cell.X, Y: p.Y + cell.Y}) {
				return
			}
		}
	}
}

// Frame is a self-contained snapshot of the engine after a tick. It owns a
// copy of the grid so renderers can keep it across ticks.
type Frame struct {
	At        time.Duration
	State     State
	Score     int
	Grid      Grid
	Piece     Piece
	HasPiece  bool
	Elapsed   time.Duration
	Remaining time.Duration
	Events    []Event
}

// Occupied reports whether the locked grid holds a block at (x, y).
func (f *Frame) Occupied(x, y int) bool {
	return f.Grid.IsOccupied(x, y)
}

// PieceCells yields the cells of the active piece, or nothing if there is none.
func (f *Frame) PieceCells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if !f.HasPiece {
			return
		}
		for p := range f.Piece.Cells() {
			if !yield(p) {
				return
			}
		}
	}
}

// Has reports whether an event of the given kind was produced in this frame.
func (f *Frame) Has(kind EventKind) bool {
	for _, ev := range f.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
