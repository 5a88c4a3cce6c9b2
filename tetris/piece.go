package tetris

import (
	"image/color"
	"iter"
	"math/rand/v2"

	"golang.org/x/image/colornames"
)

// ShapeID indexes a shape in a Catalog.
type ShapeID int

// Shape is an immutable piece definition: a cell mask anchored at the top-left
// corner, its bounding box and its display color.
type Shape struct {
	Name   string
	Mask   [4][4]bool
	Width  int
	Height int
	Color  color.RGBA
}

// Point is a cell coordinate, X being the column and Y the row.
type Point struct {
	X, Y int
}

// Cells yields the occupied cells of the mask relative to the shape origin.
func (s Shape) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				if !s.Mask[y][x] {
					continue
				}
				if !yield(Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// CellCount returns the number of occupied mask cells.
func (s Shape) CellCount() int {
	n := 0
	for range s.Cells() {
		n++
	}
	return n
}

// SpawnOffset is where a fresh piece of this shape appears: horizontally
// centered (truncating) on the top row.
func (s Shape) SpawnOffset() (x, y int) {
	return (GridW - s.Width) / 2, 0
}

// Catalog is the fixed set of playable shapes.
type Catalog [4]Shape

// Get returns the shape for id.
func (c Catalog) Get(id ShapeID) Shape {
	return c[id]
}

// Len returns the number of shapes.
func (c Catalog) Len() int {
	return len(c)
}

// DefaultCatalog returns the four shapes the matrix game ships with.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Name:   "O",
			Mask:   [4][4]bool{{true, true}, {true, true}},
			Width:  2,
			Height: 2,
			Color:  colornames.Yellow,
		},
		{
			Name:   "L",
			Mask:   [4][4]bool{{true, false}, {true, false}, {true, true}},
			Width:  2,
			Height: 3,
			Color:  colornames.Orange,
		},
		{
			Name:   "Z",
			Mask:   [4][4]bool{{true, true, false}, {false, true, true}},
			Width:  3,
			Height: 2,
			Color:  colornames.Red,
		},
		{
			Name:   "T",
			Mask:   [4][4]bool{{false, true, false}, {true, true, true}},
			Width:  3,
			Height: 2,
			Color:  colornames.Purple,
		},
	}
}

// Picker chooses the shape of the next spawned piece.
type Picker interface {
	Pick(n int) ShapeID
}

// RandomPicker draws shape ids uniformly from [0, n).
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker returns a picker seeded with seed.
func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPicker) Pick(n int) ShapeID {
	return ShapeID(p.rng.IntN(n))
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) ShapeID

func (f PickerFunc) Pick(n int) ShapeID {
	return f(n)
}
