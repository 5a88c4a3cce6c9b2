// Package render projects engine frames onto the LED panel.
package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/colornames"

	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/tetris"
)

// Default placement and palette of the playfield.
var (
	DefaultOrigin = image.Point{X: 4, Y: 1}

	BackgroundColor = matrix.Gray(3)
	BorderColor     = matrix.Gray(40)
	LockedColor     = colornames.Blue
)

// GlowDivisor sets how much of a piece color bleeds into its neighbours.
const GlowDivisor = 6

// Option configures a Projector.
type Option func(*Projector)

// WithOrigin moves the playfield on the panel.
func WithOrigin(origin image.Point) Option {
	return func(p *Projector) {
		p.origin = origin
	}
}

// WithLayout sets the panel geometry. It must match the sink.
func WithLayout(layout matrix.Layout) Option {
	return func(p *Projector) {
		p.layout = layout
	}
}

// Projector composes engine frames into a buffer and pushes them to a
// sink. Effects run against the frame time, so a flash or the game-over
// ramp never holds up the engine.
type Projector struct {
	sink   matrix.Sink
	layout matrix.Layout
	origin image.Point
	buf    *matrix.Buffer

	flashes   []Effect
	flashEnd  time.Duration
	ramp      Effect
	committed int
}

// NewProjector renders into sink.
func NewProjector(sink matrix.Sink, opts ...Option) *Projector {
	p := &Projector{
		sink:   sink,
		layout: matrix.Default(),
		origin: DefaultOrigin,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.buf = matrix.NewBuffer(p.layout)
	return p
}

// Buffer returns the last composed frame.
func (p *Projector) Buffer() *matrix.Buffer {
	return p.buf
}

// Commits returns how many frames were pushed to the sink.
func (p *Projector) Commits() int {
	return p.committed
}

// Animating reports whether an effect is still running.
func (p *Projector) Animating() bool {
	return p.ramp != nil || len(p.flashes) > 0
}

// Render consumes the frame's events, composes the panel and commits it.
// Nothing is drawn while the engine is idle or over and no effect runs.
// rendered reports whether the sink was committed.
func (p *Projector) Render(f *tetris.Frame) (rendered bool, err error) {
	p.observe(f)

	if f.State != tetris.StatePlaying && !p.Animating() {
		return false, nil
	}

	p.buf.Clear()
	if f.State == tetris.StatePlaying {
		p.drawBackground(f)
		p.drawBorder()
		p.drawLocked(f)
		p.drawPiece(f)
	}
	p.drawEffects(f.At)

	p.buf.CopyTo(p.sink)
	p.committed++
	if err := p.sink.Commit(); err != nil {
		return true, fmt.Errorf("commit frame: %w", err)
	}
	return true, nil
}

func (p *Projector) observe(f *tetris.Frame) {
	for _, ev := range f.Events {
		switch ev.Kind {
		case tetris.EventStarted:
			p.flashes = p.flashes[:0]
			p.flashEnd = 0
			p.ramp = nil
		case tetris.EventLineCleared:
			start := max(ev.At, p.flashEnd)
			p.flashes = append(p.flashes, LineFlash{Row: ev.Row, Start: start, Origin: p.origin})
			p.flashEnd = start + FlashDuration
		case tetris.EventGameOver:
			p.flashes = p.flashes[:0]
			p.ramp = GameOverRamp{Start: ev.At}
		}
	}
}

func (p *Projector) drawEffects(now time.Duration) {
	if p.ramp != nil {
		if !p.ramp.Draw(p.buf, now) {
			p.ramp = nil
		}
		return
	}

	for len(p.flashes) > 0 {
		if p.flashes[0].Draw(p.buf, now) {
			return
		}
		p.flashes = p.flashes[1:]
	}
}

func (p *Projector) cell(x, y int) (int, int) {
	return p.origin.X + x, p.origin.Y + y
}

func (p *Projector) drawBackground(f *tetris.Frame) {
	for y := 0; y < tetris.GridH; y++ {
		for x := 0; x < tetris.GridW; x++ {
			if !f.Occupied(x, y) {
				px, py := p.cell(x, y)
				p.buf.Add(px, py, BackgroundColor)
			}
		}
	}
}

func (p *Projector) drawBorder() {
	for y := 0; y < tetris.GridH; y++ {
		p.set(-1, y, BorderColor)
		p.set(tetris.GridW, y, BorderColor)
	}
	for x := 0; x < tetris.GridW; x++ {
		p.set(x, -1, BorderColor)
		p.set(x, tetris.GridH, BorderColor)
	}
}

func (p *Projector) drawLocked(f *tetris.Frame) {
	for y := 0; y < tetris.GridH; y++ {
		for x := 0; x < tetris.GridW; x++ {
			if f.Occupied(x, y) {
				p.set(x, y, LockedColor)
			}
		}
	}
}

func (p *Projector) drawPiece(f *tetris.Frame) {
	c := f.Piece.Shape.Color
	glow := matrix.Div(c, GlowDivisor)
	for cell := range f.PieceCells() {
		p.set(cell.X, cell.Y, c)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := cell.X+dx, cell.Y+dy
				if nx >= 0 && nx < tetris.GridW && ny >= 0 && ny < tetris.GridH {
					x, y := p.cell(nx, ny)
					p.buf.Add(x, y, glow)
				}
			}
		}
	}
}

func (p *Projector) set(x, y int, c color.RGBA) {
	px, py := p.cell(x, y)
	p.buf.Set(px, py, c)
}
