package matrix

import "image/color"

// Black is an unlit LED.
var Black = color.RGBA{A: 0xff}

// Sink receives a frame pixel by pixel and publishes it on Commit.
// Writes outside the panel are ignored by the sink.
type Sink interface {
	Set(x, y int, c color.RGBA)
	Commit() error
}

// Buffer is a frame stored in strip order.
type Buffer struct {
	layout Layout
	pixels []color.RGBA
}

// NewBuffer allocates an unlit frame for layout.
func NewBuffer(layout Layout) *Buffer {
	b := &Buffer{
		layout: layout,
		pixels: make([]color.RGBA, layout.Len()),
	}
	b.Clear()
	return b
}

// Layout returns the buffer geometry.
func (b *Buffer) Layout() Layout {
	return b.layout
}

// Set writes one pixel. Off-panel writes are ignored.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if i, ok := b.layout.Index(x, y); ok {
		b.pixels[i] = c
	}
}

// Add blends c into a pixel with per-channel saturation.
func (b *Buffer) Add(x, y int, c color.RGBA) {
	if i, ok := b.layout.Index(x, y); ok {
		b.pixels[i] = AddSat(b.pixels[i], c)
	}
}

// At returns the pixel at (x, y), or Black off the panel.
func (b *Buffer) At(x, y int) color.RGBA {
	if i, ok := b.layout.Index(x, y); ok {
		return b.pixels[i]
	}
	return Black
}

// Fill paints every pixel.
func (b *Buffer) Fill(c color.RGBA) {
	for i := range b.pixels {
		b.pixels[i] = c
	}
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.Fill(Black)
}

// Pixels exposes the frame in strip order. The slice aliases the buffer.
func (b *Buffer) Pixels() []color.RGBA {
	return b.pixels
}

// CopyTo writes every pixel into sink. It does not commit.
func (b *Buffer) CopyTo(sink Sink) {
	for i, c := range b.pixels {
		x, y, _ := b.layout.XY(i)
		sink.Set(x, y, c)
	}
}

// Canvas is a Sink backed by a Buffer. Commit hands the buffer to Present,
// if set, and counts the frame.
type Canvas struct {
	*Buffer
	Present func(*Buffer) error
	commits int
}

// NewCanvas returns a canvas over a fresh buffer.
func NewCanvas(layout Layout, present func(*Buffer) error) *Canvas {
	return &Canvas{Buffer: NewBuffer(layout), Present: present}
}

func (c *Canvas) Commit() error {
	c.commits++
	if c.Present == nil {
		return nil
	}
	return c.Present(c.Buffer)
}

// Commits returns the number of frames committed so far.
func (c *Canvas) Commits() int {
	return c.commits
}

// Clone returns an independent copy of the frame.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		layout: b.layout,
		pixels: append([]color.RGBA(nil), b.pixels...),
	}
}
