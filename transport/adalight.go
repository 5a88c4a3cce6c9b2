package transport

import (
	"fmt"
	"image/color"
	"io"

	"github.com/plus3/ledtris/matrix"
)

// DefaultBrightness is the panel brightness out of 255.
const DefaultBrightness = 120

// ColorOrder is the byte order the LED controller expects per pixel.
type ColorOrder uint8

const (
	OrderRGB ColorOrder = iota
	OrderGRB
)

const adalightHeaderLen = 6

// AdalightHeader returns the frame header for n LEDs: the magic word, the
// LED count minus one as big-endian uint16 and its checksum.
func AdalightHeader(n int) [adalightHeaderLen]byte {
	count := uint16(max(n-1, 0))
	hi, lo := byte(count>>8), byte(count)
	return [adalightHeaderLen]byte{'A', 'd', 'a', hi, lo, hi ^ lo ^ 0x55}
}

// AppendAdalight appends one encoded frame to dst.
func AppendAdalight(dst []byte, pixels []color.RGBA, brightness uint8, order ColorOrder) []byte {
	header := AdalightHeader(len(pixels))
	dst = append(dst, header[:]...)
	for _, c := range pixels {
		c = matrix.Scale(c, brightness)
		switch order {
		case OrderGRB:
			dst = append(dst, c.G, c.R, c.B)
		default:
			dst = append(dst, c.R, c.G, c.B)
		}
	}
	return dst
}

// AdalightOption configures an AdalightSink.
type AdalightOption func(*AdalightSink)

// WithBrightness scales every pixel on commit.
func WithBrightness(b uint8) AdalightOption {
	return func(s *AdalightSink) {
		s.brightness = b
	}
}

// WithColorOrder selects the pixel byte order.
func WithColorOrder(o ColorOrder) AdalightOption {
	return func(s *AdalightSink) {
		s.order = o
	}
}

// WithLayout sets the panel geometry.
func WithLayout(l matrix.Layout) AdalightOption {
	return func(s *AdalightSink) {
		s.layout = l
	}
}

// AdalightSink streams committed frames to an LED controller speaking the
// Adalight protocol. Frames identical to the last one sent are skipped.
type AdalightSink struct {
	*matrix.Buffer

	w          io.Writer
	layout     matrix.Layout
	brightness uint8
	order      ColorOrder
	tracker    *matrix.Tracker
	scratch    []byte

	sent    int
	skipped int
	closed  bool
}

// NewAdalightSink writes frames to w.
func NewAdalightSink(w io.Writer, opts ...AdalightOption) *AdalightSink {
	s := &AdalightSink{
		w:          w,
		layout:     matrix.Default(),
		brightness: DefaultBrightness,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Buffer = matrix.NewBuffer(s.layout)
	s.tracker = matrix.NewTracker(s.layout.Len())
	s.scratch = make([]byte, 0, adalightHeaderLen+3*s.layout.Len())
	return s
}

// Commit sends the buffer unless nothing changed since the last frame.
func (s *AdalightSink) Commit() error {
	if s.closed {
		return ErrClosed
	}

	changes := s.tracker.Diff(s.Buffer)
	if len(changes) == 0 && s.sent > 0 {
		s.skipped++
		return nil
	}

	s.scratch = AppendAdalight(s.scratch[:0], s.Pixels(), s.brightness, s.order)
	if _, err := s.w.Write(s.scratch); err != nil {
		s.tracker.Reset()
		return fmt.Errorf("write led frame: %w", err)
	}
	s.sent++
	log().Debug("led frame", "changed", len(changes), "lit", s.tracker.Lit())
	return nil
}

// Sent returns the number of frames written.
func (s *AdalightSink) Sent() int {
	return s.sent
}

// Skipped returns the number of commits dropped as unchanged.
func (s *AdalightSink) Skipped() int {
	return s.skipped
}

// Close blanks the panel and closes w if it is an io.Closer.
func (s *AdalightSink) Close() error {
	if s.closed {
		return nil
	}
	s.Clear()
	blank := AppendAdalight(nil, s.Pixels(), s.brightness, s.order)
	_, werr := s.w.Write(blank)
	s.closed = true

	if c, ok := s.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close led link: %w", err)
		}
	}
	if werr != nil {
		return fmt.Errorf("blank led panel: %w", werr)
	}
	return nil
}
