package render

import (
	"image"
	"time"

	"golang.org/x/image/colornames"

	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/tetris"
)

// Effect timings.
const (
	FlashPhase  = 40 * time.Millisecond
	FlashCycles = 2
	RampStep    = 10 * time.Millisecond
	RampDelta   = 5
)

// FlashDuration is the length of one line flash.
const FlashDuration = 2 * FlashCycles * FlashPhase

// RampDuration is the length of the game-over ramp, 0 to 255 inclusive.
const RampDuration = (255/RampDelta + 1) * RampStep

// Effect is an animation drawn over the composed game layers. Draw paints
// the effect as it looks at now and reports whether it is still running.
type Effect interface {
	Draw(buf *matrix.Buffer, now time.Duration) bool
}

var (
	_ Effect = LineFlash{}
	_ Effect = GameOverRamp{}
)

// LineFlash blinks a cleared grid row white, alternating with a black
// frame.
type LineFlash struct {
	Row    int
	Start  time.Duration
	Origin image.Point
}

func (f LineFlash) Draw(buf *matrix.Buffer, now time.Duration) bool {
	elapsed := now - f.Start
	if elapsed < 0 {
		return true
	}
	phase := int(elapsed / FlashPhase)
	if phase >= 2*FlashCycles {
		return false
	}

	if phase%2 == 1 {
		buf.Clear()
		return true
	}
	for x := 0; x < tetris.GridW; x++ {
		buf.Set(f.Origin.X+x, f.Origin.Y+f.Row, colornames.White)
	}
	return true
}

// GameOverRamp fades the whole panel up to full red and holds it.
type GameOverRamp struct {
	Start time.Duration
}

// Level returns the red level at now.
func (r GameOverRamp) Level(now time.Duration) uint8 {
	elapsed := now - r.Start
	if elapsed < 0 {
		return 0
	}
	level := int(elapsed/RampStep) * RampDelta
	return uint8(min(level, 255))
}

func (r GameOverRamp) Draw(buf *matrix.Buffer, now time.Duration) bool {
	buf.Fill(matrix.RGB(r.Level(now), 0, 0))
	return now-r.Start < RampDuration
}
