package render_test

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/render"
	"github.com/plus3/ledtris/tetris"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func newProjector() (*render.Projector, *matrix.Canvas) {
	canvas := matrix.NewCanvas(matrix.Default(), nil)
	return render.NewProjector(canvas), canvas
}

func playingFrame(at time.Duration) tetris.Frame {
	return tetris.Frame{At: at, State: tetris.StatePlaying}
}

// panel converts grid coordinates to panel coordinates for the default origin.
func panel(x, y int) (int, int) {
	return x + render.DefaultOrigin.X, y + render.DefaultOrigin.Y
}

func at(c *matrix.Canvas, gx, gy int) color.RGBA {
	return c.At(panel(gx, gy))
}

func TestProjectorSkipsIdleFrames(t *testing.T) {
	p, canvas := newProjector()

	rendered, err := p.Render(&tetris.Frame{State: tetris.StateIdle})
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.Zero(t, canvas.Commits())
}

func TestProjectorLayers(t *testing.T) {
	p, canvas := newProjector()

	f := playingFrame(ms(10))
	f.Grid.SetOccupied(0, tetris.GridH-1)
	f.Piece = tetris.Piece{ID: 0, Shape: tetris.DefaultCatalog().Get(0), X: 4, Y: 0}
	f.HasPiece = true

	rendered, err := p.Render(&f)
	require.NoError(t, err)
	require.True(t, rendered)
	assert.Equal(t, 1, canvas.Commits())

	yellow := colornames.Yellow
	for _, c := range [][2]int{{4, 0}, {5, 0}, {4, 1}, {5, 1}} {
		assert.Equal(t, yellow, at(canvas, c[0], c[1]), "piece cell %v", c)
	}

	assert.Equal(t, matrix.RGB(87, 87, 3), at(canvas, 3, 0), "glow from two cells")
	assert.Equal(t, matrix.RGB(45, 45, 3), at(canvas, 6, 2), "glow from one cell")
	assert.Equal(t, render.BackgroundColor, at(canvas, 8, 8))
	assert.Equal(t, render.LockedColor, at(canvas, 0, tetris.GridH-1))

	assert.Equal(t, render.BorderColor, at(canvas, -1, 0))
	assert.Equal(t, render.BorderColor, at(canvas, tetris.GridW, 5))
	assert.Equal(t, render.BorderColor, at(canvas, 3, -1))
	assert.Equal(t, matrix.Black, at(canvas, -1, -1), "corners stay dark")
	assert.Equal(t, matrix.Black, canvas.At(0, 0))
}

func TestProjectorGlowStaysInsideGrid(t *testing.T) {
	p, canvas := newProjector()

	f := playingFrame(0)
	f.Piece = tetris.Piece{Shape: tetris.DefaultCatalog().Get(0), X: 0, Y: 0}
	f.HasPiece = true

	_, err := p.Render(&f)
	require.NoError(t, err)
	assert.Equal(t, render.BorderColor, at(canvas, -1, 0))
	assert.Equal(t, render.BorderColor, at(canvas, 0, -1))
}

func TestProjectorLineFlash(t *testing.T) {
	p, canvas := newProjector()
	bottom := tetris.GridH - 1

	f := playingFrame(ms(1000))
	f.Events = []tetris.Event{{Kind: tetris.EventLineCleared, At: ms(1000), Row: bottom}}
	_, err := p.Render(&f)
	require.NoError(t, err)
	assert.Equal(t, colornames.White, at(canvas, 0, bottom))
	assert.Equal(t, colornames.White, at(canvas, tetris.GridW-1, bottom))
	assert.Equal(t, render.BackgroundColor, at(canvas, 0, bottom-1))
	assert.True(t, p.Animating())

	steps := []struct {
		at    int
		white bool
	}{
		{1040, false},
		{1080, true},
		{1120, false},
	}
	for _, step := range steps {
		f = playingFrame(ms(step.at))
		_, err = p.Render(&f)
		require.NoError(t, err)
		if step.white {
			assert.Equal(t, colornames.White, at(canvas, 0, bottom), "t=%d", step.at)
		} else {
			for _, c := range canvas.Pixels() {
				require.Equal(t, matrix.Black, c, "t=%d", step.at)
			}
		}
	}

	f = playingFrame(ms(1160))
	_, err = p.Render(&f)
	require.NoError(t, err)
	assert.False(t, p.Animating())
	assert.Equal(t, render.BackgroundColor, at(canvas, 0, bottom))
}

func TestProjectorQueuesFlashes(t *testing.T) {
	p, canvas := newProjector()

	f := playingFrame(0)
	f.Events = []tetris.Event{
		{Kind: tetris.EventLineCleared, At: 0, Row: 17},
		{Kind: tetris.EventLineCleared, At: 0, Row: 10},
	}
	_, err := p.Render(&f)
	require.NoError(t, err)
	assert.Equal(t, colornames.White, at(canvas, 0, 17))
	assert.NotEqual(t, colornames.White, at(canvas, 0, 10))

	f = playingFrame(render.FlashDuration)
	_, err = p.Render(&f)
	require.NoError(t, err)
	assert.Equal(t, colornames.White, at(canvas, 0, 10))
	assert.NotEqual(t, colornames.White, at(canvas, 0, 17))
	assert.True(t, p.Animating())
}

func TestProjectorGameOverRamp(t *testing.T) {
	p, canvas := newProjector()

	f := tetris.Frame{At: ms(5000), State: tetris.StateGameOver}
	f.Events = []tetris.Event{{Kind: tetris.EventGameOver, At: ms(5000)}}
	rendered, err := p.Render(&f)
	require.NoError(t, err)
	require.True(t, rendered)
	assert.Equal(t, matrix.RGB(0, 0, 0), canvas.At(0, 0))

	levels := []struct {
		at    int
		level uint8
	}{
		{5100, 50},
		{5515, 255},
		{5600, 255},
	}
	for _, l := range levels {
		f = tetris.Frame{At: ms(l.at), State: tetris.StateGameOver}
		rendered, err = p.Render(&f)
		require.NoError(t, err)
		require.True(t, rendered, "t=%d", l.at)
		assert.Equal(t, matrix.RGB(l.level, 0, 0), canvas.At(18, 18), "t=%d", l.at)
	}
	assert.False(t, p.Animating())

	commits := canvas.Commits()
	f = tetris.Frame{At: ms(6000), State: tetris.StateGameOver}
	rendered, err = p.Render(&f)
	require.NoError(t, err)
	assert.False(t, rendered, "ramp holds without redrawing")
	assert.Equal(t, commits, canvas.Commits())
	assert.Equal(t, matrix.RGB(255, 0, 0), canvas.At(9, 9))
}

func TestProjectorStartCancelsEffects(t *testing.T) {
	p, _ := newProjector()

	f := tetris.Frame{At: 0, State: tetris.StateGameOver}
	f.Events = []tetris.Event{{Kind: tetris.EventGameOver}}
	_, err := p.Render(&f)
	require.NoError(t, err)
	require.True(t, p.Animating())

	f = playingFrame(ms(20))
	f.Events = []tetris.Event{{Kind: tetris.EventStarted, At: ms(20)}}
	_, err = p.Render(&f)
	require.NoError(t, err)
	assert.False(t, p.Animating())
	assert.Equal(t, render.BackgroundColor, p.Buffer().At(panel(0, 0)))
}

func TestProjectorCommitError(t *testing.T) {
	boom := errors.New("link down")
	canvas := matrix.NewCanvas(matrix.Default(), func(*matrix.Buffer) error { return boom })
	p := render.NewProjector(canvas)

	f := playingFrame(0)
	rendered, err := p.Render(&f)
	assert.True(t, rendered)
	assert.ErrorIs(t, err, boom)
}

func TestGameOverRampLevel(t *testing.T) {
	r := render.GameOverRamp{Start: ms(100)}
	assert.Equal(t, uint8(0), r.Level(ms(50)))
	assert.Equal(t, uint8(0), r.Level(ms(109)))
	assert.Equal(t, uint8(5), r.Level(ms(110)))
	assert.Equal(t, uint8(255), r.Level(ms(100)+render.RampDuration))
	assert.Equal(t, 520*time.Millisecond, render.RampDuration)
	assert.Equal(t, 160*time.Millisecond, render.FlashDuration)
}

func TestEffectsReportCompletion(t *testing.T) {
	buf := matrix.NewBuffer(matrix.Default())
	effects := []struct {
		name   string
		effect render.Effect
		end    time.Duration
	}{
		{"flash", render.LineFlash{Row: 3, Start: ms(100), Origin: render.DefaultOrigin}, ms(100) + render.FlashDuration},
		{"ramp", render.GameOverRamp{Start: ms(100)}, ms(100) + render.RampDuration},
	}
	for _, tc := range effects {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.effect.Draw(buf, ms(50)), "not started yet")
			assert.True(t, tc.effect.Draw(buf, tc.end-time.Millisecond))
			assert.False(t, tc.effect.Draw(buf, tc.end))
		})
	}
}
