package terminal_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/terminal"
	"github.com/plus3/ledtris/tetris"
)

type cell struct {
	r     rune
	style tcell.Style
}

type fakeScreen struct {
	cells map[[2]int]cell
	shows int
}

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	if s.cells == nil {
		s.cells = make(map[[2]int]cell)
	}
	s.cells[[2]int{x, y}] = cell{r: primary, style: style}
}

func (s *fakeScreen) Show() { s.shows++ }

type scriptedEvents struct {
	events []tcell.Event
}

func (s *scriptedEvents) PollEvent() tcell.Event {
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func TestSinkDrawsDoubleWidthCells(t *testing.T) {
	screen := &fakeScreen{}
	sink := terminal.NewSink(screen, matrix.Serpentine(3, 3), 1, 2)

	lit := matrix.RGB(10, 20, 30)
	sink.Set(2, 1, lit)
	sink.Set(0, 0, matrix.Black)
	sink.Set(3, 0, lit)
	sink.Set(-1, 0, lit)
	require.NoError(t, sink.Commit())

	assert.Len(t, screen.cells, 4, "off-panel writes are ignored")
	assert.Equal(t, cell{'█', terminal.Style(lit)}, screen.cells[[2]int{5, 3}])
	assert.Equal(t, cell{'█', terminal.Style(lit)}, screen.cells[[2]int{6, 3}])
	assert.Equal(t, '·', screen.cells[[2]int{1, 2}].r)
	assert.Equal(t, 1, screen.shows)
}

func TestKeyCommand(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want tetris.Command
		ok   bool
	}{
		{tcell.KeyLeft, 0, tetris.CmdLeft, true},
		{tcell.KeyRight, 0, tetris.CmdRight, true},
		{tcell.KeyDown, 0, tetris.CmdDown, true},
		{tcell.KeyEnter, 0, tetris.CmdStart, true},
		{tcell.KeyRune, 's', tetris.CmdStart, true},
		{tcell.KeyRune, 'L', tetris.CmdLeft, true},
		{tcell.KeyRune, 'l', 0, false},
		{tcell.KeyUp, 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := terminal.KeyCommand(tc.key, tc.r)
		assert.Equal(t, tc.ok, ok, "key %v %q", tc.key, tc.r)
		assert.Equal(t, tc.want, got, "key %v %q", tc.key, tc.r)
	}

	assert.True(t, terminal.QuitKey(tcell.KeyEscape, 0))
	assert.True(t, terminal.QuitKey(tcell.KeyRune, 'q'))
	assert.False(t, terminal.QuitKey(tcell.KeyRune, 's'))
}

func TestPollKeysStopsWhenScreenCloses(t *testing.T) {
	keys := terminal.PollKeys(&scriptedEvents{events: []tcell.Event{tcell.NewEventResize(80, 24)}})

	select {
	case <-keys.Quit():
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}

	select {
	case <-keys.Resized():
	default:
		t.Fatal("resize not reported")
	}
	assert.Zero(t, keys.Drain(tetris.NewCommandQueue(4)))
}

func TestStatusLineShowsLastLine(t *testing.T) {
	screen := &fakeScreen{}
	line := terminal.NewStatusLine(screen, 0, 20, 12)

	n, err := line.Write([]byte("SCORE:1\nSCORE:2\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	var got []rune
	for x := 0; x < 12; x++ {
		got = append(got, screen.cells[[2]int{x, 20}].r)
	}
	assert.Equal(t, "SCORE:2     ", string(got))
	assert.Equal(t, 1, screen.shows)
}
