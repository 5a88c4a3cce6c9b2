// Package systems holds the scheduler stages that drive a session. Binaries
// register Input and Game first, then Snapshot ahead of Render, then the
// event consumers.
package systems

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/plus3/ledtris/loop"
	"github.com/plus3/ledtris/render"
	"github.com/plus3/ledtris/snapshot"
	"github.com/plus3/ledtris/tetris"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger routes system diagnostics to l. A nil logger silences them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// CommandSource delivers controller commands without blocking.
type CommandSource interface {
	Drain(q *tetris.CommandQueue) int
}

// Input drains every source into the shared command queue.
type Input struct {
	Sources []CommandSource
	Queue   *tetris.CommandQueue

	dropped int
}

func (s *Input) Execute(*loop.UpdateFrame) {
	for _, src := range s.Sources {
		src.Drain(s.Queue)
	}
	if d := s.Queue.Dropped(); d != s.dropped {
		logger.Load().Warn("command queue overflow", "dropped", d-s.dropped, "total", d)
		s.dropped = d
	}
}

// Game advances the engine with the queued commands and keeps the
// resulting frame for the stages after it.
type Game struct {
	Engine *tetris.Engine
	Queue  *tetris.CommandQueue

	frame  tetris.Frame
	inputs []tetris.Command
}

func (s *Game) Execute(frame *loop.UpdateFrame) {
	s.inputs = s.Queue.Drain(s.inputs[:0])
	s.frame = s.Engine.Advance(frame.Now, s.inputs)
}

// Frame returns the frame produced by the last tick.
func (s *Game) Frame() *tetris.Frame {
	return &s.frame
}

// Events returns the events of the last tick.
func (s *Game) Events() []tetris.Event {
	return s.frame.Events
}

// Render projects the last frame. Commit failures are logged and the
// loop carries on.
type Render struct {
	Game      *Game
	Projector *render.Projector

	failures int
}

func (s *Render) Execute(*loop.UpdateFrame) {
	if _, err := s.Projector.Render(s.Game.Frame()); err != nil {
		s.failures++
		if s.failures == 1 || s.failures%100 == 0 {
			logger.Load().Error("render failed", "err", err, "failures", s.failures)
		}
	}
}

// StatusWriter receives status-bearing events.
type StatusWriter interface {
	WriteEvents(events []tetris.Event) error
}

// Status forwards SCORE and GAME_OVER lines.
type Status struct {
	Game   *Game
	Writer StatusWriter
}

func (s *Status) Execute(*loop.UpdateFrame) {
	if err := s.Writer.WriteEvents(s.Game.Events()); err != nil {
		logger.Load().Error("status write failed", "err", err)
	}
}

// Countdown writes the session clock as "Time: 12s / 30s" whenever the
// shown second changes. Nothing is written while idle.
type Countdown struct {
	Game   *Game
	Writer io.Writer

	shown bool
	secs  time.Duration
}

func (s *Countdown) Execute(*loop.UpdateFrame) {
	f := s.Game.Frame()
	if f.Has(tetris.EventStarted) {
		s.shown = false
	}
	if f.State == tetris.StateIdle {
		return
	}

	secs := f.Elapsed / time.Second
	if s.shown && secs == s.secs {
		return
	}
	s.shown, s.secs = true, secs

	total := s.Game.Engine.Config().SessionDuration / time.Second
	if _, err := fmt.Fprintf(s.Writer, "Time: %ds / %ds\n", int64(secs), int64(total)); err != nil {
		logger.Load().Warn("countdown write failed", "err", err)
	}
}

// EventObserver consumes the events of every tick.
type EventObserver interface {
	Observe(events []tetris.Event) error
}

// Observe feeds tick events to an observer such as the audio chime.
type Observe struct {
	Game     *Game
	Observer EventObserver
}

func (s *Observe) Execute(*loop.UpdateFrame) {
	if err := s.Observer.Observe(s.Game.Events()); err != nil {
		logger.Load().Warn("event observer failed", "err", err)
	}
}

// Snapshot saves the final board of a session to Path. It must run before
// Render so the projector still holds the last frame drawn while playing.
type Snapshot struct {
	Game      *Game
	Projector *render.Projector
	Path      string
	Scale     int

	Saved int
}

func (s *Snapshot) Execute(frame *loop.UpdateFrame) {
	if !s.Game.Frame().Has(tetris.EventGameOver) {
		return
	}

	board := s.Projector.Buffer().Clone()
	frame.Commands.Defer(func() {
		if err := snapshot.SaveFile(s.Path, board, s.Scale); err != nil {
			logger.Load().Error("snapshot failed", "path", s.Path, "err", err)
			return
		}
		s.Saved++
		logger.Load().Info("snapshot saved", "path", s.Path)
	})
}
