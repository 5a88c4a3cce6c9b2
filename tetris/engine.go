// Package tetris implements the falling-block game engine behind the LED
// matrix: the locked-cell grid, the shape catalog, collision, line clearing
// and the session state machine.
//
// The engine never blocks and never reads a clock. A driver calls Advance
// with the current monotonic time and the commands received since the last
// call, and renders the returned Frame.
package tetris

import (
	"log/slog"
	"time"
)

// State is the session state.
type State uint8

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Engine owns every piece of game state. It is not safe for concurrent use;
// a single control loop drives it.
type Engine struct {
	cfg     Config
	catalog Catalog
	picker  Picker

	grid     Grid
	state    State
	score    int
	piece    Piece
	hasPiece bool

	sessionStart time.Duration
	lastFall     time.Duration
	endedAt      time.Duration

	events []Event
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:     DefaultConfig(),
		catalog: DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.picker == nil {
		e.picker = NewRandomPicker(uint64(time.Now().UnixNano()))
	}
	return e
}

// Advance runs one loop iteration: every input is applied in order, then the
// session timer and the fall tick are evaluated. The returned frame carries
// the events produced since the previous Advance.
func (e *Engine) Advance(now time.Duration, inputs []Command) Frame {
	for _, cmd := range inputs {
		e.Apply(now, cmd)
	}
	e.Tick(now)
	return e.Snapshot(now)
}

// Apply handles a single command. Start is honoured in every state and
// performs a full reset. Moves are only accepted while playing; a move that
// would collide is silently rejected. It reports whether the command changed
// anything.
func (e *Engine) Apply(now time.Duration, cmd Command) bool {
	if cmd == CmdStart {
		e.Start(now)
		return true
	}

	if e.state != StatePlaying || !e.hasPiece {
		return false
	}

	switch cmd {
	case CmdLeft:
		return e.tryMove(-1, 0)
	case CmdRight:
		return e.tryMove(1, 0)
	case CmdDown:
		return e.tryMove(0, 1)
	default:
		return false
	}
}

// Start clears the grid, resets the score and timers and spawns a piece.
func (e *Engine) Start(now time.Duration) {
	e.grid.ClearAll()
	e.score = 0
	e.sessionStart = now
	e.lastFall = now
	e.endedAt = 0
	e.state = StatePlaying
	e.hasPiece = false

	e.emit(Event{Kind: EventStarted, At: now})
	Logger().Info("session started", slog.Duration("at", now))

	e.spawn(now)
}

// Tick evaluates the session timer and then the fall tick. The timer is
// checked first; when it expires the fall tick is skipped.
func (e *Engine) Tick(now time.Duration) {
	if e.state != StatePlaying {
		return
	}

	if now-e.sessionStart > e.cfg.SessionDuration {
		e.gameOver(now)
		return
	}

	if now-e.lastFall > e.cfg.FallInterval {
		e.fall(now)
		e.lastFall = now
	}
}

// Snapshot returns the current frame and hands over pending events.
func (e *Engine) Snapshot(now time.Duration) Frame {
	f := Frame{
		At:       now,
		State:    e.state,
		Score:    e.score,
		Grid:     e.grid,
		Piece:    e.piece,
		HasPiece: e.hasPiece,
		Events:   e.events,
	}
	e.events = nil

	switch e.state {
	case StatePlaying:
		f.Elapsed = now - e.sessionStart
	case StateGameOver:
		f.Elapsed = e.endedAt - e.sessionStart
	}
	if e.state != StateIdle {
		f.Remaining = max(e.cfg.SessionDuration-f.Elapsed, 0)
	}
	return f
}

func (e *Engine) fall(now time.Duration) {
	if !e.hasPiece {
		return
	}

	if e.tryMove(0, 1) {
		return
	}

	e.lock(now)
	ClearLines(&e.grid, func(row int) {
		e.score++
		e.emit(Event{Kind: EventLineCleared, At: now, Row: row, Score: e.score})
		e.emit(Event{Kind: EventScore, At: now, Score: e.score})
		Logger().Info("line cleared", slog.Int("row", row), slog.Int("score", e.score))
	})
	e.spawn(now)
}

func (e *Engine) tryMove(dx, dy int) bool {
	x, y := e.piece.X+dx, e.piece.Y+dy
	if Collides(&e.grid, e.piece.Shape, x, y) {
		return false
	}
	e.piece.X, e.piece.Y = x, y
	return true
}

func (e *Engine) lock(now time.Duration) {
	for p := range e.piece.Cells() {
		e.grid.SetOccupied(p.X, p.Y)
	}
	e.emit(Event{Kind: EventLocked, At: now, Piece: e.piece})
	Logger().Debug("piece locked",
		slog.String("shape", e.piece.Shape.Name),
		slog.Int("x", e.piece.X),
		slog.Int("y", e.piece.Y))
	e.hasPiece = false
}

func (e *Engine) spawn(now time.Duration) {
	id := e.picker.Pick(e.catalog.Len())
	shape := e.catalog.Get(id)
	x, y := shape.SpawnOffset()

	e.piece = Piece{ID: id, Shape: shape, X: x, Y: y}
	e.hasPiece = true
	e.emit(Event{Kind: EventSpawned, At: now, Piece: e.piece})

	if Collides(&e.grid, shape, x, y) {
		Logger().Warn("piece spawned over locked cells", slog.String("shape", shape.Name))
		if e.cfg.EndOnBlockedSpawn {
			e.gameOver(now)
		}
	}
}

func (e *Engine) gameOver(now time.Duration) {
	e.state = StateGameOver
	e.hasPiece = false
	e.piece = Piece{}
	e.endedAt = min(now, e.sessionStart+e.cfg.SessionDuration)
	e.emit(Event{Kind: EventGameOver, At: now, Score: e.score})
	Logger().Info("game over", slog.Int("score", e.score))
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// State returns the session state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the number of rows cleared this session.
func (e *Engine) Score() int {
	return e.score
}

// Active returns the falling piece, if any.
func (e *Engine) Active() (Piece, bool) {
	return e.piece, e.hasPiece
}

// Grid returns a copy of the locked-cell grid.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Config returns the timing rules in effect.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the shape catalog.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}
