package tetris

import (
	"strconv"
	"time"
)

// EventKind identifies what happened during a tick.
type EventKind uint8

const (
	// EventStarted is emitted when a start command resets the session.
	EventStarted EventKind = iota + 1
	// EventSpawned carries the newly spawned piece.
	EventSpawned
	// EventLocked carries the piece that was just committed to the grid.
	EventLocked
	// EventLineCleared carries the index of a row about to be compacted.
	EventLineCleared
	// EventScore carries the score after a line clear.
	EventScore
	// EventGameOver carries the final score.
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventLineCleared:
		return "line_cleared"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notification produced by the engine.
type Event struct {
	Kind  EventKind
	At    time.Duration
	Score int
	Row   int
	Piece Piece
}

// StatusLine renders the controller status line for the event, without a
// trailing newline. Only score and game over events have one.
func (e Event) StatusLine() (string, bool) {
	switch e.Kind {
	case EventScore:
		return "SCORE:" + strconv.Itoa(e.Score), true
	case EventGameOver:
		return "GAME_OVER:" + strconv.Itoa(e.Score), true
	default:
		return "", false
	}
}
