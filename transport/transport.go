// Package transport connects the engine to the outside world: the serial
// controller link, status lines and the Adalight LED stream.
package transport

import (
	"errors"
	"log/slog"
	"sync/atomic"
)

// ErrClosed is returned by writes on a closed link.
var ErrClosed = errors.New("transport: link closed")

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger routes transport diagnostics to l. A nil logger silences them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

func log() *slog.Logger {
	return logger.Load()
}
