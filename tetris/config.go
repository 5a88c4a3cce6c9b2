package tetris

import "time"

// Config holds the timing rules of a session.
type Config struct {
	FallInterval    time.Duration // a fall tick fires once more than this has passed
	SessionDuration time.Duration // the session ends once more than this has passed

	// EndOnBlockedSpawn ends the session when a new piece spawns on top of
	// locked cells. When false the piece spawns overlapping, as the device
	// firmware does.
	EndOnBlockedSpawn bool
}

// DefaultConfig returns the rules of the LED matrix build.
func DefaultConfig() Config {
	return Config{
		FallInterval:    500 * time.Millisecond,
		SessionDuration: 30 * time.Second,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the timing rules. Zero durations keep the defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		def := DefaultConfig()
		if cfg.FallInterval <= 0 {
			cfg.FallInterval = def.FallInterval
		}
		if cfg.SessionDuration <= 0 {
			cfg.SessionDuration = def.SessionDuration
		}
		e.cfg = cfg
	}
}

// WithCatalog replaces the shape catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithPicker replaces the spawn picker.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		e.picker = p
	}
}

// WithSeed seeds the default random picker.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.picker = NewRandomPicker(seed)
	}
}
