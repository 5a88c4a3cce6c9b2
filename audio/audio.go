// Package audio plays short tones for score changes and game over.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/ledtris/tetris"
)

const (
	SampleRate = beep.SampleRate(44100)

	ScoreTone     = 50 * time.Millisecond
	GameOverTone  = 150 * time.Millisecond
	ScoreBaseFreq = 660.0
)

// GameOverFreqs is the falling three-note jingle played at game over.
var GameOverFreqs = []float64{660, 440, 220}

// Tone returns a sine wave of freq Hz lasting d.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", freq, err)
	}
	return beep.Take(rate.N(d), sine), nil
}

// Chime turns engine events into tones.
type Chime struct {
	rate beep.SampleRate
	play func(beep.Streamer)
}

// NewChime sends tones to play. Tests pass a recorder, binaries the
// speaker.
func NewChime(rate beep.SampleRate, play func(beep.Streamer)) *Chime {
	return &Chime{rate: rate, play: play}
}

// Observe plays a tone for every score and game-over event.
func (c *Chime) Observe(events []tetris.Event) error {
	for _, ev := range events {
		switch ev.Kind {
		case tetris.EventScore:
			if err := c.Score(ev.Score); err != nil {
				return err
			}
		case tetris.EventGameOver:
			if err := c.GameOver(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Score plays a blip that rises a semitone with every point, wrapping each
// octave.
func (c *Chime) Score(score int) error {
	freq := ScoreBaseFreq * semitones(score%12)
	s, err := Tone(c.rate, freq, ScoreTone)
	if err != nil {
		return err
	}
	c.play(s)
	return nil
}

// GameOver plays the closing jingle.
func (c *Chime) GameOver() error {
	notes := make([]beep.Streamer, 0, len(GameOverFreqs))
	for _, f := range GameOverFreqs {
		s, err := Tone(c.rate, f, GameOverTone)
		if err != nil {
			return err
		}
		notes = append(notes, s)
	}
	c.play(beep.Seq(notes...))
	return nil
}

func semitones(n int) float64 {
	f := 1.0
	for range n {
		f *= 1.0594630943592953
	}
	return f
}

var speakerOnce sync.Once

// OpenSpeaker initialises the system speaker and returns a chime playing
// through it. Close releases the device.
func OpenSpeaker() (*Chime, func(), error) {
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
	})
	if initErr != nil {
		return nil, nil, fmt.Errorf("init speaker: %w", initErr)
	}
	chime := NewChime(SampleRate, func(s beep.Streamer) { speaker.Play(s) })
	return chime, speaker.Close, nil
}
