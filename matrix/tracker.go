package matrix

import (
	"image/color"

	"github.com/kamstrup/intmap"
)

// Change is one LED whose color differs from the last committed frame.
type Change struct {
	Index int
	Color color.RGBA
}

// Tracker remembers the lit LEDs of the last committed frame so a link can
// skip frames that did not change. Only lit pixels are stored; a typical
// frame lights a small part of the panel.
type Tracker struct {
	lit *intmap.Map[int32, color.RGBA]
}

// NewTracker creates a tracker sized for capacity lit LEDs.
func NewTracker(capacity int) *Tracker {
	return &Tracker{lit: intmap.New[int32, color.RGBA](capacity)}
}

// Diff compares b with the previous frame, records b as the new reference
// and returns the LEDs that changed, in strip order.
func (t *Tracker) Diff(b *Buffer) []Change {
	var changes []Change
	for i, c := range b.Pixels() {
		key := int32(i)
		prev, wasLit := t.lit.Get(key)

		if !Lit(c) {
			if wasLit {
				t.lit.Del(key)
				changes = append(changes, Change{Index: i, Color: Black})
			}
			continue
		}

		if !wasLit || prev != c {
			t.lit.Put(key, c)
			changes = append(changes, Change{Index: i, Color: c})
		}
	}
	return changes
}

// Lit returns how many LEDs were lit in the last diffed frame.
func (t *Tracker) Lit() int {
	return t.lit.Len()
}

// Reset forgets the reference frame, so the next Diff reports every lit LED.
func (t *Tracker) Reset() {
	t.lit.Clear()
}
