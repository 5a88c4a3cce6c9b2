package debugui

// History is a fixed-size ring of samples for plotting.
type History struct {
	values []float32
	next   int
	filled bool
}

func NewHistory(size int) *History {
	return &History{values: make([]float32, max(size, 1))}
}

// Push records a sample, overwriting the oldest one once full.
func (h *History) Push(v float32) {
	h.values[h.next] = v
	h.next = (h.next + 1) % len(h.values)
	if h.next == 0 {
		h.filled = true
	}
}

// Values returns the samples oldest first.
func (h *History) Values() []float32 {
	if !h.filled {
		return append([]float32(nil), h.values[:h.next]...)
	}
	out := make([]float32, 0, len(h.values))
	out = append(out, h.values[h.next:]...)
	return append(out, h.values[:h.next]...)
}

// Average returns the mean of the recorded samples, zero when empty.
func (h *History) Average() float32 {
	vals := h.Values()
	if len(vals) == 0 {
		return 0
	}
	var sum float32
	for _, v := range vals {
		sum += v
	}
	return sum / float32(len(vals))
}

// Max returns the largest recorded sample.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.Values() {
		m = max(m, v)
	}
	return m
}
