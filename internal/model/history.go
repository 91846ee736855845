package model

import "time"

const defaultHistoryCap = 60

// StatusPoint is a single timestamped readiness sample stored in the ring buffer.
type StatusPoint struct {
	Timestamp time.Time
	Ready     bool
	Critical  int
	Warning   int
}

// StatusHistory is a fixed-size ring buffer of StatusPoints.
// When the buffer is full, new pushes overwrite the oldest entry.
type StatusHistory struct {
	buf  []StatusPoint
	head int // index of the next write position
	size int // number of valid entries
}

// NewStatusHistory creates a StatusHistory with the given capacity.
// If capacity <= 0, defaultHistoryCap (60) is used.
func NewStatusHistory(capacity int) *StatusHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &StatusHistory{
		buf: make([]StatusPoint, capacity),
	}
}

// PointFromStatus builds a StatusPoint for status taken at ts.
func PointFromStatus(status *UpgradeStatus, ts time.Time) StatusPoint {
	s := Summarize(status)
	return StatusPoint{
		Timestamp: ts,
		Ready:     status != nil && status.ReadyForUpgrade,
		Critical:  s.Critical,
		Warning:   s.Warning,
	}
}

// Push appends a new point to the history, overwriting the oldest if full.
func (h *StatusHistory) Push(p StatusPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries in the history.
func (h *StatusHistory) Len() int {
	return h.size
}

// Clear resets the history to empty.
func (h *StatusHistory) Clear() {
	h.head = 0
	h.size = 0
}

// Last returns the most recent point, or false if the history is empty.
func (h *StatusHistory) Last() (StatusPoint, bool) {
	if h.size == 0 {
		return StatusPoint{}, false
	}
	return h.buf[(h.head-1+len(h.buf))%len(h.buf)], true
}

// Values returns a slice of float64 for the named field in chronological order
// (oldest first). Valid field names: "critical", "warning".
func (h *StatusHistory) Values(field string) []float64 {
	out := make([]float64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		p := h.buf[(start+i)%len(h.buf)]
		switch field {
		case "critical":
			out[i] = float64(p.Critical)
		case "warning":
			out[i] = float64(p.Warning)
		}
	}
	return out
}
