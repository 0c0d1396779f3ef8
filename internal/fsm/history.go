package fsm

import "time"

// DefaultHistoryCap is the number of transitions kept when no cap is set.
const DefaultHistoryCap = 50

// HistoryEntry records one successful transition. From is empty for the
// first transition out of the unstarted machine.
type HistoryEntry struct {
	State StateID
	From  StateID
	At    time.Time
}

// ring is a fixed-capacity buffer that evicts its oldest entry when full.
type ring struct {
	buf   []HistoryEntry
	start int
	size  int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]HistoryEntry, capacity)}
}

func (r *ring) push(e HistoryEntry) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = e
		r.size++
		return
	}
	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
}

// entries returns a copy, oldest first.
func (r *ring) entries() []HistoryEntry {
	out := make([]HistoryEntry, r.size)
	for i := range r.size {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
