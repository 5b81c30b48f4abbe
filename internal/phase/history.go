package phase

import "github.com/mrz1836/breathe/internal/constants"

// history is a fixed-size ring of the phases a manager has entered.
type history struct {
	buf  []constants.PhaseName
	next int
	full bool
}

func newHistory(size int) *history {
	if size < 1 {
		size = 1
	}
	return &history{buf: make([]constants.PhaseName, size)}
}

func (h *history) push(name constants.PhaseName) {
	h.buf[h.next] = name
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

func (h *history) clear() {
	h.next = 0
	h.full = false
}

// list returns the recorded phases, oldest first.
func (h *history) list() []constants.PhaseName {
	if !h.full {
		return append([]constants.PhaseName(nil), h.buf[:h.next]...)
	}
	out := make([]constants.PhaseName, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}
