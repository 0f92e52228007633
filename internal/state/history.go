package state

// History is a linear, cursor-addressed sequence of raster snapshots.
//
// entries is never empty and entries[cursor] is always the raster that is
// currently shown. Committing after an undo discards the undone entries;
// there is no redo.
type History[S any] struct {
	entries []S
	cursor  int
	limit   int
}

// NewHistory returns a history holding only blank. A limit of 0 means the
// history grows without bound; otherwise the oldest entries are dropped
// once limit entries are held.
func NewHistory[S any](blank S, limit int) *History[S] {
	if limit < 0 {
		limit = 0
	}
	return &History[S]{entries: []S{blank}, limit: limit}
}

// Commit drops every entry past the cursor, appends s and moves the cursor
// onto it.
func (h *History[S]) Commit(s S) {
	clear(h.entries[h.cursor+1:])
	h.entries = append(h.entries[:h.cursor+1], s)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		var zero S
		for i := 0; i < drop; i++ {
			h.entries[i] = zero
		}
		h.entries = h.entries[drop:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns the entry it lands on. At the
// first entry it does nothing and reports false.
func (h *History[S]) Undo() (S, bool) {
	if h.cursor == 0 {
		var zero S
		return zero, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Reset replaces the whole history with a single blank entry.
func (h *History[S]) Reset(blank S) {
	clear(h.entries)
	h.entries = append(h.entries[:0], blank)
	h.cursor = 0
}

// Current is the entry under the cursor.
func (h *History[S]) Current() S { return h.entries[h.cursor] }

func (h *History[S]) Cursor() int { return h.cursor }

func (h *History[S]) Len() int { return len(h.entries) }

func (h *History[S]) Limit() int { return h.limit }

func (h *History[S]) CanUndo() bool { return h.cursor > 0 }
