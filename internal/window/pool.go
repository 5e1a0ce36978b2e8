package window

import "sort"

// Pool assigns stable small integer ids (spec.md §3: "id: stable small int
// ≥1") to windows, always picking the lowest currently-unused id, and
// keeps the live set keyed by id so the rest of the system (focus history,
// tag membership, layout order) can reference windows by id alone, per
// spec.md §9's "cyclic references" note.
type Pool struct {
	windows map[int]*Window
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{windows: map[int]*Window{}}
}

// NextID returns the lowest id ≥1 not currently in use.
func (p *Pool) NextID() int {
	id := 1
	for p.windows[id] != nil {
		id++
	}
	return id
}

// Add registers w under w.ID. The caller must have obtained w.ID from
// NextID (or otherwise guaranteed uniqueness).
func (p *Pool) Add(w *Window) { p.windows[w.ID] = w }

// Remove drops a window from the pool.
func (p *Pool) Remove(id int) { delete(p.windows, id) }

// Get returns the window for id, or nil.
func (p *Pool) Get(id int) *Window { return p.windows[id] }

// All returns every live window ordered by id, ascending — the pool's
// canonical iteration order, used by the status bar, broadcast input and
// shutdown. The tag/focus model keeps its own window order.
func (p *Pool) All() []*Window {
	ids := make([]int, 0, len(p.windows))
	for id := range p.windows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Window, len(ids))
	for i, id := range ids {
		out[i] = p.windows[id]
	}
	return out
}

// Len returns the number of live windows.
func (p *Pool) Len() int { return len(p.windows) }
