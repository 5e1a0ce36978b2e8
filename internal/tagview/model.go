// Package tagview implements the tag/focus model of spec.md §4.4: the
// current view tag set, focus history, the "return on empty" fallback,
// and the broadcast flag. It references windows by id only (spec.md §9:
// "Cyclic references... use an integer window_id as the sole
// cross-component reference"), never by direct *window.Window handle,
// so closing a window can never leave a dangling pointer in focus history
// or tag membership.
package tagview

import "github.com/TheLudd/simplex/internal/window"

// Model owns the view set, focus, the visible window order, and the
// broadcast flag. There is exactly one Model per running instance (it is
// one of the fields of the owning Application record, spec.md §9).
type Model struct {
	pool *window.Pool

	// order is the relative ordering of every live window id; the first
	// entry visible under the current view is the tiling layout's master.
	order []int

	view         map[int]bool
	previousView map[int]bool
	hasPrevious  bool

	focused      int
	focusHistory []int

	Broadcast bool
}

// NewModel creates a model over pool with the default view {1}.
func NewModel(pool *window.Pool) *Model {
	return &Model{
		pool: pool,
		view: map[int]bool{1: true},
	}
}

// View returns a copy of the current view tag set.
func (m *Model) View() map[int]bool { return cloneSet(m.view) }

// Focused returns the focused window's id, or 0 if none.
func (m *Model) Focused() int { return m.focused }

// VisibleOrder returns the ids of currently-visible windows, in layout
// order (order[0], if visible, is the master).
func (m *Model) VisibleOrder() []int {
	out := make([]int, 0, len(m.order))
	for _, id := range m.order {
		w := m.pool.Get(id)
		if w != nil && w.HasAnyTag(m.view) {
			out = append(out, id)
		}
	}
	return out
}

// OnSpawn registers a newly created window with the model.
func (m *Model) OnSpawn(id int) {
	m.order = append(m.order, id)
	m.ensureFocusValid()
}

// OnClose removes a destroyed window's id from the order and focus
// history, then applies the "return on empty" rule (spec.md §4.4: if the
// set of visible windows becomes empty and previous_view ≠ current, view
// reverts to previous_view) before reselecting focus.
func (m *Model) OnClose(id int) {
	m.order = removeID(m.order, id)
	m.focusHistory = removeID(m.focusHistory, id)
	if m.focused == id {
		m.focused = 0
	}
	if len(m.VisibleOrder()) == 0 && m.hasPrevious && !setEqual(m.previousView, m.view) {
		m.view = m.previousView
		m.hasPrevious = false
	}
	m.ensureFocusValid()
}

// SetView implements view(S): pushes the current view onto the
// single-depth previous-view slot when it changes, then reselects focus.
func (m *Model) SetView(tags map[int]bool) {
	if len(tags) == 0 {
		return
	}
	if setEqual(tags, m.view) {
		return
	}
	m.previousView = cloneSet(m.view)
	m.hasPrevious = true
	m.view = cloneSet(tags)
	m.ensureFocusValid()
}

// TagWindow implements tag_window(w, S): replaces w's tags (silently
// rejecting empty S), then reselects focus since w may have left view.
func (m *Model) TagWindow(id int, tags map[int]bool) {
	w := m.pool.Get(id)
	if w == nil {
		return
	}
	w.SetTags(tags)
	m.ensureFocusValid()
}

// ToggleTag implements toggle_tag(w, k).
func (m *Model) ToggleTag(id, tag int) {
	w := m.pool.Get(id)
	if w == nil {
		return
	}
	w.ToggleTag(tag)
	m.ensureFocusValid()
}

// FocusNext and FocusPrev cycle among visible windows in layout order.
func (m *Model) FocusNext() { m.cycle(1) }
func (m *Model) FocusPrev() { m.cycle(-1) }

func (m *Model) cycle(dir int) {
	visible := m.VisibleOrder()
	if len(visible) == 0 {
		return
	}
	idx := indexOf(visible, m.focused)
	if idx < 0 {
		m.setFocus(visible[0])
		return
	}
	next := (idx + dir + len(visible)) % len(visible)
	m.setFocus(visible[next])
}

// FocusByNumber implements focus_by_number(k): no-op if k is not visible.
func (m *Model) FocusByNumber(id int) {
	for _, v := range m.VisibleOrder() {
		if v == id {
			m.setFocus(id)
			return
		}
	}
}

// SwapWithMaster exchanges the focused window's position with position 0
// of the visible order, by swapping their entries in the underlying
// overall order (so non-visible windows keep their relative positions
// too).
func (m *Model) SwapWithMaster() {
	visible := m.VisibleOrder()
	if len(visible) < 2 || m.focused == 0 {
		return
	}
	masterID := visible[0]
	if masterID == m.focused {
		return
	}
	i, j := indexOf(m.order, masterID), indexOf(m.order, m.focused)
	if i < 0 || j < 0 {
		return
	}
	m.order[i], m.order[j] = m.order[j], m.order[i]
}

func (m *Model) setFocus(id int) {
	m.focused = id
	m.focusHistory = removeID(m.focusHistory, id)
	m.focusHistory = append(m.focusHistory, id)
}

// ensureFocusValid restores the "at most one window is focused; focused
// window must be visible" invariant, preferring the most recent
// focus-history entry that remains visible, else the leftmost visible
// window, else no focus.
func (m *Model) ensureFocusValid() {
	visible := m.VisibleOrder()
	if m.focused != 0 && indexOf(visible, m.focused) >= 0 {
		return
	}
	for i := len(m.focusHistory) - 1; i >= 0; i-- {
		if indexOf(visible, m.focusHistory[i]) >= 0 {
			m.setFocus(m.focusHistory[i])
			return
		}
	}
	if len(visible) > 0 {
		m.setFocus(visible[0])
		return
	}
	m.focused = 0
}

func cloneSet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []int, id int) []int {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
