package tagview

import (
	"testing"

	"github.com/TheLudd/simplex/internal/window"
)

func newTestWindow(t *testing.T, pool *window.Pool, tags ...int) int {
	t.Helper()
	id := pool.NextID()
	w := &window.Window{ID: id}
	pool.Add(w)
	set := map[int]bool{}
	for _, tg := range tags {
		set[tg] = true
	}
	w.SetTags(set)
	return id
}

func TestVisibleOrderFiltersByView(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	_ = newTestWindow(t, pool, 2)
	m.OnSpawn(a)
	m.OnSpawn(2)

	visible := m.VisibleOrder()
	if len(visible) != 1 || visible[0] != a {
		t.Fatalf("expected only window %d visible under default view {1}, got %v", a, visible)
	}
}

func TestSetViewPushesPreviousAndReselectsFocus(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	b := newTestWindow(t, pool, 2)
	m.OnSpawn(a)
	m.OnSpawn(b)

	if m.Focused() != a {
		t.Fatalf("expected initial focus on %d, got %d", a, m.Focused())
	}

	m.SetView(map[int]bool{2: true})
	if m.Focused() != b {
		t.Fatalf("expected focus to move to %d after view switch, got %d", b, m.Focused())
	}
}

func TestReturnOnEmptyFallsBackToPreviousView(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	m.OnSpawn(a)

	m.SetView(map[int]bool{9: true})
	if len(m.VisibleOrder()) != 0 {
		t.Fatalf("expected no windows visible under tag 9")
	}

	m.OnClose(a)
	if len(m.VisibleOrder()) != 0 {
		t.Fatalf("window was closed, nothing should be visible regardless of view")
	}
	if view := m.View(); !view[1] || view[9] {
		t.Fatalf("expected view to fall back to previous view {1}, got %v", view)
	}
}

func TestOnCloseRevertsViewWhenVisibleSetEmptied(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	b := newTestWindow(t, pool, 9)
	m.OnSpawn(a)
	m.OnSpawn(b)

	m.SetView(map[int]bool{9: true})
	if m.Focused() != b {
		t.Fatalf("expected focus on %d, got %d", b, m.Focused())
	}

	m.OnClose(b)
	if view := m.View(); !view[1] {
		t.Fatalf("expected view to revert to {1} once tag-9 window closed, got %v", view)
	}
	if m.Focused() != a {
		t.Fatalf("expected focus to move to %d after view reverted, got %d", a, m.Focused())
	}
}

func TestFocusNextPrevCycleVisibleOnly(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	b := newTestWindow(t, pool, 1)
	c := newTestWindow(t, pool, 2)
	m.OnSpawn(a)
	m.OnSpawn(b)
	m.OnSpawn(c)

	if m.Focused() != a {
		t.Fatalf("expected focus %d, got %d", a, m.Focused())
	}
	m.FocusNext()
	if m.Focused() != b {
		t.Fatalf("expected focus %d after FocusNext, got %d", b, m.Focused())
	}
	m.FocusNext()
	if m.Focused() != a {
		t.Fatalf("expected FocusNext to wrap to %d, got %d", a, m.Focused())
	}
	m.FocusPrev()
	if m.Focused() != b {
		t.Fatalf("expected FocusPrev to wrap to %d, got %d", b, m.Focused())
	}
}

func TestFocusByNumberIgnoresNonVisible(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	b := newTestWindow(t, pool, 2)
	m.OnSpawn(a)
	m.OnSpawn(b)

	m.FocusByNumber(b)
	if m.Focused() != a {
		t.Fatalf("FocusByNumber on a non-visible window must be a no-op, got focus %d", m.Focused())
	}
	m.FocusByNumber(a)
	if m.Focused() != a {
		t.Fatalf("expected focus %d, got %d", a, m.Focused())
	}
}

func TestSwapWithMasterExchangesPositionsOnly(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1)
	b := newTestWindow(t, pool, 1)
	c := newTestWindow(t, pool, 1)
	m.OnSpawn(a)
	m.OnSpawn(b)
	m.OnSpawn(c)

	m.FocusByNumber(c)
	m.SwapWithMaster()

	visible := m.VisibleOrder()
	if visible[0] != c {
		t.Fatalf("expected %d to become master, got order %v", c, visible)
	}
	if len(visible) != 3 || visible[1] != b || visible[2] != a {
		t.Fatalf("expected only master position to change, got order %v", visible)
	}
}

func TestToggleTagCanRemoveWindowFromView(t *testing.T) {
	pool := window.NewPool()
	m := NewModel(pool)
	a := newTestWindow(t, pool, 1, 2)
	m.OnSpawn(a)

	m.ToggleTag(a, 1)
	if len(m.VisibleOrder()) != 0 {
		t.Fatalf("expected window to leave view 1 after toggling off its only matching tag")
	}
}
