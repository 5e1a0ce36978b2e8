// Package eventloop implements the cooperative core of spec.md §5: a
// single goroutine that owns every piece of mutable state (windows, view,
// layout, dispatcher, renderer) and the one `select` that serializes all
// of it. Every other goroutine (one PTY reader per window, one outer-
// terminal reader, one child-exit waiter per window) only ever forwards
// bytes or events into a channel — none of them touches shared state
// directly. This is the idiomatic-Go translation of spec.md §9's
// "resist the temptation to spawn a thread per PTY; the readiness poll
// model is what gives ... the single-writer discipline its correctness":
// Go has no portable readiness-poll primitive across stdlib fds, so the
// equivalent discipline is enforced by ownership instead — many
// forwarders, one consumer.
package eventloop

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/TheLudd/simplex/internal/config"
	"github.com/TheLudd/simplex/internal/copymode"
	"github.com/TheLudd/simplex/internal/dispatch"
	"github.com/TheLudd/simplex/internal/layout"
	"github.com/TheLudd/simplex/internal/outerterm"
	"github.com/TheLudd/simplex/internal/render"
	"github.com/TheLudd/simplex/internal/tagview"
	"github.com/TheLudd/simplex/internal/window"
)

// ptyEvent is one PTY reader's forwarded read (or its terminal error).
type ptyEvent struct {
	id   int
	data []byte
	err  error
}

// Loop owns every piece of process state and is the sole goroutine that
// mutates it (spec.md §9 "Global state"). It is the Application record
// the spec asks the entry point to construct and hold by reference.
type Loop struct {
	term *outerterm.Terminal

	pool         *window.Pool
	tags         *tagview.Model
	layoutEngine *layout.Engine
	dispatcher   *dispatch.Dispatcher
	renderer     *render.Renderer

	copy         *copymode.Engine
	copyWindowID int

	viewportW, viewportH int

	outerIn   chan []byte
	ptyIn     chan ptyEvent
	exited    chan int
	stop      chan struct{}
	statusMsg string // last transient status-bar message

	quitting bool
}

// New constructs a loop bound to an already-opened outer terminal. It only
// queries the terminal's size; raw mode is entered separately, after New
// returns.
func New(term *outerterm.Terminal) (*Loop, error) {
	cols, rows, err := term.Size()
	if err != nil {
		return nil, fmt.Errorf("eventloop: query initial size: %w", err)
	}
	if cols < config.MinOuterWidth || rows < config.MinOuterHeight {
		return nil, fmt.Errorf("eventloop: outer terminal %dx%d is smaller than the minimum %dx%d",
			cols, rows, config.MinOuterWidth, config.MinOuterHeight)
	}

	l := &Loop{
		term:         term,
		pool:         window.NewPool(),
		layoutEngine: layout.NewEngine(),
		dispatcher:   dispatch.New(),
		renderer:     render.New(),
		viewportW:    cols,
		viewportH:    rows,
		outerIn:      make(chan []byte, 64),
		ptyIn:        make(chan ptyEvent, 256),
		exited:       make(chan int, 16),
		stop:         make(chan struct{}),
	}
	l.tags = tagview.NewModel(l.pool)
	return l, nil
}

// contentHeight is the viewport height available to windows once the
// status bar's one row is reserved.
func (l *Loop) contentHeight() int {
	if l.viewportH > 1 {
		return l.viewportH - 1
	}
	return l.viewportH
}

// SpawnInitial spawns the first window, the one spec.md §6 says the
// process creates automatically on startup rather than waiting for a
// PREFIX+c from an otherwise-empty screen.
func (l *Loop) SpawnInitial() { l.spawnWindow() }

// spawnWindow implements the "spawn" command: allocate a PTY, fork the
// configured shell, and register it with the pool and tag model. A
// failure is a transient status-bar message, never fatal (spec.md §7
// "Child spawn failure").
func (l *Loop) spawnWindow() {
	shell := os.Getenv("SHELL")
	termName := os.Getenv("TERM")
	if termName == "" {
		termName = config.DefaultTERM
	}

	id := l.pool.NextID()
	w, err := window.Spawn(id, shell, termName, l.contentHeight(), l.viewportW)
	if err != nil {
		l.statusMsg = fmt.Sprintf("spawn failed: %v", err)
		return
	}
	l.pool.Add(w)
	l.tags.OnSpawn(id)

	go l.readPTY(id, w)
	go l.waitWindow(id, w)

	l.syncLayout()
}

func (l *Loop) readPTY(id int, w *window.Window) {
	buf := make([]byte, config.PTYReadBudget)
	f := w.PTY()
	for {
		n, err := f.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case l.ptyIn <- ptyEvent{id: id, data: data}:
			case <-l.stop:
				return
			}
		}
		if err != nil {
			select {
			case l.ptyIn <- ptyEvent{id: id, err: err}:
			case <-l.stop:
			}
			return
		}
	}
}

func (l *Loop) waitWindow(id int, w *window.Window) {
	w.Wait()
	select {
	case l.exited <- id:
	case <-l.stop:
	}
}

// syncLayout recomputes rectangles for the currently visible windows and
// resizes each one's PTY/grid to match. Called after anything that can
// change the visible set, the master fraction, or the outer viewport.
func (l *Loop) syncLayout() {
	visible := l.tags.VisibleOrder()
	rects := l.layoutEngine.Compute(len(visible), l.viewportW, l.contentHeight())
	for i, id := range visible {
		w := l.pool.Get(id)
		if w == nil {
			continue
		}
		rect := rects[i]
		w.Resize(rect.H, rect.W)
	}
}

// rectFor returns the rectangle currently assigned to a visible window,
// recomputed on demand (layout.Engine is pure, so this stays cheap and
// always consistent with syncLayout's last resize).
func (l *Loop) rectFor(id int) (layout.Rect, bool) {
	visible := l.tags.VisibleOrder()
	rects := l.layoutEngine.Compute(len(visible), l.viewportW, l.contentHeight())
	for i, v := range visible {
		if v == id {
			return rects[i], true
		}
	}
	return layout.Rect{}, false
}

// handleOuterResize reacts to SIGWINCH / an opportunistic size re-query:
// re-reads the terminal size, resizes the layout, and forces a full
// redraw next frame.
func (l *Loop) handleOuterResize() {
	cols, rows, err := l.term.Size()
	if err != nil || (cols == l.viewportW && rows == l.viewportH) {
		return
	}
	l.viewportW, l.viewportH = cols, rows
	l.syncLayout()
	l.renderer.Reset()
}

func (l *Loop) setupSignals() (chan os.Signal, func()) {
	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, unix.SIGWINCH, unix.SIGCHLD)
	return sigCh, func() { signal.Stop(sigCh) }
}

// enterCopyMode builds a copymode.Engine over the focused window's
// active grid, seeded at its live cursor, and switches the dispatcher
// into COPY mode. A no-op if nothing is focused.
func (l *Loop) enterCopyMode() {
	id := l.tags.Focused()
	w := l.pool.Get(id)
	if w == nil {
		return
	}
	g := w.Screen.Active()
	buf := copymode.NewBuffer(g)
	startRow := buf.LiveStart() + g.Cursor.Row
	startCol := g.Cursor.Col
	l.copy = copymode.NewEngine(buf, startRow, startCol, buf.LiveStart(), g.H)
	l.copyWindowID = id
	l.dispatcher.EnterCopyMode()
}

// exitCopyMode drops the copy-mode engine and returns the dispatcher to
// NORMAL mode.
func (l *Loop) exitCopyMode() {
	l.copy = nil
	l.copyWindowID = 0
	l.dispatcher.ExitCopyMode()
}

// windowAt returns the id of the visible window whose rect contains
// (col, row) in viewport coordinates, or 0 if none (e.g. the status bar
// row).
func (l *Loop) windowAt(col, row int) int {
	visible := l.tags.VisibleOrder()
	rects := l.layoutEngine.Compute(len(visible), l.viewportW, l.contentHeight())
	for i, id := range visible {
		r := rects[i]
		if col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H {
			return id
		}
	}
	return 0
}

// handleMouse implements spec.md §9's mouse-always-enters-copy-mode
// decision: any press, drag, or wheel event over a window focuses it
// (if not already focused) and, if not already in copy mode, enters
// copy mode. A press positions the cursor at the clicked cell. Wheel
// events move the cursor three rows and scroll the copy-mode viewport
// when the cursor would leave it.
func (l *Loop) handleMouse(ev outerterm.MouseEvent) {
	id := l.windowAt(ev.Col, ev.Row)
	if id == 0 {
		return
	}
	if id != l.tags.Focused() {
		l.tags.FocusByNumber(id)
	}
	if l.copy == nil || l.copyWindowID != id {
		l.enterCopyMode()
	}
	switch ev.Kind {
	case outerterm.MouseWheelUp:
		l.copy.Up(3)
		if top, h := l.copy.Viewport(); l.copy.Row < top {
			l.copy.SetViewport(l.copy.Row, h)
		}
	case outerterm.MouseWheelDown:
		l.copy.Down(3)
		if top, h := l.copy.Viewport(); l.copy.Row >= top+h {
			l.copy.SetViewport(l.copy.Row-h+1, h)
		}
	case outerterm.MousePress:
		rect, ok := l.rectFor(id)
		if !ok {
			return
		}
		top, _ := l.copy.Viewport()
		l.copy.Row = top + ev.Row - rect.Y
		l.copy.Col = ev.Col - rect.X
	}
}
