package eventloop

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/TheLudd/simplex/internal/config"
	"github.com/TheLudd/simplex/internal/copymode"
	"github.com/TheLudd/simplex/internal/dispatch"
	"github.com/TheLudd/simplex/internal/outerterm"
)

// copyActionKinds lists every dispatch.Action.Kind that belongs to copy
// mode, so Run can route an Action to the copymode.Engine instead of the
// PREFIX command table without the dispatcher needing to know anything
// about copymode itself.
var copyActionKinds = map[string]bool{
	"left": true, "right": true, "up": true, "down": true,
	"line_start": true, "line_end": true, "first_nonblank": true,
	"buffer_top": true, "buffer_bottom": true,
	"page_top": true, "page_middle": true, "page_bottom": true,
	"word_next": true, "word_prev": true, "word_end": true,
	"WORD_next": true, "WORD_prev": true, "WORD_end": true,
	"find_fwd": true, "find_back": true, "till_fwd": true, "till_back": true,
	"repeat_find": true, "repeat_find_rev": true,
	"search_fwd": true, "search_back": true,
	"search_next": true, "search_prev": true,
	"visual_char": true, "visual_line": true,
	"text_object_inner": true, "text_object_around": true,
	"yank": true, "exit": true,
}

// Run drives the event loop until the user quits or the outer terminal
// goes away. It is the only method that blocks for the program's
// lifetime; everything else is either setup or a handler it calls.
func (l *Loop) Run() error {
	outerStop := make(chan struct{})
	go l.term.ReadLoop(l.outerIn, outerStop)
	defer close(outerStop)

	sigCh, stopSignals := l.setupSignals()
	defer stopSignals()

	ticker := time.NewTicker(config.FramePeriod)
	defer ticker.Stop()

	l.syncLayout()
	l.commitFrame()

	for !l.quitting {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				continue
			}
			switch sig {
			case unix.SIGWINCH:
				l.handleOuterResize()
			case unix.SIGCHLD:
				// Level-triggered safety net only; the per-window Wait
				// goroutine is the primary reap path (see window.Wait).
			}

		case data, ok := <-l.outerIn:
			if !ok {
				l.quitting = true
				continue
			}
			l.handleOuterInput(data)

		case ev := <-l.ptyIn:
			l.handlePTYEvent(ev)

		case id := <-l.exited:
			l.reapWindow(id)

		case <-ticker.C:
			l.commitFrame()
		}
	}

	return l.shutdown()
}

// handleOuterInput consumes one read's worth of bytes from the outer
// terminal: a leading SGR mouse report is decoded and handled as its own
// event; everything else is fed byte-by-byte to the dispatcher.
func (l *Loop) handleOuterInput(data []byte) {
	for len(data) > 0 {
		if ev, n, ok := outerterm.ScanMouse(data); ok {
			l.handleMouse(ev)
			data = data[n:]
			continue
		}
		b := data[0]
		data = data[1:]
		for _, a := range l.dispatcher.Feed(b) {
			l.dispatch(a)
		}
	}
}

func (l *Loop) dispatch(a dispatch.Action) {
	if a.Kind == "forward" {
		l.forwardByte(a.Byte)
		return
	}
	if l.copy != nil && copyActionKinds[a.Kind] {
		l.handleCopyAction(a)
		return
	}
	l.handlePrefixAction(a)
}

func (l *Loop) forwardByte(b byte) {
	buf := [1]byte{b}
	if l.tags.Broadcast {
		for _, w := range l.pool.All() {
			w.Write(buf[:])
		}
		return
	}
	if w := l.pool.Get(l.tags.Focused()); w != nil {
		w.Write(buf[:])
	}
}

func (l *Loop) handlePrefixAction(a dispatch.Action) {
	switch a.Kind {
	case "spawn":
		l.spawnWindow()
	case "close":
		l.closeFocused()
	case "focus_next":
		l.tags.FocusNext()
	case "focus_prev":
		l.tags.FocusPrev()
	case "swap_master":
		l.tags.SwapWithMaster()
		l.syncLayout()
	case "master_shrink":
		l.layoutEngine.ShrinkMaster()
		l.syncLayout()
	case "master_grow":
		l.layoutEngine.GrowMaster()
		l.syncLayout()
	case "toggle_broadcast":
		l.tags.Broadcast = !l.tags.Broadcast
	case "quit":
		l.quitting = true
	case "enter_copy":
		l.enterCopyMode()
	case "view_tag":
		l.tags.SetView(map[int]bool{a.Tag: true})
		l.syncLayout()
	case "set_tag":
		if id := l.tags.Focused(); id != 0 {
			l.tags.TagWindow(id, map[int]bool{a.Tag: true})
			l.syncLayout()
		}
	case "toggle_tag":
		if id := l.tags.Focused(); id != 0 {
			l.tags.ToggleTag(id, a.Tag)
			l.syncLayout()
		}
	}
}

func (l *Loop) handleCopyAction(a dispatch.Action) {
	c := l.copy
	switch a.Kind {
	case "left":
		c.Left(a.Count)
	case "right":
		c.Right(a.Count)
	case "up":
		c.Up(a.Count)
	case "down":
		c.Down(a.Count)
	case "line_start":
		c.LineStart()
	case "line_end":
		c.LineEnd()
	case "first_nonblank":
		c.FirstNonBlank()
	case "buffer_top":
		c.BufferTop()
	case "buffer_bottom":
		c.BufferBottom()
	case "page_top":
		c.PageTop()
	case "page_middle":
		c.PageMiddle()
	case "page_bottom":
		c.PageBottom()
	case "word_next":
		c.WordNext(a.Count, false)
	case "word_prev":
		c.WordPrev(a.Count, false)
	case "word_end":
		c.WordEnd(a.Count, false)
	case "WORD_next":
		c.WordNext(a.Count, true)
	case "WORD_prev":
		c.WordPrev(a.Count, true)
	case "WORD_end":
		c.WordEnd(a.Count, true)
	case "find_fwd":
		c.Find(a.Char, a.Count, true, false)
	case "find_back":
		c.Find(a.Char, a.Count, false, false)
	case "till_fwd":
		c.Find(a.Char, a.Count, true, true)
	case "till_back":
		c.Find(a.Char, a.Count, false, true)
	case "repeat_find":
		c.RepeatFind(a.Count, false)
	case "repeat_find_rev":
		c.RepeatFind(a.Count, true)
	case "search_fwd":
		c.Search(a.Pattern, true)
	case "search_back":
		c.Search(a.Pattern, false)
	case "search_next":
		c.SearchNext()
	case "search_prev":
		c.SearchPrev()
	case "visual_char":
		c.ToggleVisual(copymode.SelectionChar)
	case "visual_line":
		c.ToggleVisual(copymode.SelectionLine)
	case "text_object_inner":
		c.TextObject(false, a.Char)
	case "text_object_around":
		c.TextObject(true, a.Char)
	case "yank":
		if text := c.Yank(); text != "" {
			l.sendClipboard(text)
		}
		l.exitCopyMode()
	case "exit":
		l.exitCopyMode()
	}
}

func (l *Loop) handlePTYEvent(ev ptyEvent) {
	w := l.pool.Get(ev.id)
	if w == nil {
		return
	}
	if len(ev.data) > 0 {
		w.Feed(ev.data)
	}
	if ev.err != nil {
		w.MarkClosing()
	}
}

func (l *Loop) reapWindow(id int) {
	w := l.pool.Get(id)
	if w == nil {
		return
	}
	w.MarkExited()
	w.Close()
	l.pool.Remove(id)
	l.tags.OnClose(id)
	if l.copy != nil && l.copyWindowID == id {
		l.exitCopyMode()
	}
	l.syncLayout()
}

func (l *Loop) closeFocused() {
	id := l.tags.Focused()
	if id == 0 {
		return
	}
	w := l.pool.Get(id)
	if w == nil {
		return
	}
	w.MarkClosing()
	w.Signal(unix.SIGHUP)
}

func (l *Loop) commitFrame() {
	f := l.Compose(l.viewportW, l.viewportH)
	out := l.renderer.Render(f)
	if len(out) > 0 {
		l.term.File().Write(out)
	}
}

// shutdown signals every remaining child and gives them a bounded window
// to exit cleanly before the process tears down (spec.md §7 "quit
// sequence").
func (l *Loop) shutdown() error {
	for _, w := range l.pool.All() {
		w.Signal(unix.SIGHUP)
	}
	close(l.stop)

	deadline := time.After(config.ShutdownDrainTimeout)
drain:
	for l.pool.Len() > 0 {
		select {
		case ev := <-l.ptyIn:
			l.handlePTYEvent(ev)
		case id := <-l.exited:
			l.reapWindow(id)
		case <-deadline:
			break drain
		}
	}
	return nil
}
