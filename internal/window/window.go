// Package window implements the Window type of spec.md §3: a PTY-backed
// child process paired with a VT Screen, a tag set, and the lifecycle
// rules of spec.md §3 "Window" and §4.5 (spawn/reap). It is the
// generalization of the teacher's internal/terminal.Window (PTY + VT
// emulator + title + lifecycle fields) to the tag model and hand-rolled
// parser this spec requires.
package window

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/TheLudd/simplex/internal/config"
	"github.com/TheLudd/simplex/internal/vtparse"
)

// ErrNoFreeID is the error for running out of window ids. Pool.NextID has
// no upper bound and never fails, so no code path returns it.
var ErrNoFreeID = errors.New("window: no free id")

// Window is one PTY-backed child and its screen state.
type Window struct {
	ID int

	pty *os.File
	cmd *exec.Cmd

	Screen *Screen
	parser *vtparse.Parser

	tagsMu sync.RWMutex
	tags   map[int]bool

	closing bool
	exited  bool
}

// Spawn forks shell (or config.DefaultShell if empty) onto a new PTY of
// the given size and returns a Window with the given id. term is
// the TERM the child's environment receives.
func Spawn(id int, shell, term string, rows, cols int) (*Window, error) {
	if shell == "" {
		shell = config.DefaultShell
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(),
		"TERM="+term,
		"COLORTERM=truecolor",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("window: spawn %s: %w", shell, err)
	}

	w := &Window{
		ID:     id,
		pty:    ptmx,
		cmd:    cmd,
		Screen: NewScreen(cols, rows, ptmx),
		tags:   map[int]bool{config.DefaultTag: true},
	}
	w.parser = vtparse.New(w.Screen)
	return w, nil
}

// PTY returns the master side file descriptor. The event loop owns all
// reads/writes to it.
func (w *Window) PTY() *os.File { return w.pty }

// Feed drives the VT parser with bytes read from the PTY.
func (w *Window) Feed(data []byte) { w.parser.Feed(data) }

// Write sends bytes to the child's stdin through the PTY master and blocks
// while the PTY's input buffer is full. The event loop calls it directly
// for each forwarded byte; there is no write queue in between.
func (w *Window) Write(data []byte) (int, error) { return w.pty.Write(data) }

// Resize propagates an outer resize to the PTY and both grids.
func (w *Window) Resize(rows, cols int) error {
	w.Screen.Resize(cols, rows)
	return pty.Setsize(w.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Title is the window's OSC 0/2 title, or a fallback built from its id.
func (w *Window) Title() string {
	if t := w.Screen.Title(); t != "" {
		return t
	}
	return fmt.Sprintf("window %d", w.ID)
}

// Tags returns a snapshot of the window's tag set.
func (w *Window) Tags() map[int]bool {
	w.tagsMu.RLock()
	defer w.tagsMu.RUnlock()
	out := make(map[int]bool, len(w.tags))
	for t := range w.tags {
		out[t] = true
	}
	return out
}

// SetTags replaces the window's tag set. Rejects an empty set silently
// per spec.md §4.4 ("tag_window... rejects empty set silently").
func (w *Window) SetTags(tags map[int]bool) {
	if len(tags) == 0 {
		return
	}
	w.tagsMu.Lock()
	defer w.tagsMu.Unlock()
	w.tags = make(map[int]bool, len(tags))
	for t := range tags {
		w.tags[t] = true
	}
}

// ToggleTag flips membership of a single tag, refusing to leave the
// window with an empty tag set.
func (w *Window) ToggleTag(tag int) {
	w.tagsMu.Lock()
	defer w.tagsMu.Unlock()
	if w.tags[tag] {
		if len(w.tags) == 1 {
			return
		}
		delete(w.tags, tag)
		return
	}
	w.tags[tag] = true
}

// HasAnyTag reports whether the window carries any tag in view.
func (w *Window) HasAnyTag(view map[int]bool) bool {
	w.tagsMu.RLock()
	defer w.tagsMu.RUnlock()
	for t := range view {
		if w.tags[t] {
			return true
		}
	}
	return false
}

// Wait blocks until the child process exits, returning its wait error
// (nil on a clean exit). The event loop runs this in its own goroutine
// per window rather than polling SIGCHLD directly — Go's os/exec already
// reaps the process reliably; SIGCHLD is kept only as the level-triggered
// safety net spec.md §7 calls for, not the primary reap path.
func (w *Window) Wait() error { return w.cmd.Wait() }

// Signal sends sig to the child process group leader.
func (w *Window) Signal(sig os.Signal) error {
	if w.cmd.Process == nil {
		return nil
	}
	return w.cmd.Process.Signal(sig)
}

// MarkClosing flags the window as shutting down. The event loop sets it on
// a PTY read error and on close; it removes the window when the child's
// Wait returns, whether or not the PTY output has been fully read.
func (w *Window) MarkClosing() { w.closing = true }

// Closing reports whether the window has begun closing.
func (w *Window) Closing() bool { return w.closing }

// MarkExited records that the child process has been reaped.
func (w *Window) MarkExited() { w.exited = true }

// Exited reports whether MarkExited has been called, i.e. the child has
// been reaped through Wait.
func (w *Window) Exited() bool { return w.exited }

// Close releases the PTY master. Safe to call once the window is fully
// drained.
func (w *Window) Close() error {
	return w.pty.Close()
}
