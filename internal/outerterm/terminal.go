// Package outerterm owns the one real terminal this process is allowed to
// touch directly: /dev/tty. It enters/restores raw mode, queries size,
// and forwards raw input bytes into a channel — never decoding or acting
// on them itself, per spec.md §5's "the outer terminal is owned
// exclusively by the renderer (output) and the input driver (input);
// nothing else writes to it". It is grounded on the teacher's
// internal/input.RawInputReader (golang.org/x/term raw-mode dance, /dev/tty
// instead of stdin so a TUI framework never contends for it), with the
// teacher's own Ctrl+B prefix detection removed — that belongs to
// internal/dispatch here, not the input driver.
package outerterm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is the raw-mode handle on /dev/tty.
type Terminal struct {
	tty    *os.File
	state  *term.State
	wasRaw bool
}

// Open opens /dev/tty for reading and writing. It does not yet alter
// terminal modes; call EnterRaw for that.
func Open() (*Terminal, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("outerterm: open /dev/tty: %w", err)
	}
	return &Terminal{tty: tty}, nil
}

// FD returns the underlying file descriptor, for size queries and
// term.MakeRaw/Restore calls made by the caller directly if needed.
func (t *Terminal) FD() int { return int(t.tty.Fd()) }

// File exposes the underlying *os.File so the renderer can write diffed
// frames straight to the same fd this package put into raw mode.
func (t *Terminal) File() *os.File { return t.tty }

// EnterRaw saves the current terminal state and switches to raw mode
// (byte-at-a-time input, no local echo), writing the escape sequences to
// enter the alternate screen and hide the cursor so simplex's own UI
// never bleeds into the caller's scrollback.
func (t *Terminal) EnterRaw() error {
	state, err := term.GetState(t.FD())
	if err != nil {
		return fmt.Errorf("outerterm: get state: %w", err)
	}
	t.state = state
	if _, err := term.MakeRaw(t.FD()); err != nil {
		return fmt.Errorf("outerterm: make raw: %w", err)
	}
	t.wasRaw = true
	// Mouse tracking here is simplex's own, independent of anything a
	// child requests (spec.md §4.7: child mouse-mode requests are never
	// forwarded) — scroll/drag always enter copy mode at simplex's own
	// boundary.
	_, err = t.tty.WriteString("\x1b[?1049h\x1b[?25l\x1b[?1000h\x1b[?1006h")
	return err
}

// Restore reverses EnterRaw: leaves the alternate screen, shows the
// cursor, disables mouse tracking, and restores the original terminal
// mode. Safe to call more than once or without a prior EnterRaw.
func (t *Terminal) Restore() error {
	if !t.wasRaw {
		return nil
	}
	t.wasRaw = false
	t.tty.WriteString("\x1b[?1006l\x1b[?1000l\x1b[?25h\x1b[?1049l")
	if t.state == nil {
		return nil
	}
	return term.Restore(t.FD(), t.state)
}

// Size returns the outer terminal's current (cols, rows), read directly
// via TIOCGWINSZ rather than through term.GetSize, so simplex has its own
// ioctl path independent of x/term's (x/term is kept for raw-mode only).
func (t *Terminal) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(t.FD(), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("outerterm: get winsize: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// Close closes the underlying /dev/tty file. Callers should Restore
// first.
func (t *Terminal) Close() error {
	return t.tty.Close()
}
