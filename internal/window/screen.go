package window

import (
	"fmt"
	"io"

	"github.com/TheLudd/simplex/internal/cell"
	"github.com/TheLudd/simplex/internal/config"
	"github.com/TheLudd/simplex/internal/grid"
)

// Screen implements vtparse.Handler, translating parsed VT actions into
// mutations of a window's primary/alternate Grid pair. It is the
// generalization of the teacher's vt.Emulator (internal/vt/emulator.go) to
// a pure-Go, hand-rolled parser driver instead of one built on
// charmbracelet/x/ansi — spec.md §9 asks for the parser/screen coupling to
// be an explicit transition table, not delegated framework glue.
type Screen struct {
	primary, alt *grid.Grid
	active       *grid.Grid
	onAlt        bool

	style    cell.Style
	modes    Modes
	tabstops map[int]bool

	title string
	// onTitle is called whenever OSC 0/2 updates the title.
	onTitle func(string)

	// replyWriter is where DSR (CSI 6n) and similar query responses are
	// written back to the child; it is the PTY master's write side.
	replyWriter io.Writer
}

// NewScreen builds a screen over a fresh W×H primary/alternate grid pair.
func NewScreen(w, h int, replyWriter io.Writer) *Screen {
	s := &Screen{
		primary:     grid.New(w, h, true, config.ScrollbackCapacity),
		alt:         grid.New(w, h, false, config.ScrollbackCapacity),
		modes:       DefaultModes(),
		tabstops:    map[int]bool{},
		replyWriter: replyWriter,
	}
	s.active = s.primary
	s.style = cell.DefaultStyle
	s.defaultTabs(w)
	return s
}

// Active returns the currently displayed grid (primary or alternate).
func (s *Screen) Active() *grid.Grid { return s.active }

// Primary returns the primary-screen grid (the one scrollback belongs to).
func (s *Screen) Primary() *grid.Grid { return s.primary }

// Modes returns the current private-mode state.
func (s *Screen) Modes() Modes { return s.modes }

// Title returns the window title as last set by OSC 0/2.
func (s *Screen) Title() string { return s.title }

// SetOnTitle installs a callback invoked whenever the title changes.
func (s *Screen) SetOnTitle(f func(string)) { s.onTitle = f }

// Resize propagates an outer resize to both grids per spec.md §4.2; only
// the active grid is visible but both must stay the query-consistent size
// so a switch back to the other screen doesn't surprise its cursor.
func (s *Screen) Resize(w, h int) {
	s.primary.Resize(w, h)
	s.alt.Resize(w, h)
}

func (s *Screen) defaultTabs(w int) {
	s.tabstops = map[int]bool{}
	for c := config.DefaultTabWidth; c < w; c += config.DefaultTabWidth {
		s.tabstops[c] = true
	}
}

func (s *Screen) nextTabStop(from, w int) int {
	for c := from + 1; c < w; c++ {
		if s.tabstops[c] {
			return c
		}
	}
	return w - 1
}

// --- vtparse.Handler ---

func (s *Screen) Print(r rune) {
	w := cell.GlyphWidth(r)
	if w == 0 {
		// Combining mark: merge onto the previous cell instead of
		// occupying a column of its own.
		g := s.active
		col := g.Cursor.Col - 1
		if g.Cursor.WrapPending {
			col = g.Cursor.Col
		}
		if col >= 0 {
			row := g.Row(g.Cursor.Row)
			if row != nil && col < len(row) {
				row[col].Glyph += string(r)
				row[col].Dirty = true
			}
		}
		return
	}
	s.active.PutChar(string(r), w, s.style, s.modes.AutoWrap)
}

func (s *Screen) Execute(b byte) {
	g := s.active
	switch b {
	case 0x07: // BEL
		// Ignored at the parser level per spec.md §4.1.
	case 0x08: // BS
		if g.Cursor.Col > 0 {
			g.MoveCursor(g.Cursor.Row, g.Cursor.Col-1)
		}
	case 0x09: // HT
		g.MoveCursor(g.Cursor.Row, s.nextTabStop(g.Cursor.Col, g.W))
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		g.Index()
	case 0x0d: // CR
		g.CR()
	case 0x0e, 0x0f: // SO/SI: minimum supported is "ignored".
	}
}

func (s *Screen) Esc(intermediates []byte, final byte) {
	g := s.active
	if len(intermediates) == 0 {
		switch final {
		case '7': // DECSC
			g.SaveCursor()
		case '8': // DECRC
			g.RestoreCursor()
		case 'D': // IND
			g.Index()
		case 'M': // RI
			g.ReverseIndex()
		case 'H': // HTS
			s.tabstops[g.Cursor.Col] = true
		case 'c': // RIS, full reset
			s.reset()
		}
	}
}

func (s *Screen) reset() {
	w, h := s.primary.W, s.primary.H
	s.primary = grid.New(w, h, true, config.ScrollbackCapacity)
	s.alt = grid.New(w, h, false, config.ScrollbackCapacity)
	s.active = s.primary
	s.onAlt = false
	s.style = cell.DefaultStyle
	s.modes = DefaultModes()
	s.defaultTabs(w)
}

func (s *Screen) OSC(data []byte) {
	// "n;text" — split at the first ';'.
	i := indexByte(data, ';')
	if i < 0 {
		return
	}
	code := string(data[:i])
	text := string(data[i+1:])
	switch code {
	case "0", "2":
		s.title = text
		if s.onTitle != nil {
			s.onTitle(text)
		}
	case "4", "10", "11", "12":
		// Color queries: stored-for-later-query is not implemented;
		// silently ignored per spec.md §4.1.
	case "52":
		// Clipboard passthrough is handled by the copy-mode sink, not
		// here; Screen has no reference to it and no callback for it.
		// spec.md only requires forwarding from copy-mode's own `y`
		// command, so incoming OSC 52 from a child is simply ignored.
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func (s *Screen) CSI(prefix byte, params []int, subParams [][]int, intermediates []byte, final byte) {
	g := s.active
	p := func(i, def int) int {
		if i < len(params) {
			if params[i] < 0 {
				return def
			}
			return params[i]
		}
		return def
	}
	n := func(i int) int { return max1(p(i, 1)) }

	if prefix == '?' {
		s.csiPrivate(params, final)
		return
	}

	switch final {
	case 'A':
		g.MoveCursorRel(-n(0), 0)
	case 'B':
		g.MoveCursorRel(n(0), 0)
	case 'C':
		g.MoveCursorRel(0, n(0))
	case 'D':
		g.MoveCursorRel(0, -n(0))
	case 'H', 'f':
		g.MoveCursor(p(0, 1)-1, p(1, 1)-1)
	case 'G':
		g.MoveCursor(g.Cursor.Row, p(0, 1)-1)
	case 'd':
		g.MoveCursor(p(0, 1)-1, g.Cursor.Col)
	case 'J':
		g.EraseInDisplay(grid.EraseMode(p(0, 0)), s.style)
	case 'K':
		g.EraseInLine(grid.EraseMode(p(0, 0)), s.style)
	case 'L':
		g.InsertLines(n(0), s.style)
	case 'M':
		g.DeleteLines(n(0), s.style)
	case '@':
		g.InsertChars(n(0), s.style)
	case 'P':
		g.DeleteChars(n(0), s.style)
	case 'X':
		g.EraseChars(n(0), s.style)
	case 'S':
		g.ScrollUp(n(0))
	case 'T':
		g.ScrollDown(n(0))
	case 'r':
		top, bot := p(0, 1), p(1, g.H)
		g.SetRegion(top-1, bot-1)
	case 'm':
		s.style = ApplySGR(s.style, params, subParams)
	case 'n':
		if p(0, 0) == 6 {
			s.respondf("\x1b[%d;%dR", g.Cursor.Row+1, g.Cursor.Col+1)
		}
	case 'g':
		switch p(0, 0) {
		case 0:
			delete(s.tabstops, g.Cursor.Col)
		case 3:
			s.tabstops = map[int]bool{}
		}
	}
}

func (s *Screen) csiPrivate(params []int, final byte) {
	if final != 'h' && final != 'l' {
		return
	}
	set := final == 'h'
	for _, mode := range params {
		switch mode {
		case 1:
			s.modes.CursorKeys = set
		case 7:
			s.modes.AutoWrap = set
		case 25:
			s.modes.CursorVisible = set
			s.active.Cursor.Visible = set
		case 1000:
			if set {
				s.modes.MouseMode = 1000
			} else if s.modes.MouseMode == 1000 {
				s.modes.MouseMode = 0
			}
		case 1002:
			if set {
				s.modes.MouseMode = 1002
			} else if s.modes.MouseMode == 1002 {
				s.modes.MouseMode = 0
			}
		case 1003:
			if set {
				s.modes.MouseMode = 1003
			} else if s.modes.MouseMode == 1003 {
				s.modes.MouseMode = 0
			}
		case 1006:
			s.modes.SGRMouse = set
		case 1049:
			s.setAltScreen(set)
		case 2004:
			s.modes.BracketedPaste = set
		}
	}
}

func (s *Screen) setAltScreen(enable bool) {
	if enable == s.onAlt {
		return
	}
	s.onAlt = enable
	s.modes.AltScreen = enable
	if enable {
		s.primary.SaveCursor()
		s.active = s.alt
		s.alt.EraseInDisplay(grid.EraseAll, s.style)
	} else {
		s.active = s.primary
		s.primary.RestoreCursor()
	}
}

func (s *Screen) respondf(format string, args ...any) {
	if s.replyWriter == nil {
		return
	}
	fmt.Fprintf(s.replyWriter, format, args...)
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
