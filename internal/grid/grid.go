// Package grid implements the 2-D cell grid and its scrollback ring
// (spec.md §3 "Grid"/"Scrollback ring"/"Screen", §4.2). It knows nothing
// about PTYs or parsing; the vtparse package drives it through the
// operations below, the same separation the teacher keeps between
// internal/vt's Screen and its Emulator.
package grid

import "github.com/TheLudd/simplex/internal/cell"

// Cursor is the grid's cursor state.
type Cursor struct {
	Row, Col    int
	Style       cell.Style
	WrapPending bool
	Visible     bool
	saved       *savedCursor
}

type savedCursor struct {
	Row, Col int
	Style    cell.Style
}

// Grid is a fixed W×H array of Cell plus cursor and scroll-region state.
// Rows are addressed [0,H), columns [0,W).
type Grid struct {
	W, H int
	rows [][]cell.Cell

	Cursor Cursor

	// Top and Bottom delimit the scroll region, inclusive, 0-indexed.
	// A freshly constructed or resized Grid has the full-screen region.
	Top, Bottom int

	scrollback *Scrollback
	// appendScrollback is false on the alternate screen: lines scrolled
	// off the top there are discarded, never archived (spec.md §3).
	appendScrollback bool
}

// New builds a W×H grid of blank cells. appendScrollback controls whether
// lines scrolled off the top are archived (true for the primary screen,
// false for the alternate screen, per spec.md §3).
func New(w, h int, appendScrollback bool, scrollbackCap int) *Grid {
	g := &Grid{
		W: w, H: h,
		Top: 0, Bottom: h - 1,
		Cursor:           Cursor{Visible: true, Style: cell.DefaultStyle},
		appendScrollback: appendScrollback,
	}
	if appendScrollback {
		g.scrollback = NewScrollback(scrollbackCap)
	}
	g.rows = make([][]cell.Cell, h)
	for i := range g.rows {
		g.rows[i] = blankRow(w)
	}
	return g
}

func blankRow(w int) []cell.Cell {
	row := make([]cell.Cell, w)
	for i := range row {
		row[i] = cell.Blank
	}
	return row
}

// Row returns the live cells of row r. The returned slice aliases grid
// storage and must not be retained past the next mutation.
func (g *Grid) Row(r int) []cell.Cell {
	if r < 0 || r >= g.H {
		return nil
	}
	return g.rows[r]
}

// At returns the cell at (r,c), or the zero Cell if out of bounds.
func (g *Grid) At(r, c int) cell.Cell {
	if r < 0 || r >= g.H || c < 0 || c >= g.W {
		return cell.Cell{}
	}
	return g.rows[r][c]
}

// Scrollback returns the grid's scrollback ring, or nil on the alternate
// screen (which never archives).
func (g *Grid) Scrollback() *Scrollback { return g.scrollback }

// SetRegion sets the scroll region [top,bottom], clamped into bounds.
// An invalid region (top>=bottom) is silently ignored, matching the VT
// parser's "malformed sequence is dropped" failure policy.
func (g *Grid) SetRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > g.H-1 {
		bottom = g.H - 1
	}
	if top >= bottom {
		return
	}
	g.Top, g.Bottom = top, bottom
}

// ClampCursor forces the cursor back inside grid bounds; used after
// resize and as a final invariant check.
func (g *Grid) ClampCursor() {
	if g.Cursor.Row < 0 {
		g.Cursor.Row = 0
	}
	if g.Cursor.Row >= g.H {
		g.Cursor.Row = g.H - 1
	}
	if g.Cursor.Col < 0 {
		g.Cursor.Col = 0
	}
	if g.Cursor.Col >= g.W {
		g.Cursor.Col = g.W - 1
	}
}

// SaveCursor implements DECSC (ESC 7) / the cursor half of xterm 1049.
func (g *Grid) SaveCursor() {
	s := savedCursor{Row: g.Cursor.Row, Col: g.Cursor.Col, Style: g.Cursor.Style}
	g.Cursor.saved = &s
}

// RestoreCursor implements DECRC (ESC 8). A no-op if nothing was saved.
func (g *Grid) RestoreCursor() {
	if g.Cursor.saved == nil {
		return
	}
	g.Cursor.Row = g.Cursor.saved.Row
	g.Cursor.Col = g.Cursor.saved.Col
	g.Cursor.Style = g.Cursor.saved.Style
	g.Cursor.WrapPending = false
	g.ClampCursor()
}
