package grid

import "github.com/TheLudd/simplex/internal/cell"

// PutChar writes one glyph at the cursor, honoring auto-wrap and wide
// characters, then advances the cursor or sets WrapPending per spec.md §3:
// after writing column W-1 the cursor enters WrapPending rather than
// advancing, so the *next* printable character performs the wrap.
func (g *Grid) PutChar(glyph string, width int, style cell.Style, autoWrap bool) {
	if width <= 0 {
		width = 1
	}

	if g.Cursor.WrapPending {
		if autoWrap {
			g.lineFeed()
			g.Cursor.Col = 0
		}
		g.Cursor.WrapPending = false
	}

	if width == 2 && g.Cursor.Col == g.W-1 {
		// A wide cell never straddles the right edge: pad this column and
		// wrap the character itself onto the next row.
		g.setCell(g.Cursor.Row, g.Cursor.Col, cell.Cell{Glyph: " ", Width: 1, Style: style})
		if autoWrap {
			g.lineFeed()
			g.Cursor.Col = 0
		} else {
			return
		}
	}

	row, col := g.Cursor.Row, g.Cursor.Col
	g.setCell(row, col, cell.Cell{Glyph: glyph, Width: uint8(width), Style: style, Dirty: true})
	if width == 2 {
		g.setCell(row, col+1, cell.Continuation(style))
	}

	newCol := col + width
	if newCol >= g.W {
		g.Cursor.Col = g.W - 1
		g.Cursor.WrapPending = true
	} else {
		g.Cursor.Col = newCol
	}
}

func (g *Grid) setCell(r, c int, ce cell.Cell) {
	if r < 0 || r >= g.H || c < 0 || c >= g.W {
		return
	}
	g.rows[r][c] = ce
}

// MoveCursor moves the cursor to an absolute (row,col), clamped into
// bounds, and clears WrapPending (any CUP-family motion cancels a pending
// wrap).
func (g *Grid) MoveCursor(row, col int) {
	g.Cursor.Row, g.Cursor.Col = row, col
	g.ClampCursor()
	g.Cursor.WrapPending = false
}

// MoveCursorRel moves the cursor by a relative offset, clamped into
// bounds (used by CUU/CUD/CUF/CUB).
func (g *Grid) MoveCursorRel(drow, dcol int) {
	g.MoveCursor(g.Cursor.Row+drow, g.Cursor.Col+dcol)
}

// lineFeed performs an LF: if the cursor is at the bottom of the scroll
// region, the region scrolls up one line (archiving to scrollback when
// appropriate); otherwise the cursor simply moves down one row.
func (g *Grid) lineFeed() {
	if g.Cursor.Row == g.Bottom {
		g.ScrollUp(1)
	} else if g.Cursor.Row < g.H-1 {
		g.Cursor.Row++
	}
}

// Index performs LF/VT/FF: index with scroll-region awareness.
func (g *Grid) Index() { g.lineFeed() }

// ReverseIndex performs ESC M: move up, scrolling the region down at top.
func (g *Grid) ReverseIndex() {
	if g.Cursor.Row == g.Top {
		g.ScrollDown(1)
	} else if g.Cursor.Row > 0 {
		g.Cursor.Row--
	}
}

// CR performs a carriage return.
func (g *Grid) CR() { g.Cursor.Col = 0; g.Cursor.WrapPending = false }

// ScrollUp scrolls the scroll region up by n lines. Lines leaving the top
// of the region are archived to scrollback only when the region spans the
// entire screen (spec.md §4.2: "Scrollback append occurs when scrolling at
// the bottom of the full-screen region (not when a DECSTBM region is
// active)") and the grid is configured to append (the primary screen).
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	fullScreen := g.Top == 0 && g.Bottom == g.H-1
	for i := 0; i < n; i++ {
		if fullScreen && g.appendScrollback && g.scrollback != nil {
			g.scrollback.Push(Line{Cells: clone(g.rows[g.Top])})
		}
		copy(g.rows[g.Top:g.Bottom], g.rows[g.Top+1:g.Bottom+1])
		g.rows[g.Bottom] = blankRow(g.W)
	}
}

// ScrollDown scrolls the scroll region down by n lines (SD / reverse
// index); never touches scrollback.
func (g *Grid) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		copy(g.rows[g.Top+1:g.Bottom+1], g.rows[g.Top:g.Bottom])
		g.rows[g.Top] = blankRow(g.W)
	}
}

// EraseMode mirrors ED/EL's numeric argument.
type EraseMode int

const (
	EraseToEnd EraseMode = iota
	EraseToStart
	EraseAll
	EraseAllAndScrollback // ED 3
)

// EraseInLine implements EL.
func (g *Grid) EraseInLine(mode EraseMode, style cell.Style) {
	row := g.rows[g.Cursor.Row]
	switch mode {
	case EraseToEnd:
		eraseSpan(row, g.Cursor.Col, g.W, style)
	case EraseToStart:
		eraseSpan(row, 0, g.Cursor.Col+1, style)
	case EraseAll:
		eraseSpan(row, 0, g.W, style)
	}
}

// EraseInDisplay implements ED.
func (g *Grid) EraseInDisplay(mode EraseMode, style cell.Style) {
	switch mode {
	case EraseToEnd:
		g.EraseInLine(EraseToEnd, style)
		for r := g.Cursor.Row + 1; r < g.H; r++ {
			eraseSpan(g.rows[r], 0, g.W, style)
		}
	case EraseToStart:
		g.EraseInLine(EraseToStart, style)
		for r := 0; r < g.Cursor.Row; r++ {
			eraseSpan(g.rows[r], 0, g.W, style)
		}
	case EraseAll, EraseAllAndScrollback:
		for r := 0; r < g.H; r++ {
			eraseSpan(g.rows[r], 0, g.W, style)
		}
		if mode == EraseAllAndScrollback && g.scrollback != nil {
			g.scrollback = NewScrollback(g.scrollback.Cap())
		}
	}
}

func eraseSpan(row []cell.Cell, from, to int, style cell.Style) {
	if from < 0 {
		from = 0
	}
	if to > len(row) {
		to = len(row)
	}
	for i := from; i < to; i++ {
		row[i] = cell.Cell{Glyph: " ", Width: 1, Style: style, Dirty: true}
	}
}

// InsertLines implements IL: insert n blank lines at the cursor row,
// within the scroll region, pushing lines below down and off the bottom
// of the region (they are not archived: IL/DL reshuffle, they do not
// scroll the whole screen).
func (g *Grid) InsertLines(n int, style cell.Style) {
	if g.Cursor.Row < g.Top || g.Cursor.Row > g.Bottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(g.rows[g.Cursor.Row+1:g.Bottom+1], g.rows[g.Cursor.Row:g.Bottom])
		row := blankRow(g.W)
		eraseSpan(row, 0, g.W, style)
		g.rows[g.Cursor.Row] = row
	}
}

// DeleteLines implements DL: delete n lines at the cursor row, within the
// scroll region, pulling lines below up.
func (g *Grid) DeleteLines(n int, style cell.Style) {
	if g.Cursor.Row < g.Top || g.Cursor.Row > g.Bottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(g.rows[g.Cursor.Row:g.Bottom], g.rows[g.Cursor.Row+1:g.Bottom+1])
		row := blankRow(g.W)
		eraseSpan(row, 0, g.W, style)
		g.rows[g.Bottom] = row
	}
}

// InsertChars implements ICH: insert n blanks at the cursor column,
// shifting the rest of the line right (characters past the right edge
// are discarded).
func (g *Grid) InsertChars(n int, style cell.Style) {
	row := g.rows[g.Cursor.Row]
	c := g.Cursor.Col
	if c >= g.W {
		return
	}
	copy(row[min(c+n, g.W):], row[c:max(c, g.W-n)])
	eraseSpan(row, c, min(c+n, g.W), style)
}

// DeleteChars implements DCH: delete n chars at the cursor column,
// shifting the rest of the line left and blanking the vacated tail.
func (g *Grid) DeleteChars(n int, style cell.Style) {
	row := g.rows[g.Cursor.Row]
	c := g.Cursor.Col
	if c >= g.W {
		return
	}
	copy(row[c:], row[min(c+n, g.W):])
	eraseSpan(row, max(g.W-n, c), g.W, style)
}

// EraseChars implements ECH: erase n characters at the cursor without
// shifting anything.
func (g *Grid) EraseChars(n int, style cell.Style) {
	eraseSpan(g.rows[g.Cursor.Row], g.Cursor.Col, g.Cursor.Col+n, style)
}
