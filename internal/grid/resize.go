package grid

import "github.com/TheLudd/simplex/internal/cell"

// Resize implements spec.md §4.2's resize policy.
//
// Height decrease: lines above the cursor are pushed into scrollback up to
// the deficit; otherwise lines are dropped from the bottom.
// Height increase: lines are pulled back from scrollback if available,
// otherwise blank lines are appended.
// Width change: the live grid is truncated or null-padded per row without
// reflow; reflow happens only in scrollback, and only on the primary
// screen, tracked via each archived line's WrapsNext marker. Rows archived
// by scrolling or by a height decrease carry WrapsNext false, so Reflow
// rejoins only lines that an earlier Reflow split; a line the child's
// output soft-wrapped stays as separate archived rows. Children are
// expected to redraw after a width change, matching real terminals.
func (g *Grid) Resize(w, h int) {
	if w == g.W && h == g.H {
		return
	}
	if h != g.H {
		g.resizeHeight(h)
	}
	if w != g.W {
		g.resizeWidth(w)
	}
	g.Bottom = g.H - 1
	if g.Top > g.Bottom {
		g.Top = 0
	}
	g.ClampCursor()
}

func (g *Grid) resizeHeight(h int) {
	if h < g.H {
		deficit := g.H - h
		cursorRow := g.Cursor.Row
		// Push lines above the cursor into scrollback up to the deficit;
		// anything beyond that is simply dropped from the bottom.
		pushed := 0
		for pushed < deficit && pushed < cursorRow {
			if g.appendScrollback && g.scrollback != nil {
				g.scrollback.Push(Line{Cells: clone(g.rows[pushed])})
			}
			pushed++
		}
		g.rows = append([][]cell.Cell{}, g.rows[pushed:]...)
		if len(g.rows) > h {
			g.rows = g.rows[:h]
		}
		for len(g.rows) < h {
			g.rows = append(g.rows, blankRow(g.W))
		}
		g.Cursor.Row -= pushed
	} else {
		// Growing: pull lines back from scrollback if available (newest
		// first, so the most recently scrolled-off line reappears just
		// above the old top row), else pad with blanks at the bottom.
		need := h - g.H
		pulled := make([][]cell.Cell, 0, need)
		for len(pulled) < need {
			if g.scrollback == nil {
				break
			}
			l, ok := g.scrollback.PopBack()
			if !ok {
				break
			}
			pulled = append(pulled, fitRow(l.Cells, g.W))
		}
		// pulled is newest-first; reverse so the pulled rows keep their
		// original order, the newest ending up immediately above the
		// prior top row.
		for i, j := 0, len(pulled)-1; i < j; i, j = i+1, j-1 {
			pulled[i], pulled[j] = pulled[j], pulled[i]
		}
		newRows := make([][]cell.Cell, 0, h)
		newRows = append(newRows, pulled...)
		newRows = append(newRows, g.rows...)
		for len(newRows) < h {
			newRows = append(newRows, blankRow(g.W))
		}
		g.Cursor.Row += len(pulled)
		g.rows = newRows
	}
	g.H = h
}

func (g *Grid) resizeWidth(w int) {
	for i, row := range g.rows {
		g.rows[i] = fitRow(row, w)
	}
	if g.appendScrollback && g.scrollback != nil {
		g.scrollback.Reflow(w)
	}
	g.W = w
}

// fitRow truncates or null-pads a row to width w without reflow.
func fitRow(row []cell.Cell, w int) []cell.Cell {
	out := make([]cell.Cell, w)
	n := len(row)
	if n > w {
		n = w
	}
	copy(out, row[:n])
	for i := n; i < w; i++ {
		out[i] = cell.Blank
	}
	return out
}
