package render

import (
	"bytes"
	"fmt"

	"github.com/TheLudd/simplex/internal/cell"
)

// Renderer holds the one piece of state spec.md §4.7 allows: the previous
// committed frame. Everything else is recomputed each call.
type Renderer struct {
	prev *Frame
}

// New returns a renderer with no previous frame, so its first Render call
// is always a full redraw.
func New() *Renderer { return &Renderer{} }

// Reset discards the previous frame, forcing the next Render to redraw
// every cell — used after a RIS-equivalent reset or an outer-terminal
// resize where the old frame's dimensions no longer apply.
func (r *Renderer) Reset() { r.prev = nil }

// Render diffs f against the previous committed frame and returns the
// escape sequence bytes needed to bring the outer terminal's screen from
// one to the other, per spec.md §4.7's three-step per-cell algorithm.
// Render keeps f as the new previous frame.
func (r *Renderer) Render(f *Frame) []byte {
	var buf bytes.Buffer

	lastRow, lastCol := -1, -1
	var lastStyle cell.Style
	haveStyle := false

	for row := 0; row < f.H; row++ {
		for col := 0; col < f.W; col++ {
			c := f.Cells[row][col]
			if c.IsContinuation() {
				continue
			}
			if r.unchanged(row, col, c) {
				continue
			}

			if row != lastRow || col != lastCol {
				fmt.Fprintf(&buf, "\x1b[%d;%dH", row+1, col+1)
			}
			if !haveStyle || !lastStyle.Equal(c.Style) {
				buf.WriteString(sgrEscape(c.Style))
				lastStyle = c.Style
				haveStyle = true
			}
			buf.WriteString(c.Glyph)

			lastRow = row
			lastCol = col + max1(int(c.Width))
		}
	}

	if f.CursorVisible {
		fmt.Fprintf(&buf, "\x1b[%d;%dH\x1b[?25h", f.CursorRow+1, f.CursorCol+1)
	} else {
		buf.WriteString("\x1b[?25l")
	}

	r.prev = f
	return buf.Bytes()
}

func (r *Renderer) unchanged(row, col int, c cell.Cell) bool {
	if r.prev == nil || row >= r.prev.H || col >= r.prev.W {
		return false
	}
	p := r.prev.Cells[row][col]
	return p.Glyph == c.Glyph && p.Width == c.Width && p.Style.Equal(c.Style)
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
