// Package copymode implements the per-window scrollback navigation and
// selection engine of spec.md §4.8: a vi-style modal cursor over a single
// virtual buffer formed by concatenating a window's scrollback ring with
// its live grid, plus character-wise/line-wise visual selection and
// regexp search. It is grounded on the teacher's own emulator/grid
// separation — Buffer plays the same read-only "view over two stores"
// role the teacher's tape viewer plays over a recording — generalized
// here to scrollback+grid instead of a recorded-session tape.
package copymode

import (
	"github.com/TheLudd/simplex/internal/cell"
	"github.com/TheLudd/simplex/internal/grid"
)

// Buffer presents a window's scrollback ring and live grid as one
// continuously addressed sequence of rows: [0, scrollback.Len()) are
// archived lines, oldest first; [scrollback.Len(), Len()) are the live
// grid's rows top to bottom. It holds no state of its own beyond the two
// pointers, so it is always in sync with the window it views.
type Buffer struct {
	sb *grid.Scrollback
	g  *grid.Grid
}

// NewBuffer builds a view over g's scrollback (may be nil on the
// alternate screen, in which case only live rows are addressable) and
// live grid.
func NewBuffer(g *grid.Grid) *Buffer {
	return &Buffer{sb: g.Scrollback(), g: g}
}

// Len returns the total number of addressable rows.
func (b *Buffer) Len() int {
	n := b.g.H
	if b.sb != nil {
		n += b.sb.Len()
	}
	return n
}

// LiveStart returns the row index at which the live grid begins; rows
// before it are scrollback.
func (b *Buffer) LiveStart() int {
	if b.sb == nil {
		return 0
	}
	return b.sb.Len()
}

func (b *Buffer) cells(row int) []cell.Cell {
	if row < 0 || row >= b.Len() {
		return nil
	}
	start := b.LiveStart()
	if row < start {
		l, ok := b.sb.At(row)
		if !ok {
			return nil
		}
		return l.Cells
	}
	return b.g.Row(row - start)
}

// runeRow renders row as one display rune per logical column, skipping
// wide-cell continuation slots so columns line up with what the user
// perceives as characters rather than raw grid cells.
func (b *Buffer) runeRow(row int) []rune {
	cells := b.cells(row)
	out := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.IsContinuation() {
			continue
		}
		if c.Glyph == "" {
			out = append(out, ' ')
			continue
		}
		out = append(out, []rune(c.Glyph)[0])
	}
	return out
}

// LineLen returns the number of logical columns in row.
func (b *Buffer) LineLen(row int) int {
	return len(b.runeRow(row))
}

// LastNonBlank returns the column of the last non-blank cell in row, or 0
// if the row is entirely blank.
func (b *Buffer) LastNonBlank(row int) int {
	cells := b.runeRow(row)
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] != ' ' {
			return i
		}
	}
	return 0
}

// FirstNonBlank returns the column of the first non-blank cell in row, or
// 0 if the row is entirely blank.
func (b *Buffer) FirstNonBlank(row int) int {
	cells := b.runeRow(row)
	for i, r := range cells {
		if r != ' ' {
			return i
		}
	}
	return 0
}

// RuneAt returns the display rune at (row,col), or a blank space if out
// of range (treating "past end of line" as a word/motion boundary, the
// same convention vi applies at a line break).
func (b *Buffer) RuneAt(row, col int) rune {
	cells := b.runeRow(row)
	if col < 0 || col >= len(cells) {
		return ' '
	}
	return cells[col]
}

// Text returns row rendered as a plain string, trailing blanks trimmed.
func (b *Buffer) Text(row int) string {
	cells := b.runeRow(row)
	end := len(cells)
	for end > 0 && cells[end-1] == ' ' {
		end--
	}
	return string(cells[:end])
}
