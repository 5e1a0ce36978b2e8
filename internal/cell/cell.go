package cell

import "github.com/mattn/go-runewidth"

// Cell is one grid position: a user-perceived character (which may be
// several codepoints when a combining mark is attached), its display
// width, its style, and a dirty flag the renderer clears once emitted.
type Cell struct {
	Glyph string
	Width uint8
	Style Style
	Dirty bool
}

// Blank is an empty cell of default style, width 1 — what a freshly
// allocated or erased grid position holds.
var Blank = Cell{Glyph: " ", Width: 1, Style: DefaultStyle}

// Continuation is the sentinel placed in the second column of a wide
// cell: empty glyph, width 0, same style as the cell it continues.
func Continuation(style Style) Cell {
	return Cell{Glyph: "", Width: 0, Style: style}
}

// IsContinuation reports whether c is a wide-cell continuation sentinel.
func (c Cell) IsContinuation() bool { return c.Width == 0 }

// GlyphWidth returns the East-Asian display width (1 or 2) of r. Combining
// marks report width 0 and are expected to be merged into the preceding
// cell's Glyph by the caller rather than occupying a column of their own.
func GlyphWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// NewCell builds a cell from a single rune and a style, computing Width via
// go-runewidth. Combining marks (width 0) should instead be appended to an
// existing Cell.Glyph by the caller; NewCell never returns Width 0 for a
// non-combining rune.
func NewCell(r rune, style Style) Cell {
	w := GlyphWidth(r)
	if w <= 0 {
		w = 1
	}
	return Cell{Glyph: string(r), Width: uint8(w), Style: style, Dirty: true}
}
