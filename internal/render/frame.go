// Package render implements the differential renderer of spec.md §4.7:
// it diffs a composed frame (built by internal/eventloop from layout
// rectangles, each visible window's grid, an optional status bar, and an
// optional copy-mode overlay) against the previous frame to emit the
// minimum CUP/SGR/glyph sequence. It is the generalization of the teacher's render loop
// (internal/app's Update/View cycle, driven by bubbletea) to a hand-rolled
// diffing emitter — spec.md §9 asks for the renderer itself, not a TUI
// framework, to own the previous-frame state.
package render

import "github.com/TheLudd/simplex/internal/cell"

// Frame is a fully composited W×H rectangle of cells: one outer-terminal
// screen's worth of content, ready to diff and emit.
type Frame struct {
	W, H  int
	Cells [][]cell.Cell

	// CursorRow/CursorCol/CursorVisible place the outer terminal's real
	// cursor once the frame is committed (spec.md §4.7: "park the cursor
	// at the focused window's cursor position and restore its
	// visibility").
	CursorRow, CursorCol int
	CursorVisible        bool
}

// NewFrame allocates a blank W×H frame.
func NewFrame(w, h int) *Frame {
	f := &Frame{W: w, H: h, Cells: make([][]cell.Cell, h)}
	for r := range f.Cells {
		row := make([]cell.Cell, w)
		for c := range row {
			row[c] = cell.Blank
		}
		f.Cells[r] = row
	}
	return f
}

// Blit copies src's W×H cells into f starting at (row,col), clipping
// anything that would run past f's bounds. Used to place a window's
// grid, the status bar, or the copy-mode overlay into the composed
// frame at its layout rectangle.
func (f *Frame) Blit(row, col int, srcW, srcH int, at func(r, c int) cell.Cell) {
	for r := 0; r < srcH; r++ {
		dr := row + r
		if dr < 0 || dr >= f.H {
			continue
		}
		for c := 0; c < srcW; c++ {
			dc := col + c
			if dc < 0 || dc >= f.W {
				continue
			}
			f.Cells[dr][dc] = at(r, c)
		}
	}
}

// Set places a single cell, clipped to bounds. Used for status-bar text
// and the copy-mode overlay's one-off glyphs.
func (f *Frame) Set(row, col int, c cell.Cell) {
	if row < 0 || row >= f.H || col < 0 || col >= f.W {
		return
	}
	f.Cells[row][col] = c
}
