// Package layout implements the single built-in tiled master/stack layout
// of spec.md §4.3. It is a pure function of (viewport, visible window
// order, master fraction) — no state beyond the fraction itself — the same
// shape as the teacher's CalculateTilingLayout (internal/layout/tiling.go),
// generalized from a fixed grid-of-N scheme to dvtm's master/stack split.
package layout

import "github.com/TheLudd/simplex/internal/config"

// Rect is a window's rectangle within the viewport, in outer-terminal
// cells: (X,Y) top-left, (W,H) size.
type Rect struct {
	X, Y, W, H int
}

// Engine holds the one piece of layout state spec.md §4.3 allows: the
// master fraction. It is otherwise pure.
type Engine struct {
	masterFraction float64
}

// NewEngine returns an engine at the default master fraction.
func NewEngine() *Engine {
	return &Engine{masterFraction: config.DefaultMasterFraction}
}

// MasterFraction returns the current master-column fraction.
func (e *Engine) MasterFraction() float64 { return e.masterFraction }

// GrowMaster and ShrinkMaster adjust the master fraction by the
// configured step, saturating silently at the configured bounds.
func (e *Engine) GrowMaster() {
	e.masterFraction += config.MasterFractionStep
	if e.masterFraction > config.MaxMasterFraction {
		e.masterFraction = config.MaxMasterFraction
	}
}

func (e *Engine) ShrinkMaster() {
	e.masterFraction -= config.MasterFractionStep
	if e.masterFraction < config.MinMasterFraction {
		e.masterFraction = config.MinMasterFraction
	}
}

// Compute returns one Rect per window in order, laid out master/stack: if
// n==1 it fills the viewport; otherwise windows[0] (the master) occupies
// columns [0, floor(W·f)) across every row, and windows[1:] split the
// remaining columns into even horizontal bands, remainder rows going to
// the topmost bands. Callers pass the number of visible windows as n,
// since layout.Engine has no knowledge of *window.Window.
func (e *Engine) Compute(n, viewportW, viewportH int) []Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Rect{{X: 0, Y: 0, W: viewportW, H: viewportH}}
	}

	masterW := int(float64(viewportW) * e.masterFraction)
	if masterW < 1 {
		masterW = 1
	}
	if masterW > viewportW-1 {
		masterW = viewportW - 1
	}
	stackW := viewportW - masterW
	stackN := n - 1

	rects := make([]Rect, n)
	rects[0] = Rect{X: 0, Y: 0, W: masterW, H: viewportH}

	baseH := viewportH / stackN
	remainder := viewportH % stackN
	y := 0
	for i := 0; i < stackN; i++ {
		h := baseH
		if i < remainder {
			h++
		}
		rects[i+1] = Rect{X: masterW, Y: y, W: stackW, H: h}
		y += h
	}
	return rects
}
