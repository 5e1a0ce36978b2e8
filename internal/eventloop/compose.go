package eventloop

import (
	"fmt"
	"strings"

	"github.com/TheLudd/simplex/internal/cell"
	"github.com/TheLudd/simplex/internal/dispatch"
	"github.com/TheLudd/simplex/internal/layout"
	"github.com/TheLudd/simplex/internal/render"
)

// Compose assembles one full Frame from current state: every visible
// window blitted into its tiled rect (the window in copy mode rendered
// from its buffer instead of its live grid), plus a one-row status bar.
// It lives here rather than in internal/render so that package can stay
// a pure leaf (Frame + Renderer + SGR only) with no knowledge of
// windows, layout, or tags.
func (l *Loop) Compose(viewportW, viewportH int) *render.Frame {
	f := render.NewFrame(viewportW, viewportH)

	visible := l.tags.VisibleOrder()
	contentH := l.contentHeight()
	rects := l.layoutEngine.Compute(len(visible), viewportW, contentH)

	for i, id := range visible {
		w := l.pool.Get(id)
		if w == nil {
			continue
		}
		rect := rects[i]
		if l.copy != nil && l.copyWindowID == id {
			l.blitCopyBuffer(f, rect)
		} else {
			g := w.Screen.Active()
			f.Blit(rect.Y, rect.X, rect.W, rect.H, func(r, c int) cell.Cell {
				row := g.Row(r)
				if c >= len(row) {
					return cell.NewCell(' ', cell.DefaultStyle)
				}
				return row[c]
			})
		}
	}

	l.composeCursor(f, visible, rects)
	l.composeStatusBar(f, viewportW, viewportH)
	return f
}

// composeCursor parks the frame's cursor at the focused window's live
// cursor position (copy mode hides the real cursor behind its own
// highlighted position, handled by blitCopyBuffer's inverse-video cell).
func (l *Loop) composeCursor(f *render.Frame, visible []int, rects []layout.Rect) {
	id := l.tags.Focused()
	if id == 0 || l.copy != nil {
		f.CursorVisible = false
		return
	}
	for i, v := range visible {
		if v != id {
			continue
		}
		w := l.pool.Get(id)
		if w == nil {
			return
		}
		rect := rects[i]
		g := w.Screen.Active()
		f.CursorRow = rect.Y + g.Cursor.Row
		f.CursorCol = rect.X + g.Cursor.Col
		f.CursorVisible = g.Cursor.Visible
		return
	}
}

// blitCopyBuffer renders the copy-mode buffer's current viewport window
// into rect, highlighting the selection (if any) and the cursor cell in
// reverse video so the user can see both without a real terminal cursor.
func (l *Loop) blitCopyBuffer(f *render.Frame, rect layout.Rect) {
	c := l.copy
	top, rows := c.Viewport()
	for r := 0; r < rect.H && r < rows; r++ {
		bufRow := top + r
		for col := 0; col < rect.W; col++ {
			ch := c.RuneAt(bufRow, col)
			style := cell.DefaultStyle
			if c.Highlighted(bufRow, col) || (bufRow == c.Row && col == c.Col) {
				style = style.With(cell.AttrReverse)
			}
			f.Set(rect.Y+r, rect.X+col, cell.NewCell(ch, style))
		}
	}
}

// composeStatusBar renders the final row: dispatcher mode, current view
// tag set, the window list with a marker on the focused one, and the
// broadcast flag.
func (l *Loop) composeStatusBar(f *render.Frame, w, h int) {
	if h < 1 {
		return
	}
	row := h - 1

	var sb strings.Builder
	sb.WriteString(modeLabel(l))
	sb.WriteString(" view:")
	sb.WriteString(tagsLabel(l.tags.View()))
	if l.tags.Broadcast {
		sb.WriteString(" [broadcast]")
	}
	sb.WriteString("  ")
	for _, win := range l.pool.All() {
		marker := " "
		if win.ID == l.tags.Focused() {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%d:%s ", marker, win.ID, win.Title()))
	}
	if l.statusMsg != "" {
		sb.WriteString(" | ")
		sb.WriteString(l.statusMsg)
	}

	style := cell.DefaultStyle.With(cell.AttrReverse)
	runes := []rune(sb.String())
	for col := 0; col < w; col++ {
		r := rune(' ')
		if col < len(runes) {
			r = runes[col]
		}
		f.Set(row, col, cell.NewCell(r, style))
	}
}

func modeLabel(l *Loop) string {
	if l.copy != nil {
		return "[COPY]"
	}
	switch l.dispatcher.Mode() {
	case dispatch.ModePrefix, dispatch.ModePrefixAwaitViewTag,
		dispatch.ModePrefixAwaitSetTag, dispatch.ModePrefixAwaitToggleTag:
		return "[PREFIX]"
	default:
		return "[NORMAL]"
	}
}

func tagsLabel(view map[int]bool) string {
	var sb strings.Builder
	for t := 1; t <= 9; t++ {
		if view[t] {
			sb.WriteString(fmt.Sprintf("%d", t))
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
