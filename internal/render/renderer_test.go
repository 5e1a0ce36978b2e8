package render

import (
	"strings"
	"testing"

	"github.com/TheLudd/simplex/internal/cell"
)

func glyphCell(r rune, style cell.Style) cell.Cell {
	return cell.NewCell(r, style)
}

func TestFirstRenderIsFullRedraw(t *testing.T) {
	f := NewFrame(3, 1)
	f.Set(0, 0, glyphCell('a', cell.DefaultStyle))
	f.Set(0, 1, glyphCell('b', cell.DefaultStyle))
	f.Set(0, 2, glyphCell('c', cell.DefaultStyle))

	r := New()
	out := string(r.Render(f))
	for _, ch := range []string{"a", "b", "c"} {
		if !strings.Contains(out, ch) {
			t.Fatalf("expected first render to contain %q, got %q", ch, out)
		}
	}
}

func TestSecondRenderSkipsUnchangedCells(t *testing.T) {
	f1 := NewFrame(3, 1)
	f1.Set(0, 0, glyphCell('a', cell.DefaultStyle))
	f1.Set(0, 1, glyphCell('b', cell.DefaultStyle))
	f1.Set(0, 2, glyphCell('c', cell.DefaultStyle))

	r := New()
	r.Render(f1)

	f2 := NewFrame(3, 1)
	f2.Set(0, 0, glyphCell('a', cell.DefaultStyle))
	f2.Set(0, 1, glyphCell('x', cell.DefaultStyle)) // only this cell changes
	f2.Set(0, 2, glyphCell('c', cell.DefaultStyle))

	out := string(r.Render(f2))
	if !strings.Contains(out, "x") {
		t.Fatalf("expected changed cell 'x' in output, got %q", out)
	}
	if strings.Contains(out, "a") || strings.Contains(out, "c") {
		t.Fatalf("expected unchanged cells to be skipped, got %q", out)
	}
}

func TestStyleChangeEmitsSGR(t *testing.T) {
	f1 := NewFrame(1, 1)
	f1.Set(0, 0, glyphCell('a', cell.DefaultStyle))
	r := New()
	r.Render(f1)

	bold := cell.DefaultStyle.With(cell.AttrBold)
	f2 := NewFrame(1, 1)
	f2.Set(0, 0, glyphCell('a', bold))
	out := string(r.Render(f2))
	if !strings.Contains(out, "\x1b[0;1m") {
		t.Fatalf("expected bold SGR transition, got %q", out)
	}
}

func TestTrueColorEmitsSGR38_2(t *testing.T) {
	f := NewFrame(1, 1)
	style := cell.Style{Fg: cell.TrueColor(10, 20, 30)}
	f.Set(0, 0, glyphCell('z', style))
	out := string(New().Render(f))
	if !strings.Contains(out, "38;2;10;20;30") {
		t.Fatalf("expected truecolor SGR, got %q", out)
	}
}

func TestResetForcesFullRedraw(t *testing.T) {
	f := NewFrame(1, 1)
	f.Set(0, 0, glyphCell('a', cell.DefaultStyle))
	r := New()
	r.Render(f)
	r.Reset()
	out := string(r.Render(f))
	if !strings.Contains(out, "a") {
		t.Fatalf("expected reset to force full redraw, got %q", out)
	}
}

func TestCursorParkedAtEnd(t *testing.T) {
	f := NewFrame(4, 4)
	f.CursorRow, f.CursorCol, f.CursorVisible = 2, 3, true
	out := string(New().Render(f))
	if !strings.Contains(out, "\x1b[3;4H") {
		t.Fatalf("expected cursor parked at row 3 col 4, got %q", out)
	}
	if !strings.Contains(out, "?25h") {
		t.Fatalf("expected cursor visibility restored, got %q", out)
	}
}
