package copymode

import (
	"testing"

	"github.com/TheLudd/simplex/internal/cell"
	"github.com/TheLudd/simplex/internal/grid"
)

func rowText(g *grid.Grid, row int, text string) {
	cells := g.Row(row)
	for i, r := range []rune(text) {
		if i >= len(cells) {
			break
		}
		cells[i] = cell.NewCell(r, cell.DefaultStyle)
	}
}

func newTestBuffer(t *testing.T, rows ...string) (*Buffer, *grid.Grid) {
	t.Helper()
	w := 0
	for _, r := range rows {
		if len([]rune(r)) > w {
			w = len([]rune(r))
		}
	}
	if w == 0 {
		w = 1
	}
	g := grid.New(w, len(rows), true, 100)
	for i, r := range rows {
		rowText(g, i, r)
	}
	return NewBuffer(g), g
}

func TestBasicMotions(t *testing.T) {
	buf, _ := newTestBuffer(t, "hello world", "second line")
	e := NewEngine(buf, 0, 0, 0, 2)

	e.Right(5)
	if e.Col != 5 {
		t.Fatalf("Right(5): got col %d", e.Col)
	}
	e.LineEnd()
	if e.Col != buf.LineLen(0)-1 {
		t.Fatalf("LineEnd: got col %d, want %d", e.Col, buf.LineLen(0)-1)
	}
	e.Down(1)
	if e.Row != 1 {
		t.Fatalf("Down(1): got row %d", e.Row)
	}
	e.LineStart()
	if e.Col != 0 {
		t.Fatalf("LineStart: got col %d", e.Col)
	}
}

func TestWordMotions(t *testing.T) {
	buf, _ := newTestBuffer(t, "foo bar-baz qux")
	e := NewEngine(buf, 0, 0, 0, 1)

	e.WordNext(1, false)
	if e.Col != 4 { // start of "bar"
		t.Fatalf("w: got col %d, want 4", e.Col)
	}
	e.WordNext(1, false)
	if e.Col != 7 { // "-" begins a new (punct) word
		t.Fatalf("w over punct: got col %d, want 7", e.Col)
	}
	e.WordEnd(1, false)
	if e.Col != 10 { // end of "baz", the next small word after the "-"
		t.Fatalf("e on punct: got col %d, want 10", e.Col)
	}

	e2 := NewEngine(buf, 0, 0, 0, 1)
	e2.WordNext(1, true)
	if e2.Col != 4 { // WORD motion treats "bar-baz" as one blank-delimited token
		t.Fatalf("W: got col %d, want 4", e2.Col)
	}
}

func TestFindAndRepeat(t *testing.T) {
	buf, _ := newTestBuffer(t, "a.b.c.d")
	e := NewEngine(buf, 0, 0, 0, 1)

	if !e.Find('.', 1, true, false) {
		t.Fatal("find_fwd failed")
	}
	if e.Col != 1 {
		t.Fatalf("got col %d, want 1", e.Col)
	}
	if !e.RepeatFind(1, false) {
		t.Fatal("repeat find failed")
	}
	if e.Col != 3 {
		t.Fatalf("got col %d, want 3", e.Col)
	}
	if !e.RepeatFind(1, true) {
		t.Fatal("reverse repeat find failed")
	}
	if e.Col != 1 {
		t.Fatalf("got col %d, want 1", e.Col)
	}
}

func TestTillStopsShortOfTarget(t *testing.T) {
	buf, _ := newTestBuffer(t, "abcdef")
	e := NewEngine(buf, 0, 0, 0, 1)
	if !e.Find('e', 1, true, true) {
		t.Fatal("till_fwd failed")
	}
	if e.Col != 3 { // one short of 'e' at index 4
		t.Fatalf("got col %d, want 3", e.Col)
	}
}

func TestSearchForwardWraps(t *testing.T) {
	buf, _ := newTestBuffer(t, "alpha", "beta", "gamma")
	e := NewEngine(buf, 1, 0, 0, 3)
	if !e.Search("gam", true) {
		t.Fatal("search failed")
	}
	if e.Row != 2 {
		t.Fatalf("got row %d, want 2", e.Row)
	}
	if !e.SearchNext() {
		t.Fatal("search_next failed")
	}
	// Only row 2 contains "gam", so SearchNext wraps past "alpha" and
	// "beta" and lands back on row 2.
	if e.Row != 2 {
		t.Fatalf("expected wraparound to re-find row 2, got %d", e.Row)
	}
}

func TestVisualCharSelectionYank(t *testing.T) {
	buf, _ := newTestBuffer(t, "hello world")
	e := NewEngine(buf, 0, 0, 0, 1)
	e.ToggleVisual(SelectionChar)
	e.Right(4)
	got := e.Yank()
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
	if e.Selecting() {
		t.Fatal("expected selection cleared after yank")
	}
}

func TestVisualLineSelectionYank(t *testing.T) {
	buf, _ := newTestBuffer(t, "line one", "line two", "line three")
	e := NewEngine(buf, 0, 0, 0, 3)
	e.ToggleVisual(SelectionLine)
	e.Down(1)
	got := e.Yank()
	want := "line one\nline two"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToggleVisualOffCancelsSelection(t *testing.T) {
	buf, _ := newTestBuffer(t, "abc")
	e := NewEngine(buf, 0, 0, 0, 1)
	e.ToggleVisual(SelectionChar)
	e.ToggleVisual(SelectionChar)
	if e.Selecting() {
		t.Fatal("expected second v to cancel selection")
	}
}

func TestYankWithoutSelectionIsEmpty(t *testing.T) {
	buf, _ := newTestBuffer(t, "abc")
	e := NewEngine(buf, 0, 0, 0, 1)
	if got := e.Yank(); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestTextObjectInnerWord(t *testing.T) {
	buf, _ := newTestBuffer(t, "foo bar baz")
	e := NewEngine(buf, 0, 5, 0, 1) // cursor inside "bar"
	e.TextObject(false, 'w')
	got := e.Yank()
	if got != "bar" {
		t.Fatalf("got %q, want %q", got, "bar")
	}
}

func TestTextObjectQuotes(t *testing.T) {
	buf, _ := newTestBuffer(t, `say "hello world" now`)
	e := NewEngine(buf, 0, 7, 0, 1) // cursor inside the quoted text
	e.TextObject(false, '"')
	if got := e.Yank(); got != "hello world" {
		t.Fatalf("inner quote: got %q, want %q", got, "hello world")
	}

	e2 := NewEngine(buf, 0, 7, 0, 1)
	e2.TextObject(true, '"')
	if got := e2.Yank(); got != `"hello world"` {
		t.Fatalf("around quote: got %q, want %q", got, `"hello world"`)
	}
}

func TestTextObjectBrackets(t *testing.T) {
	buf, _ := newTestBuffer(t, "foo(bar(baz)qux)end")
	// cursor on "baz", inside the nested parens
	e := NewEngine(buf, 0, 9, 0, 1)
	e.TextObject(false, '(')
	if got := e.Yank(); got != "baz" {
		t.Fatalf("inner nested paren: got %q, want %q", got, "baz")
	}

	e2 := NewEngine(buf, 0, 9, 0, 1)
	e2.TextObject(true, ')')
	if got := e2.Yank(); got != "(baz)" {
		t.Fatalf("around nested paren: got %q, want %q", got, "(baz)")
	}
}

func TestBufferScrollbackAddressing(t *testing.T) {
	g := grid.New(8, 2, true, 10)
	g.Scrollback().Push(grid.Line{Cells: []cell.Cell{
		cell.NewCell('o', cell.DefaultStyle),
		cell.NewCell('l', cell.DefaultStyle),
		cell.NewCell('d', cell.DefaultStyle),
	}})
	rowText(g, 0, "new0")
	rowText(g, 1, "new1")
	buf := NewBuffer(g)

	if buf.Len() != 3 {
		t.Fatalf("got Len %d, want 3", buf.Len())
	}
	if buf.LiveStart() != 1 {
		t.Fatalf("got LiveStart %d, want 1", buf.LiveStart())
	}
	if buf.Text(0) != "old" {
		t.Fatalf("got %q, want %q", buf.Text(0), "old")
	}
	if buf.Text(1) != "new0" {
		t.Fatalf("got %q, want %q", buf.Text(1), "new0")
	}
}
