package copymode

import (
	"regexp"
	"unicode/utf8"
)

// SelectionKind distinguishes character-wise from line-wise visual
// selection (spec.md §4.8 "v"/"V").
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionChar
	SelectionLine
)

// Engine is the modal cursor over a Buffer: position, selection state,
// and the small amount of history (last find target, last search
// pattern/direction) the repeat commands need.
type Engine struct {
	buf *Buffer

	Row, Col int

	viewTop, viewH int

	sel        SelectionKind
	anchorRow  int
	anchorCol  int

	lastFindOp string
	lastFindCh rune

	lastPattern string
	lastDir     string // "search_fwd" or "search_back"
}

// NewEngine starts the cursor at (startRow, startCol) — normally the
// live cursor's position mapped into buffer coordinates — viewing
// viewH rows starting at viewTop.
func NewEngine(buf *Buffer, startRow, startCol, viewTop, viewH int) *Engine {
	e := &Engine{buf: buf, Row: startRow, Col: startCol, viewTop: viewTop, viewH: viewH}
	e.clampCol()
	return e
}

// SetViewport updates which rows are currently on screen, for H/M/L.
func (e *Engine) SetViewport(top, h int) {
	e.viewTop, e.viewH = top, h
}

// clampCol keeps the cursor within the current row's columns after a
// vertical move; FirstNonBlank-style motions apply their own tighter
// bound directly, so this only enforces the outer [0, lineLen) range.
func (e *Engine) clampCol() {
	e.Col = clampInt(e.Col, 0, maxLenOrZero(e.buf.LineLen(e.Row)))
}

func maxLenOrZero(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- basic motions ---

func (e *Engine) Left(count int)  { e.Col = clampInt(e.Col-count, 0, maxLenOrZero(e.buf.LineLen(e.Row))) }
func (e *Engine) Right(count int) { e.Col = clampInt(e.Col+count, 0, maxLenOrZero(e.buf.LineLen(e.Row))) }

func (e *Engine) Up(count int) {
	e.Row = clampInt(e.Row-count, 0, e.buf.Len()-1)
	e.clampCol()
}

func (e *Engine) Down(count int) {
	e.Row = clampInt(e.Row+count, 0, e.buf.Len()-1)
	e.clampCol()
}

func (e *Engine) LineStart()     { e.Col = 0 }
func (e *Engine) LineEnd()       { e.Col = maxLenOrZero(e.buf.LineLen(e.Row)) }
func (e *Engine) FirstNonBlank() { e.Col = e.buf.FirstNonBlank(e.Row) }

func (e *Engine) BufferTop() {
	e.Row = 0
	e.Col = e.buf.FirstNonBlank(0)
}

func (e *Engine) BufferBottom() {
	e.Row = e.buf.Len() - 1
	e.Col = e.buf.FirstNonBlank(e.Row)
}

func (e *Engine) PageTop() {
	e.Row = clampInt(e.viewTop, 0, e.buf.Len()-1)
	e.clampCol()
}

func (e *Engine) PageMiddle() {
	e.Row = clampInt(e.viewTop+e.viewH/2, 0, e.buf.Len()-1)
	e.clampCol()
}

func (e *Engine) PageBottom() {
	e.Row = clampInt(e.viewTop+e.viewH-1, 0, e.buf.Len()-1)
	e.clampCol()
}

// --- cross-line stepping, shared by word motions and find/search ---

func (e *Engine) advance() bool {
	if e.Col+1 < e.buf.LineLen(e.Row) {
		e.Col++
		return true
	}
	if e.Row+1 < e.buf.Len() {
		e.Row++
		e.Col = 0
		return true
	}
	return false
}

func (e *Engine) retreat() bool {
	if e.Col > 0 {
		e.Col--
		return true
	}
	if e.Row > 0 {
		e.Row--
		e.Col = maxLenOrZero(e.buf.LineLen(e.Row))
		return true
	}
	return false
}

type charClass int

const (
	classBlank charClass = iota
	classWord
	classPunct
)

func classify(r rune) charClass {
	switch {
	case r == ' ' || r == 0:
		return classBlank
	case r == '_' || isAlnum(r):
		return classWord
	default:
		return classPunct
	}
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r > 127 // treat any non-ASCII glyph as word-class, matching broad Unicode word intent
}

func (e *Engine) at() rune { return e.buf.RuneAt(e.Row, e.Col) }

// WordNext implements "w"/"W": advance past the current word (or punct
// run), then past any following blanks, count times.
func (e *Engine) WordNext(count int, big bool) {
	for i := 0; i < count; i++ {
		cls := classify(e.at())
		if cls != classBlank {
			for {
				if !e.advance() {
					return
				}
				c2 := classify(e.at())
				if big {
					if c2 == classBlank {
						break
					}
				} else if c2 != cls {
					break
				}
			}
		}
		for classify(e.at()) == classBlank {
			if !e.advance() {
				return
			}
		}
	}
}

// WordPrev implements "b"/"B": the mirror image of WordNext.
func (e *Engine) WordPrev(count int, big bool) {
	for i := 0; i < count; i++ {
		if !e.retreat() {
			return
		}
		for classify(e.at()) == classBlank {
			if !e.retreat() {
				return
			}
		}
		cls := classify(e.at())
		for {
			row, col := e.Row, e.Col
			if !e.retreat() {
				break
			}
			c2 := classify(e.at())
			match := c2 == cls
			if big {
				match = c2 != classBlank
			}
			if !match {
				e.Row, e.Col = row, col
				break
			}
		}
	}
}

// WordEnd implements "e"/"E": move to the end of the current or next
// word, count times.
func (e *Engine) WordEnd(count int, big bool) {
	for i := 0; i < count; i++ {
		if !e.advance() {
			return
		}
		for classify(e.at()) == classBlank {
			if !e.advance() {
				return
			}
		}
		cls := classify(e.at())
		for {
			row, col := e.Row, e.Col
			if !e.advance() {
				break
			}
			c2 := classify(e.at())
			match := c2 == cls
			if big {
				match = c2 != classBlank
			}
			if !match {
				e.Row, e.Col = row, col
				break
			}
		}
	}
}

// --- find/till, confined to the current row per vi semantics ---

// Find implements f/F/t/T: locate the count-th occurrence of ch on the
// current row in the given direction; till stops one cell short. No-op
// if there are fewer than count occurrences.
func (e *Engine) Find(ch rune, count int, forward, till bool) bool {
	row := e.buf.runeRow(e.Row)
	col := e.Col
	found := -1
	remaining := count
	if forward {
		for c := col + 1; c < len(row); c++ {
			if row[c] == ch {
				remaining--
				if remaining == 0 {
					found = c
					break
				}
			}
		}
	} else {
		for c := col - 1; c >= 0; c-- {
			if row[c] == ch {
				remaining--
				if remaining == 0 {
					found = c
					break
				}
			}
		}
	}
	if found < 0 {
		return false
	}
	if till {
		if forward {
			found--
		} else {
			found++
		}
	}
	e.Col = found
	op := findOpName(forward, till)
	e.lastFindOp, e.lastFindCh = op, ch
	return true
}

func findOpName(forward, till bool) string {
	switch {
	case forward && !till:
		return "find_fwd"
	case !forward && !till:
		return "find_back"
	case forward && till:
		return "till_fwd"
	default:
		return "till_back"
	}
}

// RepeatFind implements ";"/",": re-run the last find/till, forward (";")
// or with direction reversed (",").
func (e *Engine) RepeatFind(count int, reverse bool) bool {
	if e.lastFindOp == "" {
		return false
	}
	op := e.lastFindOp
	if reverse {
		op = reverseFindOp(op)
	}
	forward, till := opDirTill(op)
	return e.Find(e.lastFindCh, count, forward, till)
}

func reverseFindOp(op string) string {
	switch op {
	case "find_fwd":
		return "find_back"
	case "find_back":
		return "find_fwd"
	case "till_fwd":
		return "till_back"
	default:
		return "till_fwd"
	}
}

func opDirTill(op string) (forward, till bool) {
	switch op {
	case "find_fwd":
		return true, false
	case "find_back":
		return false, false
	case "till_fwd":
		return true, true
	default:
		return false, true
	}
}

// --- search ---

// Search implements "/"and"?": compile pattern as a regexp and move to a
// match in the given direction, wrapping around the buffer if necessary.
// The scan goes row by row: forward lands on the first match of the next
// row that has one, backward on the last match of the previous such row.
// Other matches on the cursor's own row are not visited; that row is
// reached again only after a full wrap. Returns false (cursor unmoved) on
// no match or bad pattern.
func (e *Engine) Search(pattern string, forward bool) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	e.lastPattern = pattern
	if forward {
		e.lastDir = "search_fwd"
	} else {
		e.lastDir = "search_back"
	}
	return e.searchFrom(re, forward)
}

// SearchNext/SearchPrev implement "n"/"N": repeat the last search, in its
// original direction ("n") or reversed ("N").
func (e *Engine) SearchNext() bool { return e.repeatSearch(false) }
func (e *Engine) SearchPrev() bool { return e.repeatSearch(true) }

func (e *Engine) repeatSearch(reverse bool) bool {
	if e.lastPattern == "" {
		return false
	}
	re, err := regexp.Compile(e.lastPattern)
	if err != nil {
		return false
	}
	forward := e.lastDir == "search_fwd"
	if reverse {
		forward = !forward
	}
	return e.searchFrom(re, forward)
}

func (e *Engine) searchFrom(re *regexp.Regexp, forward bool) bool {
	n := e.buf.Len()
	if n == 0 {
		return false
	}
	if forward {
		for i := 1; i <= n; i++ {
			row := (e.Row + i) % n
			text := e.buf.Text(row)
			if loc := re.FindStringIndex(text); loc != nil {
				e.Row, e.Col = row, utf8.RuneCountInString(text[:loc[0]])
				return true
			}
		}
	} else {
		for i := 1; i <= n; i++ {
			row := (e.Row - i + n*2) % n
			text := e.buf.Text(row)
			if locs := re.FindAllStringIndex(text, -1); len(locs) > 0 {
				e.Row, e.Col = row, utf8.RuneCountInString(text[:locs[len(locs)-1][0]])
				return true
			}
		}
	}
	return false
}

// --- selection ---

// ToggleVisual turns visual selection of kind on, anchored at the
// current cursor; calling it again with the same kind turns selection
// back off, matching vi's "v"/"V" toggle behavior.
func (e *Engine) ToggleVisual(kind SelectionKind) {
	if e.sel == kind {
		e.sel = SelectionNone
		return
	}
	e.sel = kind
	e.anchorRow, e.anchorCol = e.Row, e.Col
}

// Selecting reports whether a visual selection is active.
func (e *Engine) Selecting() bool { return e.sel != SelectionNone }

// Viewport returns the first buffer row currently on screen and how many
// rows are visible, for a renderer to know which window of the buffer to
// draw.
func (e *Engine) Viewport() (top, h int) { return e.viewTop, e.viewH }

// RuneAt exposes the underlying buffer's display rune at (row, col), for
// a renderer drawing the copy-mode overlay.
func (e *Engine) RuneAt(row, col int) rune { return e.buf.RuneAt(row, col) }

// Highlighted reports whether (row, col) falls inside the active visual
// selection, normalized so the anchor/cursor order doesn't matter.
func (e *Engine) Highlighted(row, col int) bool {
	if e.sel == SelectionNone {
		return false
	}
	startRow, startCol, endRow, endCol := e.anchorRow, e.anchorCol, e.Row, e.Col
	if startRow > endRow || (startRow == endRow && startCol > endCol) {
		startRow, endRow = endRow, startRow
		startCol, endCol = endCol, startCol
	}
	if row < startRow || row > endRow {
		return false
	}
	if e.sel == SelectionLine {
		return true
	}
	if row == startRow && col < startCol {
		return false
	}
	if row == endRow && col > endCol {
		return false
	}
	return true
}

// Yank returns the text of the current selection (normalized so the
// anchor/cursor order doesn't matter), and clears the selection. Returns
// "" if nothing was selected.
func (e *Engine) Yank() string {
	if e.sel == SelectionNone {
		return ""
	}
	startRow, startCol, endRow, endCol := e.anchorRow, e.anchorCol, e.Row, e.Col
	if startRow > endRow || (startRow == endRow && startCol > endCol) {
		startRow, endRow = endRow, startRow
		startCol, endCol = endCol, startCol
	}

	var out string
	if e.sel == SelectionLine {
		for r := startRow; r <= endRow; r++ {
			out += e.buf.Text(r)
			if r != endRow {
				out += "\n"
			}
		}
	} else {
		if startRow == endRow {
			row := e.buf.runeRow(startRow)
			out = string(sliceRunes(row, startCol, endCol+1))
		} else {
			for r := startRow; r <= endRow; r++ {
				row := e.buf.runeRow(r)
				switch r {
				case startRow:
					out += string(sliceRunes(row, startCol, len(row)))
				case endRow:
					out += string(sliceRunes(row, 0, endCol+1))
				default:
					out += string(row)
				}
				if r != endRow {
					out += "\n"
				}
			}
		}
	}
	e.sel = SelectionNone
	return out
}

func sliceRunes(r []rune, lo, hi int) []rune {
	if lo < 0 {
		lo = 0
	}
	if hi > len(r) {
		hi = len(r)
	}
	if lo >= hi {
		return nil
	}
	return r[lo:hi]
}

// --- text objects ---

// bracketPairs maps either half of a bracket pair to (open, close); quotes
// map to themselves since vi treats a quote text object symmetrically.
var bracketPairs = map[rune][2]rune{
	'(': {'(', ')'}, ')': {'(', ')'},
	'[': {'[', ']'}, ']': {'[', ']'},
	'{': {'{', '}'}, '}': {'{', '}'},
	'"':  {'"', '"'},
	'\'': {'\'', '\''},
}

// TextObject implements "i"/"a" + a single following key (spec.md §4.8):
// word/WORD, quotes, and the three bracket pairs, all scoped to the
// current row — copy-mode's buffer has no notion of a paragraph or
// balanced multi-line bracket matching, so this is the single-row
// subset of vi's text objects, the portion a terminal scrollback can
// answer unambiguously.
func (e *Engine) TextObject(around bool, key rune) {
	if key == 'w' || key == 'W' {
		e.wordTextObject(around, key == 'W')
		return
	}
	pair, ok := bracketPairs[key]
	if !ok {
		return
	}
	start, end, ok := e.findEnclosingPair(pair[0], pair[1])
	if !ok {
		return
	}
	if !around {
		start++
		end--
		if start > end {
			return
		}
	}
	e.sel = SelectionChar
	e.anchorRow, e.anchorCol = e.Row, start
	e.Col = end
}

func (e *Engine) wordTextObject(around, big bool) {
	row := e.buf.runeRow(e.Row)
	if len(row) == 0 {
		return
	}
	col := clampInt(e.Col, 0, len(row)-1)
	cls := classify(row[col])
	start, end := col, col
	for start > 0 {
		c2 := classify(row[start-1])
		if big && c2 == classBlank || !big && c2 != cls {
			break
		}
		start--
	}
	for end+1 < len(row) {
		c2 := classify(row[end+1])
		if big && c2 == classBlank || !big && c2 != cls {
			break
		}
		end++
	}
	if around {
		for end+1 < len(row) && classify(row[end+1]) == classBlank {
			end++
		}
	}
	e.sel = SelectionChar
	e.anchorRow, e.anchorCol = e.Row, start
	e.Col = end
}

// findEnclosingPair locates the innermost openR/closeR pair on the
// current row that contains the cursor column, respecting nesting when
// openR != closeR. Quote pairs (openR == closeR) instead take the
// nearest quote at-or-before the cursor and the next one after it.
func (e *Engine) findEnclosingPair(openR, closeR rune) (start, end int, ok bool) {
	row := e.buf.runeRow(e.Row)
	if len(row) == 0 {
		return 0, 0, false
	}
	col := clampInt(e.Col, 0, len(row)-1)

	if openR == closeR {
		start = -1
		for i := col; i >= 0; i-- {
			if row[i] == openR {
				start = i
				break
			}
		}
		if start < 0 {
			for i := col; i < len(row); i++ {
				if row[i] == openR {
					start = i
					break
				}
			}
		}
		if start < 0 {
			return 0, 0, false
		}
		end = -1
		for i := start + 1; i < len(row); i++ {
			if row[i] == openR {
				end = i
				break
			}
		}
		if end < 0 {
			return 0, 0, false
		}
		return start, end, true
	}

	depth := 0
	start = -1
	for i := col; i >= 0; i-- {
		if row[i] == closeR && i != col {
			depth++
			continue
		}
		if row[i] == openR {
			if depth == 0 {
				start = i
				break
			}
			depth--
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	depth = 0
	end = -1
	for i := start + 1; i < len(row); i++ {
		if row[i] == openR {
			depth++
			continue
		}
		if row[i] == closeR {
			if depth == 0 {
				end = i
				break
			}
			depth--
		}
	}
	if end < 0 {
		return 0, 0, false
	}
	return start, end, true
}
