package window

import (
	"testing"

	"github.com/TheLudd/simplex/internal/cell"
)

func TestApplySGRResetReturnsDefaultStyle(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{0}, [][]int{nil})
	if !got.Equal(cell.DefaultStyle) {
		t.Fatalf("got %+v, want default style", got)
	}
}

func TestApplySGREmptyParamsIsReset(t *testing.T) {
	got := ApplySGR(cell.Style{Fg: cell.TrueColor(1, 2, 3)}, nil, nil)
	if !got.Equal(cell.DefaultStyle) {
		t.Fatalf("got %+v, want default style", got)
	}
}

func TestApplySGRBasicAttributes(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{1, 4, 7}, [][]int{nil, nil, nil})
	if !got.Has(cell.AttrBold) || !got.Has(cell.AttrUnderline) || !got.Has(cell.AttrReverse) {
		t.Fatalf("got %+v, want bold+underline+reverse", got)
	}
}

func TestApplySGRBasicIndexedColors(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{31, 42}, [][]int{nil, nil})
	want := cell.Indexed(1)
	wantBg := cell.Indexed(2)
	if !got.Fg.Equal(want) || !got.Bg.Equal(wantBg) {
		t.Fatalf("got fg=%+v bg=%+v, want fg=%+v bg=%+v", got.Fg, got.Bg, want, wantBg)
	}
}

func TestApplySGRBrightIndexedColors(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{91, 102}, [][]int{nil, nil})
	if !got.Fg.Equal(cell.Indexed(9)) || !got.Bg.Equal(cell.Indexed(10)) {
		t.Fatalf("got fg=%+v bg=%+v", got.Fg, got.Bg)
	}
}

func TestApplySGRDefaultColorCodes(t *testing.T) {
	got := ApplySGR(cell.Style{Fg: cell.Indexed(1), Bg: cell.Indexed(2)}, []int{39, 49}, [][]int{nil, nil})
	if !got.Fg.Equal(cell.Default) || !got.Bg.Equal(cell.Default) {
		t.Fatalf("got fg=%+v bg=%+v, want both default", got.Fg, got.Bg)
	}
}

// Plain semicolon truecolor: 38;2;r;g;b
func TestApplySGRTruecolorPlainSemicolon(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 2, 10, 20, 30}, [][]int{nil, nil, nil, nil, nil})
	if !got.Fg.Equal(cell.TrueColor(10, 20, 30)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}

// Pure-colon truecolor: 38:2:r:g:b — the parser attaches the entire
// chain, including the leading 38, to subParams[0].
func TestApplySGRTruecolorPureColon(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38}, [][]int{{38, 2, 10, 20, 30}})
	if !got.Fg.Equal(cell.TrueColor(10, 20, 30)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}

// Mixed semicolon+colon truecolor: 38;2:r:g:b — the parser commits "38"
// as its own field (subParams[0]==nil) and attaches "2:r:g:b" to the
// field that follows it (subParams[1]).
func TestApplySGRTruecolorMixedForm(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 2}, [][]int{nil, {2, 10, 20, 30}})
	if !got.Fg.Equal(cell.TrueColor(10, 20, 30)) {
		t.Fatalf("got fg=%+v, want the mixed-form color to resolve instead of silently dropping", got.Fg)
	}
}

func TestApplySGRTruecolorBackgroundMixedForm(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{48, 2}, [][]int{nil, {2, 1, 2, 3}})
	if !got.Bg.Equal(cell.TrueColor(1, 2, 3)) {
		t.Fatalf("got bg=%+v", got.Bg)
	}
}

// 256-color, all three wire forms: plain semicolon, pure colon, mixed.
func TestApplySGR256ColorPlainSemicolon(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 5, 200}, [][]int{nil, nil, nil})
	if !got.Fg.Equal(cell.Indexed(200)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}

func TestApplySGR256ColorPureColon(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38}, [][]int{{38, 5, 200}})
	if !got.Fg.Equal(cell.Indexed(200)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}

func TestApplySGR256ColorMixedForm(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 5}, [][]int{nil, {5, 200}})
	if !got.Fg.Equal(cell.Indexed(200)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}

// An unknown extended-color mode terminates the compound safely, leaving
// the color unset and resuming the param scan at the next top-level field.
func TestApplySGRUnknownExtendedModeTerminatesSafely(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 9, 1}, [][]int{nil, nil, nil})
	if !got.Fg.Equal(cell.Default) {
		t.Fatalf("got fg=%+v, want unresolved/default", got.Fg)
	}
}

// A truncated truecolor compound (missing the blue component) resolves to
// no color rather than reading out of bounds.
func TestApplySGRTruncatedTruecolorResolvesNoColor(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{38, 2, 10, 20}, [][]int{nil, nil, nil, nil})
	if !got.Fg.Equal(cell.Default) {
		t.Fatalf("got fg=%+v, want unresolved/default", got.Fg)
	}
}

func TestApplySGRColorAfterAttributesInSameSequence(t *testing.T) {
	got := ApplySGR(cell.DefaultStyle, []int{1, 38, 2, 5, 6, 7}, [][]int{nil, nil, nil, nil, nil, nil})
	if !got.Has(cell.AttrBold) {
		t.Fatalf("got %+v, want bold", got)
	}
	if !got.Fg.Equal(cell.TrueColor(5, 6, 7)) {
		t.Fatalf("got fg=%+v", got.Fg)
	}
}
