package dispatch

import (
	"reflect"
	"testing"

	"github.com/TheLudd/simplex/internal/config"
)

func feedAll(d *Dispatcher, bytes ...byte) []Action {
	var out []Action
	for _, b := range bytes {
		out = append(out, d.Feed(b)...)
	}
	return out
}

func TestNormalModeForwardsUnprefixedBytes(t *testing.T) {
	d := New()
	acts := feedAll(d, 'x')
	want := []Action{{Kind: "forward", Byte: 'x'}}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("got %+v, want %+v", acts, want)
	}
}

func TestPrefixSpawnBinding(t *testing.T) {
	d := New()
	acts := feedAll(d, config.PrefixByte, 'c')
	if len(acts) != 1 || acts[0].Kind != "spawn" {
		t.Fatalf("got %+v", acts)
	}
	if d.Mode() != ModeNormal {
		t.Fatalf("expected to fall back to NORMAL after a prefix command, got %v", d.Mode())
	}
}

func TestLiteralPrefixForwardsCtrlB(t *testing.T) {
	d := New()
	acts := feedAll(d, config.PrefixByte, 'b')
	want := []Action{{Kind: "forward", Byte: config.PrefixByte}}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("got %+v, want %+v", acts, want)
	}
}

func TestAwaitViewTagAcceptsDigit(t *testing.T) {
	d := New()
	acts := feedAll(d, config.PrefixByte, 'v', '3')
	if len(acts) != 1 || acts[0].Kind != "view_tag" || acts[0].Tag != 3 {
		t.Fatalf("got %+v", acts)
	}
}

func TestAwaitSetTagIgnoresNonDigit(t *testing.T) {
	d := New()
	acts := feedAll(d, config.PrefixByte, 't', 'x')
	if len(acts) != 0 {
		t.Fatalf("expected non-digit to cancel silently, got %+v", acts)
	}
	if d.Mode() != ModeNormal {
		t.Fatalf("expected NORMAL after cancel, got %v", d.Mode())
	}
}

func TestCopyModeLeadingZeroIsLineStart(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '0')
	if len(acts) != 1 || acts[0].Kind != "line_start" {
		t.Fatalf("got %+v", acts)
	}
}

func TestCopyModeCountedMotion(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '1', '0', 'j')
	if len(acts) != 1 || acts[0].Kind != "down" || acts[0].Count != 10 {
		t.Fatalf("got %+v", acts)
	}
}

func TestCopyModeCountCapped(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '9', '9', '9', '9', '9', '9', 'j')
	if len(acts) != 1 || acts[0].Count != config.MaxMotionCount {
		t.Fatalf("expected count capped at %d, got %+v", config.MaxMotionCount, acts)
	}
}

func TestCopyModeFindTakesPendingChar(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '2', 'f', 'x')
	if len(acts) != 1 || acts[0].Kind != "find_fwd" || acts[0].Count != 2 || acts[0].Char != 'x' {
		t.Fatalf("got %+v", acts)
	}
	if d.Mode() != ModeCopy {
		t.Fatalf("expected to return to COPY after pending char, got %v", d.Mode())
	}
}

func TestCopyModeSearchEntryCollectsUntilEnter(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '/', 'f', 'o', 'o', 0x0d)
	if len(acts) != 1 || acts[0].Kind != "search_fwd" || acts[0].Pattern != "foo" {
		t.Fatalf("got %+v", acts)
	}
	if d.Mode() != ModeCopy {
		t.Fatalf("expected COPY after search entry, got %v", d.Mode())
	}
}

func TestCopyModeSearchEntryBackspace(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '/', 'f', 'o', 'o', 0x7f, 0x0d)
	if len(acts) != 1 || acts[0].Pattern != "fo" {
		t.Fatalf("got %+v", acts)
	}
}

func TestCopyModeSearchEntryEscapeCancels(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '/', 'f', 'o', 0x1b)
	if len(acts) != 0 {
		t.Fatalf("expected escape to cancel with no action, got %+v", acts)
	}
	if d.Mode() != ModeCopy {
		t.Fatalf("expected COPY after cancel, got %v", d.Mode())
	}
}

func TestCopyModeYankExitsMode(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, 'y')
	if len(acts) != 1 || acts[0].Kind != "yank" {
		t.Fatalf("got %+v", acts)
	}
	if d.Mode() != ModeNormal {
		t.Fatalf("expected NORMAL after yank, got %v", d.Mode())
	}
}

func TestCopyModeRepeatFindUsesLastChar(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	feedAll(d, 'f', 'z')
	acts := feedAll(d, ';')
	if len(acts) != 1 || acts[0].Kind != "repeat_find" || acts[0].Char != 'z' {
		t.Fatalf("got %+v", acts)
	}
}

func TestCopyModeSingleGEntersPendingWithNoAction(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, 'g')
	if len(acts) != 0 {
		t.Fatalf("expected a single 'g' to produce no action yet, got %+v", acts)
	}
	if d.Mode() != ModeCopyPending {
		t.Fatalf("expected COPY_PENDING after a single 'g', got %v", d.Mode())
	}
}

func TestCopyModeDoubleGFiresBufferTop(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, 'g', 'g')
	if len(acts) != 1 || acts[0].Kind != "buffer_top" {
		t.Fatalf("got %+v", acts)
	}
	if d.Mode() != ModeCopy {
		t.Fatalf("expected to return to COPY after gg, got %v", d.Mode())
	}
}

func TestCopyModeGFollowedByOtherKeyIsDropped(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, 'g', 'x')
	if len(acts) != 0 {
		t.Fatalf("expected 'gx' to be dropped silently, got %+v", acts)
	}
	if d.Mode() != ModeCopy {
		t.Fatalf("expected to return to COPY after dropping an unrecognized g-combo, got %v", d.Mode())
	}
}

func TestCopyModeCountedGG(t *testing.T) {
	d := New()
	d.EnterCopyMode()
	acts := feedAll(d, '5', 'g', 'g')
	if len(acts) != 1 || acts[0].Kind != "buffer_top" || acts[0].Count != 5 {
		t.Fatalf("got %+v", acts)
	}
}
