// Package dispatch implements the modal key grammar of spec.md §6: the
// prefix-key protocol (Ctrl+B, then one command key, with three
// tag-digit-awaiting sub-states) and the copy-mode vi-style grammar
// (leading counts, pending single-key arguments for f/F/t/T/i/a, and a
// line-buffered search-entry sub-mode). It turns a stream of raw input
// bytes from the outer terminal into a stream of Actions; it owns no
// window, grid, or screen state, the same separation the teacher keeps
// between its keyboard package (internal/input/keyboard.go) and the
// model it drives.
package dispatch

import (
	"strconv"

	"github.com/TheLudd/simplex/internal/config"
)

// Mode is the dispatcher's current modal state.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrefix
	ModePrefixAwaitViewTag
	ModePrefixAwaitSetTag
	ModePrefixAwaitToggleTag
	ModeCopy
	ModeCopyPending
	ModeCopySearchEntry
)

// Action is one dispatched command. Kind is the action name from
// config.PrefixBindings/CopyModeBindings (or "forward" for a byte that
// should be written straight through to the focused child's PTY). Count,
// Char, and Pattern are populated only for the actions that use them.
type Action struct {
	Kind    string
	Byte    byte
	Tag     int
	Count   int
	Char    rune
	Pattern string
}

// Dispatcher holds the modal state machine. It is not safe for concurrent
// use; the event loop is its sole caller, serialized the same way every
// other piece of mutable state in this program is (spec.md §9).
type Dispatcher struct {
	mode Mode

	copyCount  string
	pendingOp  string
	searchDir  string
	searchBuf  []byte
	lastFindOp string
	lastFindCh rune
}

// New returns a dispatcher starting in NORMAL mode.
func New() *Dispatcher { return &Dispatcher{mode: ModeNormal} }

// Mode reports the dispatcher's current modal state, mainly for rendering
// a status-line indicator.
func (d *Dispatcher) Mode() Mode { return d.mode }

// EnterCopyMode forces COPY mode; the event loop calls this once it has
// actually entered copy mode (e.g. also from a binding outside PREFIX, if
// one is ever added), keeping the dispatcher's mode in sync.
func (d *Dispatcher) EnterCopyMode() {
	d.mode = ModeCopy
	d.resetCopyState()
}

// ExitCopyMode forces NORMAL mode.
func (d *Dispatcher) ExitCopyMode() {
	d.mode = ModeNormal
	d.resetCopyState()
}

func (d *Dispatcher) resetCopyState() {
	d.copyCount = ""
	d.pendingOp = ""
	d.searchDir = ""
	d.searchBuf = d.searchBuf[:0]
}

// Feed processes one input byte and returns zero or more actions it
// produced. Most bytes produce exactly zero or one action; a count digit
// produces none until a following key completes the command.
func (d *Dispatcher) Feed(b byte) []Action {
	switch d.mode {
	case ModeNormal:
		return d.feedNormal(b)
	case ModePrefix:
		return d.feedPrefix(b)
	case ModePrefixAwaitViewTag:
		return d.feedAwaitTag(b, "view_tag")
	case ModePrefixAwaitSetTag:
		return d.feedAwaitTag(b, "set_tag")
	case ModePrefixAwaitToggleTag:
		return d.feedAwaitTag(b, "toggle_tag")
	case ModeCopy:
		return d.feedCopy(b)
	case ModeCopyPending:
		return d.feedCopyPending(b)
	case ModeCopySearchEntry:
		return d.feedSearchEntry(b)
	default:
		d.mode = ModeNormal
		return nil
	}
}

func (d *Dispatcher) feedNormal(b byte) []Action {
	if b == config.PrefixByte {
		d.mode = ModePrefix
		return nil
	}
	return []Action{{Kind: "forward", Byte: b}}
}

func (d *Dispatcher) feedPrefix(b byte) []Action {
	d.mode = ModeNormal
	binding, ok := lookupBinding(config.PrefixBindings, "PREFIX", keyToken(b))
	if !ok {
		return nil
	}
	switch binding.Action {
	case "literal_prefix":
		return []Action{{Kind: "forward", Byte: config.PrefixByte}}
	case "enter_copy":
		d.mode = ModeCopy
		d.resetCopyState()
		return []Action{{Kind: "enter_copy"}}
	case "await_view_tag":
		d.mode = ModePrefixAwaitViewTag
		return nil
	case "await_set_tag":
		d.mode = ModePrefixAwaitSetTag
		return nil
	case "await_toggle_tag":
		d.mode = ModePrefixAwaitToggleTag
		return nil
	default:
		return []Action{{Kind: binding.Action}}
	}
}

func (d *Dispatcher) feedAwaitTag(b byte, kind string) []Action {
	d.mode = ModeNormal
	if b < '1' || b > '9' {
		return nil
	}
	tag := int(b - '0')
	if tag < config.MinTag || tag > config.MaxTag {
		return nil
	}
	return []Action{{Kind: kind, Tag: tag}}
}

func (d *Dispatcher) feedCopy(b byte) []Action {
	if isCountDigit(b, d.copyCount) {
		d.copyCount += string(rune(b))
		return nil
	}

	count := d.takeCount()
	token := keyToken(b)
	binding, ok := lookupBinding(config.CopyModeBindings, "COPY", token)
	if !ok {
		return nil
	}

	switch binding.Action {
	case "find_fwd", "find_back", "till_fwd", "till_back",
		"text_object_inner", "text_object_around", "buffer_top":
		d.pendingOp = binding.Action
		d.mode = ModeCopyPending
		d.copyCount = itoaOrEmpty(count)
		return nil
	case "search_fwd":
		d.searchDir = "search_fwd"
		d.searchBuf = d.searchBuf[:0]
		d.mode = ModeCopySearchEntry
		return nil
	case "search_back":
		d.searchDir = "search_back"
		d.searchBuf = d.searchBuf[:0]
		d.mode = ModeCopySearchEntry
		return nil
	case "repeat_find", "repeat_find_rev":
		return []Action{{Kind: binding.Action, Count: count, Char: d.lastFindCh}}
	case "yank", "exit":
		d.mode = ModeNormal
		d.resetCopyState()
		return []Action{{Kind: binding.Action}}
	default:
		return []Action{{Kind: binding.Action, Count: count}}
	}
}

func (d *Dispatcher) feedCopyPending(b byte) []Action {
	count := d.takeCount()
	op := d.pendingOp
	d.pendingOp = ""
	d.mode = ModeCopy
	ch := rune(b)

	if op == "buffer_top" {
		// vi's "gg": only the second 'g' actually moves to the top of the
		// buffer. Any other key following the first 'g' is an unrecognized
		// combination and is dropped, same as any other unbound key.
		if ch != 'g' {
			return nil
		}
		return []Action{{Kind: "buffer_top", Count: count}}
	}

	if op == "find_fwd" || op == "find_back" || op == "till_fwd" || op == "till_back" {
		d.lastFindOp = op
		d.lastFindCh = ch
	}
	return []Action{{Kind: op, Count: count, Char: ch}}
}

func (d *Dispatcher) feedSearchEntry(b byte) []Action {
	switch b {
	case 0x0d: // Enter
		pattern := string(d.searchBuf)
		dir := d.searchDir
		d.mode = ModeCopy
		d.searchDir = ""
		d.searchBuf = d.searchBuf[:0]
		return []Action{{Kind: dir, Pattern: pattern}}
	case 0x1b: // Escape cancels search entry, staying in copy mode.
		d.mode = ModeCopy
		d.searchDir = ""
		d.searchBuf = d.searchBuf[:0]
		return nil
	case 0x7f, 0x08: // Backspace
		if len(d.searchBuf) > 0 {
			d.searchBuf = d.searchBuf[:len(d.searchBuf)-1]
		}
		return nil
	default:
		d.searchBuf = append(d.searchBuf, b)
		return nil
	}
}

func (d *Dispatcher) takeCount() int {
	if d.copyCount == "" {
		d.copyCount = ""
		return 1
	}
	n, err := strconv.Atoi(d.copyCount)
	d.copyCount = ""
	if err != nil || n < 1 {
		return 1
	}
	if n > config.MaxMotionCount {
		return config.MaxMotionCount
	}
	return n
}

func itoaOrEmpty(n int) string {
	if n <= 1 {
		return ""
	}
	return strconv.Itoa(n)
}

// isCountDigit reports whether b continues a leading numeric count. A
// leading '0' is never a count digit (it is the line_start binding); '0'
// following at least one other digit is.
func isCountDigit(b byte, soFar string) bool {
	if b < '0' || b > '9' {
		return false
	}
	if b == '0' && soFar == "" {
		return false
	}
	return true
}

func keyToken(b byte) string {
	switch b {
	case 0x0d:
		return "enter"
	case 0x1b:
		return "esc"
	default:
		return string(rune(b))
	}
}

func lookupBinding(table []config.Binding, mode, key string) (config.Binding, bool) {
	for _, b := range table {
		if b.Mode == mode && b.Key == key {
			return b, true
		}
	}
	return config.Binding{}, false
}
