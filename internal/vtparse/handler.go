package vtparse

// Handler receives the actions the state machine produces. A screen model
// (internal/window's screen.go) implements this to turn bytes into grid
// mutations; the parser package itself never touches a Grid, the same
// separation the teacher draws between its ansi.Parser and its Emulator
// handler callbacks in internal/vt/emulator.go.
type Handler interface {
	// Print is called once per user-perceived printable rune decoded from
	// GROUND. Invalid UTF-8 is reported as U+FFFD.
	Print(r rune)

	// Execute is called for a C0 control byte (BEL, BS, HT, LF, VT, FF,
	// CR, SO, SI, ...).
	Execute(b byte)

	// CSI is called on a complete CSI sequence. prefix is 0 or one of
	// '<','=','>','?' (the last only meaningful for DECSET/DECRST-family
	// finals). params is left-to-right, missing fields reported as -1 so
	// handlers can distinguish "0" from "absent" per ECMA-48 defaulting
	// rules. Colon-separated sub-parameters (used by SGR truecolor) are
	// reported via subParams with the same index layout as params; an
	// index with no sub-parameters has a nil entry.
	CSI(prefix byte, params []int, subParams [][]int, intermediates []byte, final byte)

	// Esc is called on a complete two-or-three-byte escape sequence that
	// is not CSI/OSC/DCS/SOS/PM/APC (e.g. ESC 7, ESC 8, ESC M).
	Esc(intermediates []byte, final byte)

	// OSC is called with the raw bytes between "ESC ]" and its terminator
	// (BEL or ST), not including the terminator.
	OSC(data []byte)
}
