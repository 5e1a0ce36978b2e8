package eventloop

import "encoding/base64"

// sendClipboard implements the OSC 52 clipboard sink spec.md §4.8 calls
// for: "y copies the selection to the clipboard sink (OSC 52 to the
// outer terminal, base64-encoded)". It writes straight to the outer
// /dev/tty handle, bypassing the differential renderer, since OSC 52 is
// not a cell and has no frame position.
func (l *Loop) sendClipboard(text string) {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	l.term.File().WriteString("\x1b]52;c;" + encoded + "\x07")
}
