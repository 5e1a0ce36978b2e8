package render

import (
	"fmt"
	"strings"

	"github.com/TheLudd/simplex/internal/cell"
)

// sgrEscape builds the minimal SGR sequence to make the outer terminal's
// current attributes match style: always starts from "0" (reset) per
// spec.md §4.7 ("when in doubt, emit SGR 0 + full spec") since the
// renderer tracks only the previous *cell's* style, not the terminal's
// running state, so a reset keeps drift impossible.
func sgrEscape(style cell.Style) string {
	parts := []string{"0"}

	if style.Has(cell.AttrBold) {
		parts = append(parts, "1")
	}
	if style.Has(cell.AttrDim) {
		parts = append(parts, "2")
	}
	if style.Has(cell.AttrItalic) {
		parts = append(parts, "3")
	}
	if style.Has(cell.AttrUnderline) {
		parts = append(parts, "4")
	}
	if style.Has(cell.AttrBlink) {
		parts = append(parts, "5")
	}
	if style.Has(cell.AttrReverse) {
		parts = append(parts, "7")
	}
	if style.Has(cell.AttrInvisible) {
		parts = append(parts, "8")
	}
	if style.Has(cell.AttrStrikethrough) {
		parts = append(parts, "9")
	}

	parts = append(parts, colorParts(style.Fg, 38)...)
	parts = append(parts, colorParts(style.Bg, 48)...)

	return "\x1b[" + strings.Join(parts, ";") + "m"
}

// colorParts returns the SGR sub-sequence for one color slot (38 for fg,
// 48 for bg). ColorDefault contributes nothing — the leading reset
// already restores it.
func colorParts(c cell.Color, base int) []string {
	switch c.Kind {
	case cell.ColorTrue:
		return []string{fmt.Sprintf("%d", base+2), "2", fmt.Sprintf("%d", c.R), fmt.Sprintf("%d", c.G), fmt.Sprintf("%d", c.B)}
	case cell.ColorIndexed:
		return []string{fmt.Sprintf("%d", base+2), "5", fmt.Sprintf("%d", c.Index)}
	default:
		return nil
	}
}
