package window

import "github.com/TheLudd/simplex/internal/cell"

// ApplySGR folds a parsed SGR parameter list onto style, left to right, per
// spec.md §4.1: recognizes both ';' and ':' separators, `38;2;r;g;b` and
// `38;2:r:g:b`-family truecolor, `38;5;n` 256-color, attribute set/reset
// pairs, and the 30-37/90-97/40-47/100-107/39/49 basic color codes. An
// unknown parameter inside a 38/48 compound sequence terminates that
// compound safely (it does not corrupt style or desync the param scan).
func ApplySGR(style cell.Style, params []int, subParams [][]int) cell.Style {
	if len(params) == 0 {
		return cell.DefaultStyle
	}
	for i := 0; i < len(params); {
		p := orZero(params[i])
		if p == 38 || p == 48 {
			var subField, subNext []int
			if i < len(subParams) {
				subField = subParams[i]
			}
			if i+1 < len(subParams) {
				subNext = subParams[i+1]
			}
			col, consumed := parseExtendedColor(params[i:], subField, subNext)
			if col != nil {
				if p == 38 {
					style.Fg = *col
				} else {
					style.Bg = *col
				}
			}
			i += consumed
			continue
		}
		style = applyBasicSGR(style, p)
		i++
	}
	return style
}

func applyBasicSGR(style cell.Style, p int) cell.Style {
	switch {
	case p == 0:
		return cell.DefaultStyle
	case p == 1:
		return style.With(cell.AttrBold)
	case p == 2:
		return style.With(cell.AttrDim)
	case p == 3:
		return style.With(cell.AttrItalic)
	case p == 4:
		return style.With(cell.AttrUnderline)
	case p == 5 || p == 6:
		return style.With(cell.AttrBlink)
	case p == 7:
		return style.With(cell.AttrReverse)
	case p == 8:
		return style.With(cell.AttrInvisible)
	case p == 9:
		return style.With(cell.AttrStrikethrough)
	case p == 21 || p == 22:
		return style.Without(cell.AttrBold).Without(cell.AttrDim)
	case p == 23:
		return style.Without(cell.AttrItalic)
	case p == 24:
		return style.Without(cell.AttrUnderline)
	case p == 25:
		return style.Without(cell.AttrBlink)
	case p == 27:
		return style.Without(cell.AttrReverse)
	case p == 28:
		return style.Without(cell.AttrInvisible)
	case p == 29:
		return style.Without(cell.AttrStrikethrough)
	case p >= 30 && p <= 37:
		style.Fg = cell.Indexed(uint8(p - 30))
	case p == 39:
		style.Fg = cell.Default
	case p >= 40 && p <= 47:
		style.Bg = cell.Indexed(uint8(p - 40))
	case p == 49:
		style.Bg = cell.Default
	case p >= 90 && p <= 97:
		style.Fg = cell.Indexed(uint8(p-90) + 8)
	case p >= 100 && p <= 107:
		style.Bg = cell.Indexed(uint8(p-100) + 8)
	}
	return style
}

// parseExtendedColor interprets a 38/48 compound sequence. rest is the
// remaining top-level params starting at the 38/48 itself. subField is the
// colon-delimited chain attached to that same field (the pure-colon form,
// `38:2:r:g:b`); subNext is the chain attached to the field right after it
// (the mixed form, `38;2:r:g:b` — the parser's comma-joins-on-colon
// behavior attaches "2:r:g:b" to the "2" field, not to "38"). It returns
// the resolved color (nil if the sequence was malformed) and how many
// top-level params to advance by.
func parseExtendedColor(rest []int, subField, subNext []int) (*cell.Color, int) {
	if len(subField) >= 2 {
		switch subField[1] {
		case 2:
			if len(subField) >= 5 {
				c := cell.TrueColor(u8(subField[2]), u8(subField[3]), u8(subField[4]))
				return &c, 1
			}
		case 5:
			if len(subField) >= 3 {
				c := cell.Indexed(u8(subField[2]))
				return &c, 1
			}
		}
		return nil, 1
	}

	if len(subNext) >= 1 {
		switch subNext[0] {
		case 2:
			if len(subNext) >= 4 {
				c := cell.TrueColor(u8(subNext[1]), u8(subNext[2]), u8(subNext[3]))
				return &c, 2
			}
		case 5:
			if len(subNext) >= 2 {
				c := cell.Indexed(u8(subNext[1]))
				return &c, 2
			}
		}
		return nil, 2
	}

	if len(rest) < 2 {
		return nil, len(rest)
	}
	switch rest[1] {
	case 2:
		if len(rest) < 5 {
			return nil, len(rest)
		}
		c := cell.TrueColor(u8(rest[2]), u8(rest[3]), u8(rest[4]))
		return &c, 5
	case 5:
		if len(rest) < 3 {
			return nil, len(rest)
		}
		c := cell.Indexed(u8(rest[2]))
		return &c, 3
	default:
		return nil, 2
	}
}

func orZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func u8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
