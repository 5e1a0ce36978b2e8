package cell

// Attr is a single SGR attribute bit.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
	AttrInvisible
)

// Style is {fg, bg, attrs}. The zero value is the default style: default
// colors, no attributes.
type Style struct {
	Fg, Bg Color
	Attrs  Attr
}

// DefaultStyle is the style produced by SGR reset (ESC[0m).
var DefaultStyle = Style{Fg: Default, Bg: Default}

// Has reports whether an attribute is set.
func (s Style) Has(a Attr) bool { return s.Attrs&a != 0 }

// With returns a copy of s with a set.
func (s Style) With(a Attr) Style { s.Attrs |= a; return s }

// Without returns a copy of s with a cleared.
func (s Style) Without(a Attr) Style { s.Attrs &^= a; return s }

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return s.Attrs == o.Attrs && s.Fg.Equal(o.Fg) && s.Bg.Equal(o.Bg)
}

// IsDefault reports whether s is indistinguishable from DefaultStyle.
func (s Style) IsDefault() bool { return s.Equal(DefaultStyle) }
