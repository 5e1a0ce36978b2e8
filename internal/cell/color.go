// Package cell implements the styled-cell primitive of spec.md §3: Color,
// Style and Cell. Nothing here knows about a Grid or a Window; it is the
// leaf of the dependency graph, the way internal/vt's color handling sits
// under internal/terminal in the teacher.
package cell

// ColorKind discriminates the three color representations spec.md allows.
type ColorKind uint8

const (
	// ColorDefault means "the terminal's default foreground/background",
	// never an explicit RGB value.
	ColorDefault ColorKind = iota
	// ColorIndexed is one of the 256 palette slots.
	ColorIndexed
	// ColorTrue is a 24-bit direct RGB value.
	ColorTrue
)

// Color is a foreground or background color. Only one of (Index) or
// (R,G,B) is meaningful, selected by Kind.
type Color struct {
	Kind  ColorKind
	Index uint8
	R, G, B uint8
}

// Default is the zero value: terminal-default color.
var Default = Color{Kind: ColorDefault}

// Indexed builds a 256-color palette reference.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// TrueColor builds a 24-bit direct color.
func TrueColor(r, g, b uint8) Color { return Color{Kind: ColorTrue, R: r, G: g, B: b} }

// Equal reports whether two colors denote the same value.
func (c Color) Equal(o Color) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ColorIndexed:
		return c.Index == o.Index
	case ColorTrue:
		return c.R == o.R && c.G == o.G && c.B == o.B
	default:
		return true
	}
}

