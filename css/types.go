package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a resolved foreground color in ARGB order, the layout legacy forum
// markup assumes for hex values.
type Color uint32

// FromRGBA converts a fully opaque stdlib color into ARGB layout.
func FromRGBA(c color.RGBA) Color {
	return Color(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// RGBA returns the stdlib representation, alpha included.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		A: uint8(c >> 24),
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

func (c Color) String() string {
	return "#" + strconv.FormatUint(uint64(c), 16)
}

// Named looks a color keyword up in the named-color table. Keywords are the
// closed CSS set, matched case-insensitively.
func Named(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return FromRGBA(c), true
}

// ParseColor resolves a raw color token. Hex-prefixed values are parsed as
// hexadecimal and left-padded with "f" up to 8 digits, so short legacy values
// pick up an opaque alpha channel ("#abc" becomes 0xfffffabc - historic
// behavior the stored markup depends on). Anything else, including hex values
// that fail to parse, goes through the named-color table. Returns false when
// nothing applies so callers can skip the override entirely.
func ParseColor(raw string) (Color, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if rest, ok := strings.CutPrefix(s, "#"); ok && rest != "" {
		if v, err := strconv.ParseUint(pad(rest), 16, 32); err == nil {
			return Color(v), true
		}
	}
	return Named(s)
}

func pad(hex string) string {
	if len(hex) >= 8 {
		return hex
	}
	return strings.Repeat("f", 8-len(hex)) + hex
}

// Size is a resolved font size in logical points.
type Size float64

// fontSizes maps legacy size tokens to concrete sizes. The numeric tokens are
// the historic HTML size="1..7" ladder anchored at 16.
var fontSizes = map[string]Size{
	"1": 10,
	"2": 13,
	"3": 16,
	"4": 18,
	"5": 24,
	"6": 32,
	"7": 48,
}

// ParseSize resolves a legacy size token. Unrecognized tokens resolve to no
// override, never to a default.
func ParseSize(raw string) (Size, bool) {
	s, ok := fontSizes[strings.TrimSpace(raw)]
	return s, ok
}
