package css

// Style resolution for a single element. Callers hand over the legacy
// attribute value and the inline style value for the same concern; the inline
// value is preferred, the attribute is the fallback. A false result means "no
// override" - the effective value stays whatever the surrounding state says.

// ResolveColor resolves a color override from an attribute value and an
// inline style value.
func ResolveColor(attr, inline string) (Color, bool) {
	if inline != "" {
		if c, ok := ParseColor(inline); ok {
			return c, true
		}
	}
	if attr != "" {
		return ParseColor(attr)
	}
	return 0, false
}

// ResolveFontSize resolves a font size override from an attribute value and
// an inline style value.
func ResolveFontSize(attr, inline string) (Size, bool) {
	if inline != "" {
		if s, ok := ParseSize(inline); ok {
			return s, true
		}
	}
	if attr != "" {
		return ParseSize(attr)
	}
	return 0, false
}
