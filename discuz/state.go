package discuz

import (
	"slices"

	"dzr/css"
)

// MunchState is the mutable formatting context threaded through the recursive
// walk. One instance lives for exactly one top-level conversion and is never
// shared between conversions.
//
// Stack discipline is the most safety-critical contract here: every handler
// that pushes a color or size before recursing must pop exactly once on every
// exit path, even when the subtree produced no visible content. An unbalanced
// handler corrupts all sibling and ancestor state for the rest of the walk.
type MunchState struct {
	bold        bool
	underline   bool
	lineThrough bool
	align       Align
	// inDiv is set while the innermost open block ancestor is a block-level
	// container; text emitted there forces a trailing line break.
	inDiv bool
	// trimAll switches text trimming from leading-only to both ends, used
	// inside table rows and cells.
	trimAll bool
	// inRepeatWrapLine suppresses duplicate blank-line emission.
	inRepeatWrapLine bool
	colorStack       []css.Color
	fontSizeStack    []css.Size
	// tapURL is the active hyperlink target while inside an anchor subtree.
	tapURL string

	saved []snapshot
}

// snapshot is a value-semantics copy of the whole state minus the save stack.
type snapshot struct {
	bold             bool
	underline        bool
	lineThrough      bool
	align            Align
	inDiv            bool
	trimAll          bool
	inRepeatWrapLine bool
	colorStack       []css.Color
	fontSizeStack    []css.Size
	tapURL           string
}

func newMunchState() *MunchState {
	return &MunchState{}
}

func (st *MunchState) PushColor(c css.Color) {
	st.colorStack = append(st.colorStack, c)
}

func (st *MunchState) PopColor() {
	if len(st.colorStack) == 0 {
		return
	}
	st.colorStack = st.colorStack[:len(st.colorStack)-1]
}

func (st *MunchState) PushFontSize(s css.Size) {
	st.fontSizeStack = append(st.fontSizeStack, s)
}

func (st *MunchState) PopFontSize() {
	if len(st.fontSizeStack) == 0 {
		return
	}
	st.fontSizeStack = st.fontSizeStack[:len(st.fontSizeStack)-1]
}

// Color returns the effective color override: last pushed wins. False means
// the host theme default applies.
func (st *MunchState) Color() (css.Color, bool) {
	if len(st.colorStack) == 0 {
		return 0, false
	}
	return st.colorStack[len(st.colorStack)-1], true
}

// FontSize returns the effective size override: last pushed wins.
func (st *MunchState) FontSize() (css.Size, bool) {
	if len(st.fontSizeStack) == 0 {
		return 0, false
	}
	return st.fontSizeStack[len(st.fontSizeStack)-1], true
}

// Save captures the full state. Checkpoints nest: each Restore reverts to the
// most recent unconsumed Save, so quoted subtrees inside quoted subtrees stay
// isolated from each other as well as from their surroundings.
//
// NOTE: the legacy renderer's restore was inverted and became a no-op
// whenever a save point existed. We implement the documented intent instead -
// quoted content must not leak formatting into the siblings that follow it.
func (st *MunchState) Save() {
	st.saved = append(st.saved, snapshot{
		bold:             st.bold,
		underline:        st.underline,
		lineThrough:      st.lineThrough,
		align:            st.align,
		inDiv:            st.inDiv,
		trimAll:          st.trimAll,
		inRepeatWrapLine: st.inRepeatWrapLine,
		colorStack:       slices.Clone(st.colorStack),
		fontSizeStack:    slices.Clone(st.fontSizeStack),
		tapURL:           st.tapURL,
	})
}

// Restore reverts to the most recent Save, discarding every mutation made on
// the live state since then. Without a pending save point it does nothing.
func (st *MunchState) Restore() {
	if len(st.saved) == 0 {
		return
	}
	s := st.saved[len(st.saved)-1]
	st.saved = st.saved[:len(st.saved)-1]

	st.bold = s.bold
	st.underline = s.underline
	st.lineThrough = s.lineThrough
	st.align = s.align
	st.inDiv = s.inDiv
	st.trimAll = s.trimAll
	st.inRepeatWrapLine = s.inRepeatWrapLine
	st.colorStack = s.colorStack
	st.fontSizeStack = s.fontSizeStack
	st.tapURL = s.tapURL
}

// style resolves the current effective presentation for a text run. An active
// hyperlink forces the dashed underline decoration regardless of the
// underline toggle.
func (st *MunchState) style() Style {
	s := Style{
		Bold:      st.bold,
		Underline: st.underline,
		Strike:    st.lineThrough,
		Align:     st.align,
		LinkURL:   st.tapURL,
	}
	if c, ok := st.Color(); ok {
		s.Color = &c
	}
	if sz, ok := st.FontSize(); ok {
		s.Size = &sz
	}
	if st.tapURL != "" {
		s.Underline = true
		s.DashedUnderline = true
	}
	return s
}
