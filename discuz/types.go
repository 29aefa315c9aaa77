// Package discuz converts fragments of legacy Discuz forum HTML into a tree
// of styled, inline-renderable runs. The input DOM comes from an external
// parser (golang.org/x/net/html) and is never mutated; the output tree is
// immutable once returned and is handed to the host for actual rendering.
package discuz

import (
	"strings"

	"dzr/css"
)

// RunKind discriminates the run tree union.
type RunKind string

const (
	// RunText is a styled text run.
	RunText RunKind = "text"
	// RunBreak is a forced line break.
	RunBreak RunKind = "break"
	// RunSpace is a single separator space, used between flattened table cells.
	RunSpace RunKind = "space"
	// RunBullet is the list item marker icon.
	RunBullet RunKind = "bullet"
	// RunImage is a network image reference the host resolves and renders.
	RunImage RunKind = "image"
	// RunObject is an opaque host-built embedded unit.
	RunObject RunKind = "object"
	// RunComposite is an ordered sequence of child runs.
	RunComposite RunKind = "composite"
	// RunQuote is a visually distinct bordered/padded container.
	RunQuote RunKind = "quote"
	// RunCard is a rounded-corner card container (code content).
	RunCard RunKind = "card"
	// RunAlign constrains width and applies alignment to the whole sub-run.
	RunAlign RunKind = "align"
)

// Align is a text alignment directive. Empty means "no directive".
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign maps a legacy align attribute value to a directive; anything
// unrecognized yields no directive.
func ParseAlign(raw string) Align {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return ""
	}
}

// Style is the resolved presentation of a text run. Color and Size are
// overrides on top of host theme defaults - nil means "theme decides".
type Style struct {
	Bold      bool
	Underline bool
	// DashedUnderline marks the underline as the visually distinct hyperlink
	// decoration, as opposed to an explicit underline tag.
	DashedUnderline bool
	Strike          bool
	Color           *css.Color
	Size            *css.Size
	Align           Align
	// LinkURL is the tap/activation target when the run is a hyperlink.
	LinkURL string
}

// Run is one unit of styled output. Exactly the fields relevant to Kind are
// set; a parent owns Children exclusively.
type Run struct {
	Kind     RunKind
	Text     string // RunText
	Style    Style  // RunText
	URL      string // RunImage
	Align    Align  // RunAlign
	Payload  any    // RunObject, host-owned
	Children []Run  // RunComposite, RunQuote, RunCard, RunAlign
}

// PlainText flattens the visible text of the run tree. Embedded objects and
// bullets contribute nothing; breaks and spaces contribute their separators.
func (r *Run) PlainText() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	r.appendPlainText(&sb)
	return sb.String()
}

func (r *Run) appendPlainText(sb *strings.Builder) {
	switch r.Kind {
	case RunText:
		sb.WriteString(r.Text)
	case RunBreak:
		sb.WriteByte('\n')
	case RunSpace:
		sb.WriteByte(' ')
	case RunComposite, RunQuote, RunCard, RunAlign:
		for i := range r.Children {
			r.Children[i].appendPlainText(sb)
		}
	}
}

// Walk visits the run and all descendants depth-first. It exists for hosts
// that need to index or measure the tree before rendering.
func (r *Run) Walk(visit func(*Run) bool) {
	if r == nil || !visit(r) {
		return
	}
	for i := range r.Children {
		r.Children[i].Walk(visit)
	}
}

// emptyRun is what a subtree with no visible content collapses to.
func emptyRun() *Run {
	return &Run{Kind: RunText}
}

// combine merges munched child results: zero yields an empty text run, one is
// returned unwrapped, more are wrapped in a composite preserving order.
func combine(runs []Run) *Run {
	switch len(runs) {
	case 0:
		return emptyRun()
	case 1:
		return &runs[0]
	default:
		return &Run{Kind: RunComposite, Children: runs}
	}
}

// withTrailingBreak appends a forced line break after the run.
func withTrailingBreak(r *Run) *Run {
	return &Run{Kind: RunComposite, Children: []Run{*r, {Kind: RunBreak}}}
}
