package discuz

import (
	"fmt"
	"strings"

	"dzr/utils/debug"
)

// String returns a readable tree of the whole run structure. It exists solely
// for manual inspection during debugging.
func (r *Run) String() string {
	if r == nil {
		return "<nil Run>"
	}
	tw := debug.NewTreeWriter()
	r.dump(tw, 0)
	return tw.String()
}

func (r *Run) dump(tw *debug.TreeWriter, depth int) {
	switch r.Kind {
	case RunText:
		tw.Labeled(depth, "Text", r.Style.describe())
		tw.TextBlock(depth+1, "Value", r.Text)
	case RunBreak:
		tw.Labeled(depth, "Break", "")
	case RunSpace:
		tw.Labeled(depth, "Space", "")
	case RunBullet:
		tw.Labeled(depth, "Bullet", "")
	case RunImage:
		tw.Labeled(depth, "Image", r.URL)
	case RunObject:
		tw.Labeled(depth, "Object", fmt.Sprintf("%T", r.Payload))
	case RunAlign:
		tw.Labeled(depth, "Align", string(r.Align))
	default:
		tw.Labeled(depth, string(r.Kind), fmt.Sprintf("%d children", len(r.Children)))
	}
	for i := range r.Children {
		r.Children[i].dump(tw, depth+1)
	}
}

func (s Style) describe() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Underline {
		if s.DashedUnderline {
			parts = append(parts, "underline-dashed")
		} else {
			parts = append(parts, "underline")
		}
	}
	if s.Strike {
		parts = append(parts, "strike")
	}
	if s.Color != nil {
		parts = append(parts, "color="+s.Color.String())
	}
	if s.Size != nil {
		parts = append(parts, fmt.Sprintf("size=%g", float64(*s.Size)))
	}
	if s.Align != "" {
		parts = append(parts, "align="+string(s.Align))
	}
	if s.LinkURL != "" {
		parts = append(parts, "href="+s.LinkURL)
	}
	return strings.Join(parts, " ")
}
