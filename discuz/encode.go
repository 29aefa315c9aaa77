package discuz

import (
	"fmt"

	"github.com/beevik/etree"

	"dzr/css"
)

// Theme carries the host theme defaults a downstream renderer needs to turn
// style overrides into effective values. The core itself never applies these,
// they only travel with exports.
type Theme struct {
	BaseFontSize css.Size
	BaseColor    css.Color
}

// EncodeXML serializes a run tree into an XML document for inspection and
// golden output. The handoff between conversion and rendering is in-process;
// this exists for the command line dumps and tests only.
func EncodeXML(r *Run, theme Theme) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("runtree")
	root.CreateAttr("base-size", fmt.Sprintf("%g", float64(theme.BaseFontSize)))
	root.CreateAttr("base-color", theme.BaseColor.String())
	if r != nil {
		encodeRun(root, r)
	}

	doc.Indent(2)
	return doc
}

func encodeRun(parent *etree.Element, r *Run) {
	el := parent.CreateElement(string(r.Kind))

	switch r.Kind {
	case RunText:
		encodeStyle(el, r.Style)
		el.SetText(r.Text)
	case RunImage:
		el.CreateAttr("src", r.URL)
	case RunObject:
		el.CreateAttr("payload", fmt.Sprintf("%T", r.Payload))
	case RunAlign:
		el.CreateAttr("align", string(r.Align))
	}

	for i := range r.Children {
		encodeRun(el, &r.Children[i])
	}
}

func encodeStyle(el *etree.Element, s Style) {
	if s.Bold {
		el.CreateAttr("bold", "true")
	}
	if s.Underline {
		if s.DashedUnderline {
			el.CreateAttr("underline", "dashed")
		} else {
			el.CreateAttr("underline", "solid")
		}
	}
	if s.Strike {
		el.CreateAttr("strike", "true")
	}
	if s.Color != nil {
		el.CreateAttr("color", s.Color.String())
	}
	if s.Size != nil {
		el.CreateAttr("size", fmt.Sprintf("%g", float64(*s.Size)))
	}
	if s.Align != "" {
		el.CreateAttr("text-align", string(s.Align))
	}
	if s.LinkURL != "" {
		el.CreateAttr("href", s.LinkURL)
	}
}
