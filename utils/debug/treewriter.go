package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines for readable dumps of tree shaped
// structures. It exists solely for manual inspection during debugging.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock quotes value so whitespace and control characters survive dumping.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Labeled writes "label[detail]" lines, the shape used for run kinds and
// element tags throughout dumps.
func (tw *TreeWriter) Labeled(depth int, label, detail string) {
	if detail == "" {
		tw.Line(depth, "%s", label)
		return
	}
	tw.Line(depth, "%s[%s]", label, detail)
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
