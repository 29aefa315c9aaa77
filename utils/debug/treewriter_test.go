package debug

import (
	"testing"
)

func TestTreeWriterLine(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "depth 1", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2", depth: 2, format: "deep", want: "    deep\n"},
		{name: "with formatting", depth: 1, format: "value: %d", args: []any{42}, want: "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Fatalf("Line() produced %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriterTextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "Text", "a\nb")
	if got, want := tw.String(), "  Text: \"a\\nb\"\n"; got != want {
		t.Fatalf("TextBlock() produced %q, want %q", got, want)
	}

	tw = NewTreeWriter()
	tw.TextBlock(0, "Text", "")
	if got, want := tw.String(), "Text: \n"; got != want {
		t.Fatalf("TextBlock() with empty value produced %q, want %q", got, want)
	}
}

func TestTreeWriterLabeled(t *testing.T) {
	tw := NewTreeWriter()
	tw.Labeled(0, "Run", "text")
	tw.Labeled(1, "Break", "")
	if got, want := tw.String(), "Run[text]\n  Break\n"; got != want {
		t.Fatalf("Labeled() produced %q, want %q", got, want)
	}
}
